// Package metrics provides Prometheus metrics for the iMovie web front end.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jrsteele09/imovie-web/sessions"
)

const namespace = "imovie"

var (
	// HTTPRequestsTotal counts handled requests by route pattern.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AuthAttemptsTotal counts login, register and logout submissions.
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Total number of authentication attempts",
		},
		[]string{"action", "result"},
	)

	// SessionChangesTotal counts session store notifications by new state.
	SessionChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_changes_total",
			Help:      "Total number of session state changes",
		},
		[]string{"state"},
	)

	// AccessDecisionsTotal counts gate decisions.
	AccessDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "access_decisions_total",
			Help:      "Total number of access gate decisions",
		},
		[]string{"requirement", "decision"},
	)

	// CatalogErrorsTotal counts failed calls to the catalog backend.
	CatalogErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_errors_total",
			Help:      "Total number of failed catalog backend calls",
		},
		[]string{"operation"},
	)

	// LiveSessions tracks browser sessions held in memory.
	LiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_sessions",
			Help:      "Number of browser sessions held in memory",
		},
	)
)

// RecordRequest records a handled HTTP request.
func RecordRequest(method, route string, status int, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordAuth records the outcome of a login, register or logout.
func RecordAuth(action string, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	AuthAttemptsTotal.WithLabelValues(action, result).Inc()
}

// RecordAccess records an access gate decision.
func RecordAccess(requirement, decision string) {
	AccessDecisionsTotal.WithLabelValues(requirement, decision).Inc()
}

// RecordCatalogError records a failed catalog call.
func RecordCatalogError(operation string) {
	CatalogErrorsTotal.WithLabelValues(operation).Inc()
}

// SetLiveSessions sets the live session gauge.
func SetLiveSessions(n int) {
	LiveSessions.Set(float64(n))
}

// SessionObserver counts every session change. Register it with
// sessions.Registry.Subscribe.
func SessionObserver(_ string, s sessions.Session) {
	state := sessions.StateLoggedOut
	if s.Authenticated {
		state = sessions.StateLoggedIn
	}
	SessionChangesTotal.WithLabelValues(state.String()).Inc()
}
