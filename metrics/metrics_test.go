package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/imovie-web/metrics"
	"github.com/jrsteele09/imovie-web/sessions"
)

func TestSessionObserver(t *testing.T) {
	in := metrics.SessionChangesTotal.WithLabelValues("logged_in")
	out := metrics.SessionChangesTotal.WithLabelValues("logged_out")
	beforeIn, beforeOut := testutil.ToFloat64(in), testutil.ToFloat64(out)

	metrics.SessionObserver("sid", sessions.Session{Authenticated: true, Identity: &sessions.Identity{ID: 1}})
	metrics.SessionObserver("sid", sessions.Session{})

	require.Equal(t, beforeIn+1, testutil.ToFloat64(in))
	require.Equal(t, beforeOut+1, testutil.ToFloat64(out))
}

func TestRecordAuth(t *testing.T) {
	ok := metrics.AuthAttemptsTotal.WithLabelValues("login", "success")
	failed := metrics.AuthAttemptsTotal.WithLabelValues("login", "failure")
	beforeOK, beforeFailed := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	metrics.RecordAuth("login", true)
	metrics.RecordAuth("login", false)
	metrics.RecordAuth("login", false)

	require.Equal(t, beforeOK+1, testutil.ToFloat64(ok))
	require.Equal(t, beforeFailed+2, testutil.ToFloat64(failed))
}

func TestRecordRequestAndGauges(t *testing.T) {
	c := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/movies", "200")
	before := testutil.ToFloat64(c)
	metrics.RecordRequest("GET", "/movies", 200, 0.01)
	require.Equal(t, before+1, testutil.ToFloat64(c))

	metrics.SetLiveSessions(4)
	require.Equal(t, 4.0, testutil.ToFloat64(metrics.LiveSessions))

	d := metrics.AccessDecisionsTotal.WithLabelValues("role_in(ADMIN)", "denied")
	before = testutil.ToFloat64(d)
	metrics.RecordAccess("role_in(ADMIN)", "denied")
	require.Equal(t, before+1, testutil.ToFloat64(d))
}
