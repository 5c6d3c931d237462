package server

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/jrsteele09/imovie-web/catalog"
	"github.com/jrsteele09/imovie-web/internal/config"
	"github.com/jrsteele09/imovie-web/metrics"
	"github.com/jrsteele09/imovie-web/sessions"
	"github.com/jrsteele09/imovie-web/sessions/snapshots"
	"github.com/jrsteele09/imovie-web/token"
	"github.com/jrsteele09/imovie-web/watchlist"
)

const (
	genresCacheTTL   = 5 * time.Minute
	genresRetryAfter = 30 * time.Second
)

type Server struct {
	env        string // Environment (e.g., "DEV", "PROD")
	mux        *http.ServeMux
	routes     []string
	config     config.Config
	catalog    *catalog.Client
	sessions   *sessions.Registry
	watchlists *watchlist.Lists
	cookies    *token.SessionCodec
	limiter    *RateLimiter
	pages      map[string]pageTemplate

	genresLock    sync.Mutex
	genres        []catalog.Genre
	genresExpires time.Time
	genresFlight  singleflight.Group
}

// New wires the web front end. snapshotStore is shared by all browser
// sessions; each session sees it through its own key namespace.
func New(cfg config.Config, api *catalog.Client, snapshotStore sessions.SnapshotStore) (*Server, error) {
	if api == nil {
		return nil, fmt.Errorf("[Server New] catalog client is required")
	}
	if snapshotStore == nil {
		return nil, fmt.Errorf("[Server New] snapshot store is required")
	}
	secret := cfg.GetSessionSecret()
	signer, err := token.NewHMACSigner(secret)
	if err != nil {
		return nil, fmt.Errorf("[Server New] SESSION_SECRET: %w", err)
	}
	if bytes.Equal(secret, []byte(config.DevSessionSecret)) {
		log.Warn().Str("env", cfg.GetEnv()).Msg("SESSION_SECRET is not set, session cookies are signed with the development secret")
	}
	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("[Server New] templates: %w", err)
	}

	factory := snapshots.Factory(snapshotStore)
	s := &Server{
		env:        cfg.GetEnv(),
		mux:        http.NewServeMux(),
		config:     cfg,
		catalog:    api,
		sessions:   sessions.NewRegistry(factory, cfg.GetSessionIdleTTL()),
		watchlists: watchlist.NewLists(factory),
		cookies:    token.NewSessionCodec(signer, cfg.GetSessionCookieMaxAge()),
		limiter:    NewRateLimiter(cfg.GetLoginRateLimit(), cfg.GetLoginRateBurst(), cfg.GetTrustedProxies()...),
		pages:      pages,
	}
	s.sessions.Subscribe(metrics.SessionObserver)
	s.sessions.Subscribe(logSessionChange)
	s.sessions.OnEvict(s.watchlists.Forget)

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Sessions exposes the per-browser session stores.
func (s *Server) Sessions() *sessions.Registry {
	return s.sessions
}

// RunMaintenance evicts idle sessions and rate limiter entries every
// interval until ctx is done.
func (s *Server) RunMaintenance(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Cleanup(); n > 0 {
				log.Debug().Int("evicted", n).Msg("Evicted idle sessions")
			}
			s.limiter.Cleanup(5 * time.Minute)
			metrics.SetLiveSessions(s.sessions.Len())
		}
	}
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}

func logSessionChange(sessionID string, session sessions.Session) {
	event := log.Info().Str("session_id", sessionID).Bool("authenticated", session.Authenticated)
	if session.Identity != nil {
		event = event.Int64("user_id", session.Identity.ID).Str("roles", session.Identity.Roles.String())
	}
	event.Msg("Session changed")
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
