package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/imovie-web/access"
	"github.com/jrsteele09/imovie-web/metrics"
	"github.com/jrsteele09/imovie-web/sessions"
	"github.com/jrsteele09/imovie-web/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySessionID stores the browser session id
	ContextKeySessionID ContextKey = "session_id"
	// ContextKeyStore stores the browser session's *sessions.Store
	ContextKeyStore ContextKey = "session_store"
)

// sessionCookieName is the cookie that carries the signed browser session id
const sessionCookieName = "imovie_session"

// SessionMiddleware attaches the browser session to the request. A missing
// or invalid cookie starts a new, logged out browser session.
func (s *Server) SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			if sessionID, err = s.cookies.Parse(cookie.Value); err != nil {
				log.Debug().Err(err).Msg("Replacing invalid session cookie")
				sessionID = ""
			}
		}

		if sessionID == "" {
			sessionID = token.NewSessionID()
			if err := s.setSessionCookie(w, r, sessionID); err != nil {
				log.Err(err).Msg("Failed to issue session cookie")
				http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
				return
			}
		}

		store := s.sessions.Get(r.Context(), sessionID)
		ctx := context.WithValue(r.Context(), ContextKeySessionID, sessionID)
		ctx = context.WithValue(ctx, ContextKeyStore, store)
		next(w, r.WithContext(ctx))
	}
}

// RequireAccess gates a route. Denied requests get the login prompt with
// 401 whether the user is anonymous or lacks a role.
func (s *Server) RequireAccess(req access.Requirement) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			decision := access.Check(currentSession(r), req)
			metrics.RecordAccess(req.String(), decision.String())
			if decision == access.Denied {
				s.renderLoginPrompt(w, r)
				return
			}
			next(w, r)
		}
	}
}

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) error {
	value, err := s.cookies.Issue(sessionID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.cookies.MaxAge().Seconds()),
	})
	return nil
}

// sessionStore returns the store SessionMiddleware attached, or nil.
func sessionStore(r *http.Request) *sessions.Store {
	store, _ := r.Context().Value(ContextKeyStore).(*sessions.Store)
	return store
}

func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(ContextKeySessionID).(string)
	return id
}

// currentSession is the logged out session when no store is attached.
func currentSession(r *http.Request) sessions.Session {
	if store := sessionStore(r); store != nil {
		return store.Current()
	}
	return sessions.Session{}
}
