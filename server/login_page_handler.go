package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/imovie-web/catalog"
	"github.com/jrsteele09/imovie-web/internal/errors"
	"github.com/jrsteele09/imovie-web/metrics"
)

const (
	msgInvalidEmail = "Please enter a valid email address."
	msgLoginFailed  = "Login failed. Please check your email and password."
)

func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if currentSession(r).Authenticated {
			redirectSuccess(w, r, RouteHome)
			return
		}
		query := r.URL.Query()
		s.render(w, r, http.StatusOK, "login.html", "Sign In", LoginPage{
			Email: query.Get("email"),
			Next:  localPath(query.Get("next"), ""),
		})
	}
}

// renderLoginPrompt is shown by every denied gate, logged in or not.
func (s *Server) renderLoginPrompt(w http.ResponseWriter, r *http.Request) {
	next := r.URL.RequestURI()
	if r.Method != http.MethodGet {
		next = localPath(r.FormValue("next"), RouteHome)
	}
	s.render(w, r, http.StatusUnauthorized, "login_prompt.html", "Sign In Required", LoginPage{Next: next})
}

func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteLogin, "Invalid form submission", nil)
			return
		}
		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")
		next := localPath(r.PostFormValue("next"), RouteHome)
		keep := url.Values{"email": {email}, "next": {next}}

		if !catalog.ValidEmail(email) {
			redirectWithError(w, r, RouteLogin, msgInvalidEmail, keep)
			return
		}
		if password == "" {
			redirectWithError(w, r, RouteLogin, msgLoginFailed, keep)
			return
		}

		user, err := s.catalog.Login(r.Context(), catalog.LoginRequest{Email: email, Password: password})
		if err != nil {
			metrics.RecordAuth("login", false)
			if !errors.Is(err, catalog.ErrUnauthorized) && !errors.Is(err, catalog.ErrInvalid) {
				metrics.RecordCatalogError("login")
				log.Err(err).Str("email", email).Msg("Login request failed")
			}
			redirectWithError(w, r, RouteLogin, msgLoginFailed, keep)
			return
		}

		sessionStore(r).Login(r.Context(), user.Identity())
		metrics.RecordAuth("login", true)
		log.Info().Int64("user_id", user.ID).Str("session_id", sessionID(r)).Msg("User logged in")
		redirectSuccess(w, r, next)
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := sessionStore(r)
		userID := store.Current().UserID()
		store.Logout(r.Context())
		metrics.RecordAuth("logout", true)
		log.Info().Int64("user_id", userID).Str("session_id", sessionID(r)).Msg("User logged out")
		redirectSuccess(w, r, RouteHome)
	}
}
