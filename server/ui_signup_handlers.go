package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/imovie-web/catalog"
	"github.com/jrsteele09/imovie-web/internal/errors"
	"github.com/jrsteele09/imovie-web/metrics"
	"github.com/jrsteele09/imovie-web/users"
)

func (s *Server) RegisterPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if currentSession(r).Authenticated {
			redirectSuccess(w, r, RouteHome)
			return
		}
		query := r.URL.Query()
		s.render(w, r, http.StatusOK, "register.html", "Create Account", RegisterPage{
			FullName: query.Get("fullName"),
			Email:    query.Get("email"),
		})
	}
}

func (s *Server) RegisterSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteRegister, "Invalid form submission", nil)
			return
		}
		fullName := strings.TrimSpace(r.PostFormValue("fullName"))
		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")
		keep := url.Values{"fullName": {fullName}, "email": {email}}

		if fullName == "" {
			redirectWithError(w, r, RouteRegister, "Please enter your full name.", keep)
			return
		}
		if !catalog.ValidEmail(email) {
			redirectWithError(w, r, RouteRegister, msgInvalidEmail, keep)
			return
		}
		if err := users.ValidatePassword(password); err != nil {
			redirectWithError(w, r, RouteRegister, "Password must be at least 6 characters.", keep)
			return
		}
		if password != r.PostFormValue("confirmPassword") {
			redirectWithError(w, r, RouteRegister, "Passwords do not match.", keep)
			return
		}

		_, err := s.catalog.Register(r.Context(), catalog.RegisterRequest{FullName: fullName, Email: email, Password: password})
		if err != nil {
			metrics.RecordAuth("register", false)
			switch {
			case errors.Is(err, catalog.ErrConflict):
				redirectWithError(w, r, RouteRegister, "An account with this email already exists.", keep)
			case errors.Is(err, catalog.ErrInvalid):
				redirectWithError(w, r, RouteRegister, apiMessage(err, "Registration failed. Please check your details."), keep)
			default:
				metrics.RecordCatalogError("register")
				log.Err(err).Str("email", email).Msg("Registration request failed")
				redirectWithError(w, r, RouteRegister, "Registration failed. Please try again later.", keep)
			}
			return
		}

		metrics.RecordAuth("register", true)
		log.Info().Str("email", email).Msg("User registered")
		redirectWithNotice(w, r, RouteLogin, "Registration successful! Please sign in.")
	}
}

// apiMessage returns the backend's message for err, or fallback
func apiMessage(err error, fallback string) string {
	var apiErr *catalog.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
