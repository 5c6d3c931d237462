package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/imovie-web/sessions"
)

type sessionResponse struct {
	State   string           `json:"state"`
	Session sessions.Session `json:"session"`
}

// SessionAPIHandler returns the browser session as JSON.
func (s *Server) SessionAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := sessionResponse{State: sessions.StateLoggedOut.String()}
		if store := sessionStore(r); store != nil {
			resp.State = store.State().String()
			resp.Session = store.Current()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"app":      s.config.GetAppName(),
			"sessions": s.sessions.Len(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("Failed to write JSON response")
	}
}
