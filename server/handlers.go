package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/imovie-web/catalog"
	"github.com/jrsteele09/imovie-web/internal/errors"
	"github.com/jrsteele09/imovie-web/metrics"
)

// NotFoundHandler renders the 404 page for unknown paths
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, r, http.StatusNotFound, "Page not found")
	}
}

// catalogFailure renders the page for a failed catalog call
func (s *Server) catalogFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	metrics.RecordCatalogError(op)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		s.renderError(w, r, http.StatusNotFound, "Movie not found")
	default:
		log.Err(err).Str("op", op).Msg("Catalog request failed")
		s.renderError(w, r, http.StatusBadGateway, "The movie service is unavailable, please try again later.")
	}
}

// pathID parses the {id} wildcard, rendering a 404 when it is not a positive integer
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		s.renderError(w, r, http.StatusNotFound, "Page not found")
		return 0, false
	}
	return id, true
}

// localPath returns next when it is a path on this site, otherwise fallback
func localPath(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}

func withQuery(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&" + params.Encode()
	}
	return path + "?" + params.Encode()
}

// redirectWithError helper for htmx-aware error redirects
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string, keep url.Values) {
	params := url.Values{}
	for k, v := range keep {
		if len(v) > 0 && v[0] != "" {
			params.Set(k, v[0])
		}
	}
	params.Set("error", errorMsg)
	redirectSuccess(w, r, withQuery(path, params))
}

// redirectWithNotice helper for htmx-aware redirects carrying a success message
func redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	redirectSuccess(w, r, withQuery(path, url.Values{"notice": {notice}}))
}

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}
