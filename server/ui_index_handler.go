package server

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/imovie-web/catalog"
)

// HomeHandler renders the banner of movies that have a logo. ?movie= picks
// the active one, otherwise the first is shown.
func (s *Server) HomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		message, err := s.catalog.Home(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to load home message")
		}

		movies, err := s.catalog.Movies(ctx)
		if err != nil {
			s.catalogFailure(w, r, "movies", err)
			return
		}

		page := HomePage{Message: message, Movies: catalog.WithLogo(movies)}
		if len(page.Movies) > 0 {
			page.Active = &page.Movies[0]
			if id, err := strconv.ParseInt(r.URL.Query().Get("movie"), 10, 64); err == nil {
				for i := range page.Movies {
					if page.Movies[i].ID == id {
						page.Active = &page.Movies[i]
						break
					}
				}
			}
		}
		s.render(w, r, http.StatusOK, "home.html", "Home", page)
	}
}
