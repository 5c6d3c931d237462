package server

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/imovie-web/catalog"
	"github.com/jrsteele09/imovie-web/internal/errors"
)

// ToggleListedHandler adds the movie to the session's list, or removes it
// when already there.
func (s *Server) ToggleListedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.pathID(w, r)
		if !ok {
			return
		}
		next := localPath(r.FormValue("next"), "/movies/"+strconv.FormatInt(id, 10))

		movie, err := s.catalog.Movie(r.Context(), id)
		if err != nil {
			s.catalogFailure(w, r, "movie", err)
			return
		}

		added, err := s.watchlists.For(sessionID(r)).Toggle(r.Context(), movie.Ref())
		if err != nil {
			log.Err(err).Int64("movie_id", id).Str("session_id", sessionID(r)).Msg("Failed to update watchlist")
			redirectWithError(w, r, next, "Could not update your list, please try again.", nil)
			return
		}
		if added {
			redirectWithNotice(w, r, next, movie.Title+" was added to your list.")
			return
		}
		redirectWithNotice(w, r, next, movie.Title+" was removed from your list.")
	}
}

// ListedMoviesHandler shows the session's list with current catalog details.
// Entries the catalog no longer has are skipped.
func (s *Server) ListedMoviesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.watchlists.For(sessionID(r)).Items(r.Context())
		if err != nil {
			log.Warn().Err(err).Str("session_id", sessionID(r)).Msg("Failed to read watchlist")
		}

		movies := make([]catalog.Movie, 0, len(items))
		for _, item := range items {
			movie, err := s.catalog.Movie(r.Context(), item.ID)
			if errors.Is(err, catalog.ErrNotFound) {
				continue
			}
			if err != nil {
				s.catalogFailure(w, r, "movie", err)
				return
			}
			movies = append(movies, *movie)
		}
		s.render(w, r, http.StatusOK, "listed_movies.html", "My List", ListedMoviesPage{Movies: movies})
	}
}
