package server

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/imovie-web/catalog"
)

func (s *Server) MoviesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movies, err := s.catalog.Movies(r.Context())
		if err != nil {
			s.catalogFailure(w, r, "movies", err)
			return
		}
		s.renderMovieList(w, r, "All Movies", RouteMovies, movies)
	}
}

func (s *Server) GenreMoviesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.pathID(w, r)
		if !ok {
			return
		}
		genre, err := s.catalog.GenreMovies(r.Context(), id)
		if err != nil {
			s.catalogFailure(w, r, "genre_movies", err)
			return
		}
		s.renderMovieList(w, r, genre.Name+" Movies", r.URL.Path, genre.Movies)
	}
}

func (s *Server) ActorMoviesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.pathID(w, r)
		if !ok {
			return
		}
		movies, err := s.catalog.ActorMovies(r.Context(), id)
		if err != nil {
			s.catalogFailure(w, r, "actor_movies", err)
			return
		}
		s.renderMovieList(w, r, actorHeading(id, movies), r.URL.Path, movies)
	}
}

// actorHeading names the actor from the first movie that lists them
func actorHeading(id int64, movies []catalog.Movie) string {
	for _, m := range movies {
		for _, a := range m.Actors {
			if a.ID == id && a.Name != "" {
				return "Movies with " + a.Name
			}
		}
	}
	return "Movies by Actor #" + strconv.FormatInt(id, 10)
}

func (s *Server) renderMovieList(w http.ResponseWriter, r *http.Request, heading, basePath string, movies []catalog.Movie) {
	sortKey := catalog.ParseSortKey(r.URL.Query().Get("sort"))
	s.render(w, r, http.StatusOK, "movies.html", heading, MovieListPage{
		Heading:  heading,
		BasePath: basePath,
		Sort:     sortKey,
		Movies:   catalog.SortBy(movies, sortKey),
		Listed:   s.listedIDs(r),
	})
}

func (s *Server) MovieDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.pathID(w, r)
		if !ok {
			return
		}
		movie, err := s.catalog.Movie(r.Context(), id)
		if err != nil {
			s.catalogFailure(w, r, "movie", err)
			return
		}
		s.render(w, r, http.StatusOK, "movie_detail.html", movie.Title, MovieDetailPage{
			Movie:  *movie,
			Listed: s.listedIDs(r)[movie.ID],
		})
	}
}

// listedIDs is the watchlist membership shown on movie cards. Anonymous
// visitors have none.
func (s *Server) listedIDs(r *http.Request) map[int64]bool {
	if !currentSession(r).Authenticated {
		return map[int64]bool{}
	}
	ids, err := s.watchlists.For(sessionID(r)).IDs(r.Context())
	if err != nil {
		log.Warn().Err(err).Str("session_id", sessionID(r)).Msg("Failed to read watchlist")
		return map[int64]bool{}
	}
	return ids
}
