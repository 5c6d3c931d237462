package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/imovie-web/access"
	"github.com/jrsteele09/imovie-web/catalog"
	"github.com/jrsteele09/imovie-web/sessions"
)

// PageData is what layout.html renders. Content holds the page's own data.
type PageData struct {
	AppName  string
	Title    string
	Session  sessions.Session
	CanAdmin bool
	Genres   []catalog.Genre
	Notice   string
	Error    string
	Content  any
}

type HomePage struct {
	Message string
	Movies  []catalog.Movie
	Active  *catalog.Movie
}

type MovieListPage struct {
	Heading  string
	BasePath string
	Sort     catalog.SortKey
	Movies   []catalog.Movie
	Listed   map[int64]bool
}

type MovieDetailPage struct {
	Movie  catalog.Movie
	Listed bool
}

type LoginPage struct {
	Email string
	Next  string
}

type RegisterPage struct {
	FullName string
	Email    string
}

type ListedMoviesPage struct {
	Movies []catalog.Movie
}

type AdminMoviesPage struct {
	Movies []catalog.Movie
}

type AdminFormPage struct {
	Heading string
	Action  string
	Submit  string
	Form    movieForm
	Errors  []string
}

type AdminDeletePage struct {
	Movie catalog.Movie
}

type ErrorPage struct {
	Status  int
	Message string
}

func (s *Server) newPageData(r *http.Request, title string, content any) PageData {
	session := currentSession(r)
	query := r.URL.Query()
	return PageData{
		AppName:  s.config.GetAppName(),
		Title:    title,
		Session:  session,
		CanAdmin: access.Allowed(session, access.Admin),
		Genres:   s.headerGenres(r.Context()),
		Notice:   query.Get("notice"),
		Error:    query.Get("error"),
		Content:  content,
	}
}

// headerGenres feeds the category menu. One fetch is shared by concurrent
// renders and the lock is not held across it. After a failure the last menu
// (possibly empty) is served until genresRetryAfter has passed.
func (s *Server) headerGenres(ctx context.Context) []catalog.Genre {
	s.genresLock.Lock()
	genres, fresh := s.genres, time.Now().Before(s.genresExpires)
	s.genresLock.Unlock()
	if fresh {
		return genres
	}

	v, err, _ := s.genresFlight.Do("genres", func() (any, error) {
		fetched, err := s.catalog.Genres(context.WithoutCancel(ctx))

		s.genresLock.Lock()
		defer s.genresLock.Unlock()
		if err != nil {
			s.genresExpires = time.Now().Add(genresRetryAfter)
			return nil, err
		}
		s.genres = fetched
		s.genresExpires = time.Now().Add(genresCacheTTL)
		return fetched, nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load genres for header")
		return genres
	}
	return v.([]catalog.Genre)
}

// forgetGenres makes the next render refetch the menu after catalog changes.
func (s *Server) forgetGenres() {
	s.genresLock.Lock()
	defer s.genresLock.Unlock()
	s.genresExpires = time.Time{}
}
