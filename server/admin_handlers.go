package server

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/imovie-web/catalog"
	"github.com/jrsteele09/imovie-web/internal/errors"
	"github.com/jrsteele09/imovie-web/metrics"
)

// AdminMovieListHandler lists every movie by id for editing.
func (s *Server) AdminMovieListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movies, err := s.catalog.Movies(r.Context())
		if err != nil {
			s.catalogFailure(w, r, "movies", err)
			return
		}
		s.render(w, r, http.StatusOK, "admin_movies.html", "Admin Panel", AdminMoviesPage{
			Movies: catalog.SortBy(movies, catalog.SortID),
		})
	}
}

func (s *Server) AdminAddMovieFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderMovieForm(w, r, http.StatusOK, addMoviePage(movieForm{}, nil))
	}
}

func (s *Server) AdminAddMovieHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			s.renderError(w, r, http.StatusBadRequest, "Invalid form submission")
			return
		}
		form := readMovieForm(r)
		req, problems := form.request()
		if len(problems) > 0 {
			s.renderMovieForm(w, r, http.StatusBadRequest, addMoviePage(form, problems))
			return
		}

		movie, err := s.catalog.AddMovie(r.Context(), req)
		if errors.Is(err, catalog.ErrInvalid) {
			s.renderMovieForm(w, r, http.StatusBadRequest, addMoviePage(form, []string{apiMessage(err, "The movie was rejected.")}))
			return
		}
		if err != nil {
			s.catalogFailure(w, r, "add_movie", err)
			return
		}

		s.forgetGenres()
		log.Info().Int64("movie_id", movie.ID).Int64("user_id", currentSession(r).UserID()).Msg("Movie added")
		redirectWithNotice(w, r, RouteAdmin, movie.Title+" was added.")
	}
}

func (s *Server) AdminEditMovieFormHandler() http.HandlerFunc {
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
		s.renderMovieForm(w, r, http.StatusOK, editMoviePage(id, formFromMovie(*movie), nil))
	}
}

func (s *Server) AdminEditMovieHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.pathID(w, r)
		if !ok {
			return
		}
		if err := r.ParseForm(); err != nil {
			s.renderError(w, r, http.StatusBadRequest, "Invalid form submission")
			return
		}
		form := readMovieForm(r)
		req, problems := form.request()
		if len(problems) > 0 {
			s.renderMovieForm(w, r, http.StatusBadRequest, editMoviePage(id, form, problems))
			return
		}

		movie, err := s.catalog.UpdateMovie(r.Context(), id, req)
		if errors.Is(err, catalog.ErrInvalid) {
			s.renderMovieForm(w, r, http.StatusBadRequest, editMoviePage(id, form, []string{apiMessage(err, "The movie was rejected.")}))
			return
		}
		if err != nil {
			s.catalogFailure(w, r, "update_movie", err)
			return
		}

		s.forgetGenres()
		log.Info().Int64("movie_id", id).Int64("user_id", currentSession(r).UserID()).Msg("Movie updated")
		redirectWithNotice(w, r, RouteAdmin, movie.Title+" was updated.")
	}
}

func (s *Server) AdminDeleteMovieFormHandler() http.HandlerFunc {
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
		s.render(w, r, http.StatusOK, "admin_delete.html", "Delete "+movie.Title, AdminDeletePage{Movie: *movie})
	}
}

func (s *Server) AdminDeleteMovieHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.pathID(w, r)
		if !ok {
			return
		}
		if err := s.catalog.DeleteMovie(r.Context(), id); err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				metrics.RecordCatalogError("delete_movie")
				redirectWithError(w, r, RouteAdmin, "That movie no longer exists.", nil)
				return
			}
			s.catalogFailure(w, r, "delete_movie", err)
			return
		}

		s.forgetGenres()
		log.Info().Int64("movie_id", id).Int64("user_id", currentSession(r).UserID()).Msg("Movie deleted")
		redirectWithNotice(w, r, RouteAdmin, "The movie was deleted.")
	}
}

func addMoviePage(form movieForm, problems []string) AdminFormPage {
	return AdminFormPage{Heading: "Add Movie", Action: RouteAdminAdd, Submit: "Add Movie", Form: form, Errors: problems}
}

func editMoviePage(id int64, form movieForm, problems []string) AdminFormPage {
	return AdminFormPage{
		Heading: "Edit Movie",
		Action:  "/admin/edit/" + strconv.FormatInt(id, 10),
		Submit:  "Save Changes",
		Form:    form,
		Errors:  problems,
	}
}

func (s *Server) renderMovieForm(w http.ResponseWriter, r *http.Request, status int, page AdminFormPage) {
	s.render(w, r, status, "admin_form.html", page.Heading, page)
}
