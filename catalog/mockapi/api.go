// Package mockapi is an in-process stand-in for the iMovie REST backend,
// serving the same endpoints over in-memory data.
package mockapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/imovie-web/catalog"
	apperrors "github.com/jrsteele09/imovie-web/internal/errors"
	"github.com/jrsteele09/imovie-web/sessions"
	"github.com/jrsteele09/imovie-web/users"
	fakeuserrepo "github.com/jrsteele09/imovie-web/users/repofake"
)

const (
	contentTypeJSON = "application/json"
	welcomeMessage  = "Welcome to iMovie"
)

// API implements http.Handler.
type API struct {
	mux    *http.ServeMux
	users  users.UserRepo
	movies *movieStore
}

var _ http.Handler = (*API)(nil)

// New returns a seeded API. A nil repo gets an in-memory one.
func New(repo users.UserRepo) (*API, error) {
	if repo == nil {
		repo = fakeuserrepo.NewFakeUserRepo()
	}
	a := &API{
		mux:    http.NewServeMux(),
		users:  repo,
		movies: newMovieStore(),
	}
	if err := a.seed(); err != nil {
		return nil, err
	}
	a.routes()
	return a, nil
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

func (a *API) routes() {
	a.mux.HandleFunc("GET /home", a.homeHandler())
	a.mux.HandleFunc("GET /movies", a.moviesHandler())
	a.mux.HandleFunc("GET /movies/{id}", a.movieHandler())
	a.mux.HandleFunc("GET /genres", a.genresHandler())
	a.mux.HandleFunc("GET /genres/{id}/movies", a.genreMoviesHandler())
	a.mux.HandleFunc("GET /actors/{id}/movies", a.actorMoviesHandler())
	a.mux.HandleFunc("POST /movies/admin/add", a.addMovieHandler())
	a.mux.HandleFunc("PUT /movies/admin/update/{id}", a.updateMovieHandler())
	a.mux.HandleFunc("DELETE /admin/movies/remove/{id}", a.deleteMovieHandler())
	a.mux.HandleFunc("POST /auth/login", a.loginHandler())
	a.mux.HandleFunc("POST /auth/register", a.registerHandler())
}

func (a *API) homeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, welcomeMessage)
	}
}

func (a *API) moviesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, a.movies.list(nil))
	}
}

func (a *API) movieHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		movie, err := a.movies.get(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, movie)
	}
}

func (a *API) genresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, a.movies.listGenres())
	}
}

func (a *API) genreMoviesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		gm, err := a.movies.genreMovies(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, gm)
	}
}

func (a *API) actorMoviesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		movies, err := a.movies.actorMovies(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, movies)
	}
}

func (a *API) addMovieHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req catalog.MovieRequest
		if !decodeBody(w, r, &req) {
			return
		}
		movie, err := a.movies.add(req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, movie)
	}
}

func (a *API) updateMovieHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req catalog.MovieRequest
		if !decodeBody(w, r, &req) {
			return
		}
		movie, err := a.movies.update(id, req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, movie)
	}
}

func (a *API) deleteMovieHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := a.movies.remove(id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (a *API) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req catalog.LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}
		user, err := a.users.GetByEmail(req.Email)
		if err != nil || !user.CheckPassword(req.Password) {
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		if err := a.users.SetLastLogin(user.Email, time.Now()); err != nil {
			log.Err(err).Str("email", user.Email).Msg("Failed to record last login")
		}
		writeJSON(w, http.StatusOK, a.authUser(user))
	}
}

func (a *API) registerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req catalog.RegisterRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.FullName) == "" {
			writeMessage(w, http.StatusBadRequest, "fullName is required")
			return
		}
		if !catalog.ValidEmail(req.Email) {
			writeMessage(w, http.StatusBadRequest, "email is invalid")
			return
		}
		if err := users.ValidatePassword(req.Password); err != nil {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		hash, err := users.HashPassword(req.Password)
		if err != nil {
			log.Err(err).Msg("Failed to hash password")
			writeMessage(w, http.StatusInternalServerError, "registration failed")
			return
		}
		user := &users.User{
			FullName:     strings.TrimSpace(req.FullName),
			Email:        strings.TrimSpace(req.Email),
			PasswordHash: hash,
			Roles:        []users.RoleType{users.RoleUser},
		}
		if err := a.users.Create(user); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, a.authUser(user))
	}
}

func (a *API) authUser(u *users.User) catalog.AuthUser {
	out := catalog.AuthUser{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Roles:    u.RoleNames(),
	}
	for _, id := range u.Movies {
		m, err := a.movies.get(id)
		if err != nil {
			continue
		}
		out.Movies = append(out.Movies, sessions.MovieRef{ID: m.ID, Title: m.Title})
	}
	return out
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errMovieNotFound), errors.Is(err, errGenreNotFound), errors.Is(err, errActorNotFound):
		writeMessage(w, http.StatusNotFound, errors.Cause(err).Error())
	case errors.Is(err, errInvalidMovie):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		writeMessage(w, http.StatusConflict, "email already registered")
	default:
		log.Err(err).Msg("mock api request failed")
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}
