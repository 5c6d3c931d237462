package server

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/imovie-web/access"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.HomeHandler(), s.HTMLMiddleWare()...))

	// CATALOG
	s.RegisterRouteHandler("GET "+RouteMovies, ChainMiddleware(s.MoviesHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteMovie, ChainMiddleware(s.MovieDetailHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteGenreMovies, ChainMiddleware(s.GenreMoviesHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteActorMovies, ChainMiddleware(s.ActorMoviesHandler(), s.HTMLMiddleWare()...))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare(s.limiter.Middleware)...))
	s.RegisterRouteHandler("GET "+RouteRegister, ChainMiddleware(s.RegisterPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterSubmissionHandler(), s.HTMLMiddleWare(s.limiter.Middleware)...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// WATCHLIST
	s.RegisterRouteHandler("POST "+RouteToggleListed, ChainMiddleware(s.ToggleListedHandler(), s.HTMLMiddleWare(s.RequireAccess(access.AnyAuthenticated()))...))
	s.RegisterRouteHandler("GET "+RouteListedMovies, ChainMiddleware(s.ListedMoviesHandler(), s.HTMLMiddleWare(s.RequireAccess(access.AnyAuthenticated()))...))

	// Admin routes
	s.RegisterRouteHandler("GET "+RouteAdmin, ChainMiddleware(s.AdminMovieListHandler(), s.HTMLMiddleWare(s.RequireAccess(access.Admin))...))
	s.RegisterRouteHandler("GET "+RouteAdminAdd, ChainMiddleware(s.AdminAddMovieFormHandler(), s.HTMLMiddleWare(s.RequireAccess(access.Admin))...))
	s.RegisterRouteHandler("POST "+RouteAdminAdd, ChainMiddleware(s.AdminAddMovieHandler(), s.HTMLMiddleWare(s.RequireAccess(access.Admin))...))
	s.RegisterRouteHandler("GET "+RouteAdminEdit, ChainMiddleware(s.AdminEditMovieFormHandler(), s.HTMLMiddleWare(s.RequireAccess(access.Admin))...))
	s.RegisterRouteHandler("POST "+RouteAdminEdit, ChainMiddleware(s.AdminEditMovieHandler(), s.HTMLMiddleWare(s.RequireAccess(access.Admin))...))
	s.RegisterRouteHandler("GET "+RouteAdminDelete, ChainMiddleware(s.AdminDeleteMovieFormHandler(), s.HTMLMiddleWare(s.RequireAccess(access.Admin))...))
	s.RegisterRouteHandler("POST "+RouteAdminDelete, ChainMiddleware(s.AdminDeleteMovieHandler(), s.HTMLMiddleWare(s.RequireAccess(access.Admin))...))

	// API routes
	s.RegisterRouteHandler("GET "+RouteAPISession, ChainMiddleware(s.SessionAPIHandler(), s.APIMiddleware(s.SessionMiddleware)...))
	s.RegisterRouteHandler("OPTIONS "+RouteAPISession, ChainMiddleware(s.SessionAPIHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))

	s.RegisterRouteHandler("/", ChainMiddleware(s.NotFoundHandler(), s.HTMLMiddleWare()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError(r.Method, filePath, err)
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

func logError(method, path string, err error) {
	log.Warn().Err(err).Msgf("[%-19s] %s", colourMethod(method), Red+path+ResetColor)
}
