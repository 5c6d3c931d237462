package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Catalog Routes
	RouteHome        = "/"
	RouteMovies      = "/movies"
	RouteMovie       = "/movies/{id}"
	RouteGenreMovies = "/genres/{id}/movies"
	RouteActorMovies = "/actors/{id}/movies"

	// Auth Routes
	RouteLogin        = "/login"
	RouteAuthLogin    = "/auth/login"
	RouteRegister     = "/register"
	RouteAuthRegister = "/auth/register"
	RouteAuthLogout   = "/auth/logout"

	// Watchlist Routes
	RouteToggleListed = "/movies/{id}/list"
	RouteListedMovies = "/listed-movies"

	// Admin Routes
	RouteAdmin       = "/admin"
	RouteAdminAdd    = "/admin/add"
	RouteAdminEdit   = "/admin/edit/{id}"
	RouteAdminDelete = "/admin/delete/{id}"

	// API Routes
	RouteAPISession = "/api/session"
	RouteHealth     = "/health"
	RouteMetrics    = "/metrics"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json"
)
