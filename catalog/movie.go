package catalog

import (
	"github.com/jrsteele09/imovie-web/sessions"
)

// Person is a director or actor.
type Person struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Movie is a catalog entry as returned by the backend.
type Movie struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Year         int      `json:"year"`
	Description  string   `json:"description"`
	Duration     int      `json:"duration"` // minutes
	IMDbRating   float64  `json:"imdbRating"`
	PosterURL    string   `json:"posterUrl"`
	TrailerURL   string   `json:"trailerUrl"`
	WallpaperURL string   `json:"wallpaperUrl"`
	LogoURL      string   `json:"logoUrl"`
	Director     *Person  `json:"director"`
	Actors       []Person `json:"actors"`
	Genres       []Genre  `json:"genres"`
}

// Ref returns the lightweight reference kept in sessions and watchlists.
func (m Movie) Ref() sessions.MovieRef {
	return sessions.MovieRef{ID: m.ID, Title: m.Title}
}

// GenreMovies is the payload of GET /genres/{id}/movies.
type GenreMovies struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Movies []Movie `json:"movies"`
}

// MovieRequest is the body of the admin add and update endpoints. People and
// genres are referenced by name and created by the backend when missing.
type MovieRequest struct {
	Title        string   `json:"title"`
	Year         int      `json:"year"`
	Description  string   `json:"description"`
	Duration     int      `json:"duration"`
	IMDbRating   float64  `json:"imdbRating"`
	PosterURL    string   `json:"posterUrl"`
	TrailerURL   string   `json:"trailerUrl"`
	WallpaperURL string   `json:"wallpaperUrl"`
	LogoURL      string   `json:"logoUrl"`
	DirectorName string   `json:"directorName"`
	ActorNames   []string `json:"actorNames"`
	GenreNames   []string `json:"genreNames"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUser is the profile returned by a successful login or registration.
type AuthUser struct {
	ID       int64               `json:"id"`
	FullName string              `json:"fullName"`
	Email    string              `json:"email"`
	Roles    []string            `json:"roles"`
	Movies   []sessions.MovieRef `json:"movies,omitempty"`
}

// Identity maps the backend profile onto a session identity.
func (u AuthUser) Identity() sessions.Identity {
	return sessions.Identity{
		ID:          u.ID,
		DisplayName: u.FullName,
		Email:       u.Email,
		Roles:       sessions.NewRoleSet(u.Roles...),
		Movies:      u.Movies,
	}
}
