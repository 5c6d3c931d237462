package mockapi

import (
	"github.com/pkg/errors"

	"github.com/jrsteele09/imovie-web/catalog"
	"github.com/jrsteele09/imovie-web/users"
)

// Seed accounts available on every fresh API.
const (
	SeedAdminEmail    = "admin@imovie.dev"
	SeedAdminPassword = "admin123"
	SeedUserEmail     = "user@imovie.dev"
	SeedUserPassword  = "user123"
)

var seedMovies = []catalog.MovieRequest{
	{
		Title:        "Heat",
		Year:         1995,
		Description:  "A group of high-end professional thieves start to feel the heat from the LAPD.",
		Duration:     170,
		IMDbRating:   8.3,
		PosterURL:    "https://image.tmdb.org/t/p/w500/heat.jpg",
		TrailerURL:   "https://www.youtube.com/watch?v=14oNcFxiVaQ",
		WallpaperURL: "https://image.tmdb.org/t/p/original/heat-wall.jpg",
		LogoURL:      "https://image.tmdb.org/t/p/w500/heat-logo.png",
		DirectorName: "Michael Mann",
		ActorNames:   []string{"Al Pacino", "Robert De Niro", "Val Kilmer"},
		GenreNames:   []string{"Crime", "Drama"},
	},
	{
		Title:        "Arrival",
		Year:         2016,
		Description:  "A linguist works with the military to communicate with alien lifeforms.",
		Duration:     116,
		IMDbRating:   7.9,
		PosterURL:    "https://image.tmdb.org/t/p/w500/arrival.jpg",
		TrailerURL:   "https://www.youtube.com/watch?v=tFMo3UJ4B4g&t=5",
		WallpaperURL: "https://image.tmdb.org/t/p/original/arrival-wall.jpg",
		LogoURL:      "https://image.tmdb.org/t/p/w500/arrival-logo.png",
		DirectorName: "Denis Villeneuve",
		ActorNames:   []string{"Amy Adams", "Jeremy Renner"},
		GenreNames:   []string{"Drama", "Sci-Fi"},
	},
	{
		Title:        "Sicario",
		Year:         2015,
		Description:  "An FBI agent is enlisted to aid in the escalating war against drugs.",
		Duration:     121,
		IMDbRating:   7.6,
		PosterURL:    "https://image.tmdb.org/t/p/w500/sicario.jpg",
		TrailerURL:   "https://www.youtube.com/watch?v=G0-QVgS2KzA",
		DirectorName: "Denis Villeneuve",
		ActorNames:   []string{"Emily Blunt", "Benicio Del Toro"},
		GenreNames:   []string{"Crime", "Thriller"},
	},
}

func (a *API) seed() error {
	for _, req := range seedMovies {
		if _, err := a.movies.add(req); err != nil {
			return errors.Wrapf(err, "[API.seed] movie %q", req.Title)
		}
	}

	accounts := []struct {
		name, email, password string
		roles                 []users.RoleType
	}{
		{"Site Admin", SeedAdminEmail, SeedAdminPassword, []users.RoleType{users.RoleUser, users.RoleAdmin}},
		{"Regular User", SeedUserEmail, SeedUserPassword, []users.RoleType{users.RoleUser}},
	}
	for _, acc := range accounts {
		hash, err := users.HashPassword(acc.password)
		if err != nil {
			return errors.Wrap(err, "[API.seed] HashPassword")
		}
		u := &users.User{FullName: acc.name, Email: acc.email, PasswordHash: hash, Roles: acc.roles}
		if err := a.users.Create(u); err != nil {
			return errors.Wrapf(err, "[API.seed] user %s", acc.email)
		}
	}
	return nil
}
