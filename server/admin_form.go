package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/imovie-web/catalog"
)

// movieForm holds the raw admin form values so a rejected submission can be
// shown again as typed.
type movieForm struct {
	Title        string
	Year         string
	Description  string
	Duration     string
	Rating       string
	PosterURL    string
	TrailerURL   string
	WallpaperURL string
	LogoURL      string
	Director     string
	Actors       string
	Genres       string
}

func formFromMovie(m catalog.Movie) movieForm {
	req := catalog.RequestFromMovie(m)
	return movieForm{
		Title:        req.Title,
		Year:         strconv.Itoa(req.Year),
		Description:  req.Description,
		Duration:     strconv.Itoa(req.Duration),
		Rating:       strconv.FormatFloat(req.IMDbRating, 'f', -1, 64),
		PosterURL:    req.PosterURL,
		TrailerURL:   req.TrailerURL,
		WallpaperURL: req.WallpaperURL,
		LogoURL:      req.LogoURL,
		Director:     req.DirectorName,
		Actors:       strings.Join(req.ActorNames, ", "),
		Genres:       strings.Join(req.GenreNames, ", "),
	}
}

func readMovieForm(r *http.Request) movieForm {
	field := func(name string) string {
		return strings.TrimSpace(r.PostFormValue(name))
	}
	return movieForm{
		Title:        field("title"),
		Year:         field("year"),
		Description:  field("description"),
		Duration:     field("duration"),
		Rating:       field("imdbRating"),
		PosterURL:    field("posterUrl"),
		TrailerURL:   field("trailerUrl"),
		WallpaperURL: field("wallpaperUrl"),
		LogoURL:      field("logoUrl"),
		Director:     field("directorName"),
		Actors:       field("actorNames"),
		Genres:       field("genreNames"),
	}
}

// request validates the form and converts it for the catalog. The returned
// messages are shown above the form.
func (f movieForm) request() (catalog.MovieRequest, []string) {
	var problems []string
	req := catalog.MovieRequest{
		Title:        f.Title,
		Description:  f.Description,
		PosterURL:    f.PosterURL,
		TrailerURL:   f.TrailerURL,
		WallpaperURL: f.WallpaperURL,
		LogoURL:      f.LogoURL,
		DirectorName: f.Director,
		ActorNames:   catalog.SplitNames(f.Actors),
		GenreNames:   catalog.SplitNames(f.Genres),
	}

	if req.Title == "" {
		problems = append(problems, "Title is required.")
	}
	if year, err := strconv.Atoi(f.Year); err != nil || year < 1888 {
		problems = append(problems, "Year must be a number from 1888 onwards.")
	} else {
		req.Year = year
	}
	if f.Duration != "" {
		if d, err := strconv.Atoi(f.Duration); err != nil || d < 0 {
			problems = append(problems, "Duration must be a whole number of minutes.")
		} else {
			req.Duration = d
		}
	}
	if f.Rating != "" {
		if rating, err := strconv.ParseFloat(f.Rating, 64); err != nil || rating < 0 || rating > 10 {
			problems = append(problems, "IMDb rating must be between 0 and 10.")
		} else {
			req.IMDbRating = rating
		}
	}
	if len(req.GenreNames) == 0 {
		problems = append(problems, "At least one genre is required.")
	}
	return req, problems
}
