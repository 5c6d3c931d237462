package catalog

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// SortKey orders movie listings.
type SortKey string

const (
	SortNone   SortKey = ""
	SortYear   SortKey = "year"
	SortRating SortKey = "rating"
	SortID     SortKey = "id"
)

// ParseSortKey maps a query value onto a SortKey, ignoring unknown values.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortYear, SortRating, SortID:
		return k
	default:
		return SortNone
	}
}

// SortBy returns a sorted copy of movies. Year and rating sort newest and
// best first; id sorts ascending. Ties keep their input order.
func SortBy(movies []Movie, key SortKey) []Movie {
	out := slices.Clone(movies)
	switch key {
	case SortYear:
		slices.SortStableFunc(out, func(a, b Movie) int { return b.Year - a.Year })
	case SortRating:
		slices.SortStableFunc(out, func(a, b Movie) int {
			switch {
			case a.IMDbRating > b.IMDbRating:
				return -1
			case a.IMDbRating < b.IMDbRating:
				return 1
			}
			return 0
		})
	case SortID:
		slices.SortStableFunc(out, func(a, b Movie) int {
			switch {
			case a.ID < b.ID:
				return -1
			case a.ID > b.ID:
				return 1
			}
			return 0
		})
	}
	return out
}

// WithLogo keeps the movies that have a logo, the ones the home banner shows.
func WithLogo(movies []Movie) []Movie {
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if strings.TrimSpace(m.LogoURL) != "" {
			out = append(out, m)
		}
	}
	return out
}

// TrailerEmbedURL turns a YouTube watch link into its embeddable form.
func TrailerEmbedURL(url string) string {
	url = strings.Replace(url, "watch?v=", "embed/", 1)
	return strings.Replace(url, "&t=", "?start=", 1)
}

// FormatDuration renders minutes as "2h 15m".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// SplitNames splits a comma separated form value into trimmed names.
func SplitNames(s string) []string {
	names := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

// RequestFromMovie prefills the edit form from an existing movie.
func RequestFromMovie(m Movie) MovieRequest {
	req := MovieRequest{
		Title:        m.Title,
		Year:         m.Year,
		Description:  m.Description,
		Duration:     m.Duration,
		IMDbRating:   m.IMDbRating,
		PosterURL:    m.PosterURL,
		TrailerURL:   m.TrailerURL,
		WallpaperURL: m.WallpaperURL,
		LogoURL:      m.LogoURL,
		ActorNames:   make([]string, 0, len(m.Actors)),
		GenreNames:   make([]string, 0, len(m.Genres)),
	}
	if m.Director != nil {
		req.DirectorName = m.Director.Name
	}
	for _, a := range m.Actors {
		req.ActorNames = append(req.ActorNames, a.Name)
	}
	for _, g := range m.Genres {
		req.GenreNames = append(req.GenreNames, g.Name)
	}
	return req
}

// GenreLabel joins genre names the way the banner shows them.
func GenreLabel(genres []Genre) string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, " | ")
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
