package mockapi

import (
	"slices"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/jrsteele09/imovie-web/catalog"
)

var (
	errMovieNotFound = errors.New("movie not found")
	errGenreNotFound = errors.New("genre not found")
	errActorNotFound = errors.New("actor not found")
	errInvalidMovie  = errors.New("invalid movie")
)

// movieStore keeps the catalog in memory. Directors, actors and genres are
// created on first reference by name, as the real backend does.
type movieStore struct {
	lock sync.RWMutex

	movies map[int64]*catalog.Movie
	genres map[int64]catalog.Genre
	people map[int64]catalog.Person

	genreByName  map[string]int64
	personByName map[string]int64

	nextMovieID  int64
	nextGenreID  int64
	nextPersonID int64
}

func newMovieStore() *movieStore {
	return &movieStore{
		movies:       make(map[int64]*catalog.Movie),
		genres:       make(map[int64]catalog.Genre),
		people:       make(map[int64]catalog.Person),
		genreByName:  make(map[string]int64),
		personByName: make(map[string]int64),
		nextMovieID:  1,
		nextGenreID:  1,
		nextPersonID: 1,
	}
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func validateMovie(req catalog.MovieRequest) error {
	switch {
	case strings.TrimSpace(req.Title) == "":
		return errors.Wrap(errInvalidMovie, "title is required")
	case req.Year < 1888:
		return errors.Wrap(errInvalidMovie, "year is out of range")
	case req.Duration < 0:
		return errors.Wrap(errInvalidMovie, "duration must not be negative")
	case req.IMDbRating < 0 || req.IMDbRating > 10:
		return errors.Wrap(errInvalidMovie, "imdbRating must be between 0 and 10")
	}
	return nil
}

func (ms *movieStore) add(req catalog.MovieRequest) (catalog.Movie, error) {
	if err := validateMovie(req); err != nil {
		return catalog.Movie{}, err
	}
	ms.lock.Lock()
	defer ms.lock.Unlock()

	movie := ms.buildLocked(ms.nextMovieID, req)
	ms.nextMovieID++
	ms.movies[movie.ID] = &movie
	return cloneMovie(movie), nil
}

func (ms *movieStore) update(id int64, req catalog.MovieRequest) (catalog.Movie, error) {
	if err := validateMovie(req); err != nil {
		return catalog.Movie{}, err
	}
	ms.lock.Lock()
	defer ms.lock.Unlock()

	if _, ok := ms.movies[id]; !ok {
		return catalog.Movie{}, errors.Wrapf(errMovieNotFound, "[movieStore.update] id %d", id)
	}
	movie := ms.buildLocked(id, req)
	ms.movies[id] = &movie
	return cloneMovie(movie), nil
}

func (ms *movieStore) remove(id int64) error {
	ms.lock.Lock()
	defer ms.lock.Unlock()

	if _, ok := ms.movies[id]; !ok {
		return errors.Wrapf(errMovieNotFound, "[movieStore.remove] id %d", id)
	}
	delete(ms.movies, id)
	return nil
}

func (ms *movieStore) get(id int64) (catalog.Movie, error) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()

	m, ok := ms.movies[id]
	if !ok {
		return catalog.Movie{}, errors.Wrapf(errMovieNotFound, "[movieStore.get] id %d", id)
	}
	return cloneMovie(*m), nil
}

// list returns movies in id order, optionally filtered.
func (ms *movieStore) list(keep func(*catalog.Movie) bool) []catalog.Movie {
	ms.lock.RLock()
	defer ms.lock.RUnlock()

	out := make([]catalog.Movie, 0, len(ms.movies))
	for _, m := range ms.movies {
		if keep == nil || keep(m) {
			out = append(out, cloneMovie(*m))
		}
	}
	slices.SortFunc(out, func(a, b catalog.Movie) int { return int(a.ID - b.ID) })
	return out
}

func (ms *movieStore) listGenres() []catalog.Genre {
	ms.lock.RLock()
	defer ms.lock.RUnlock()

	out := make([]catalog.Genre, 0, len(ms.genres))
	for _, g := range ms.genres {
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b catalog.Genre) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func (ms *movieStore) genreMovies(id int64) (catalog.GenreMovies, error) {
	ms.lock.RLock()
	genre, ok := ms.genres[id]
	ms.lock.RUnlock()
	if !ok {
		return catalog.GenreMovies{}, errors.Wrapf(errGenreNotFound, "[movieStore.genreMovies] id %d", id)
	}
	movies := ms.list(func(m *catalog.Movie) bool {
		return slices.ContainsFunc(m.Genres, func(g catalog.Genre) bool { return g.ID == id })
	})
	return catalog.GenreMovies{ID: genre.ID, Name: genre.Name, Movies: movies}, nil
}

func (ms *movieStore) actorMovies(id int64) ([]catalog.Movie, error) {
	ms.lock.RLock()
	_, ok := ms.people[id]
	ms.lock.RUnlock()
	if !ok {
		return nil, errors.Wrapf(errActorNotFound, "[movieStore.actorMovies] id %d", id)
	}
	return ms.list(func(m *catalog.Movie) bool {
		return slices.ContainsFunc(m.Actors, func(p catalog.Person) bool { return p.ID == id })
	}), nil
}

func (ms *movieStore) buildLocked(id int64, req catalog.MovieRequest) catalog.Movie {
	movie := catalog.Movie{
		ID:           id,
		Title:        strings.TrimSpace(req.Title),
		Year:         req.Year,
		Description:  req.Description,
		Duration:     req.Duration,
		IMDbRating:   req.IMDbRating,
		PosterURL:    req.PosterURL,
		TrailerURL:   req.TrailerURL,
		WallpaperURL: req.WallpaperURL,
		LogoURL:      req.LogoURL,
		Actors:       []catalog.Person{},
		Genres:       []catalog.Genre{},
	}
	if strings.TrimSpace(req.DirectorName) != "" {
		director := ms.personLocked(req.DirectorName)
		movie.Director = &director
	}
	for _, name := range req.ActorNames {
		if strings.TrimSpace(name) == "" {
			continue
		}
		actor := ms.personLocked(name)
		if !slices.Contains(movie.Actors, actor) {
			movie.Actors = append(movie.Actors, actor)
		}
	}
	for _, name := range req.GenreNames {
		if strings.TrimSpace(name) == "" {
			continue
		}
		genre := ms.genreLocked(name)
		if !slices.Contains(movie.Genres, genre) {
			movie.Genres = append(movie.Genres, genre)
		}
	}
	return movie
}

func (ms *movieStore) personLocked(name string) catalog.Person {
	if id, ok := ms.personByName[nameKey(name)]; ok {
		return ms.people[id]
	}
	p := catalog.Person{ID: ms.nextPersonID, Name: strings.TrimSpace(name)}
	ms.nextPersonID++
	ms.people[p.ID] = p
	ms.personByName[nameKey(name)] = p.ID
	return p
}

func (ms *movieStore) genreLocked(name string) catalog.Genre {
	if id, ok := ms.genreByName[nameKey(name)]; ok {
		return ms.genres[id]
	}
	g := catalog.Genre{ID: ms.nextGenreID, Name: strings.TrimSpace(name)}
	ms.nextGenreID++
	ms.genres[g.ID] = g
	ms.genreByName[nameKey(name)] = g.ID
	return g
}

func cloneMovie(m catalog.Movie) catalog.Movie {
	if m.Director != nil {
		d := *m.Director
		m.Director = &d
	}
	m.Actors = slices.Clone(m.Actors)
	m.Genres = slices.Clone(m.Genres)
	return m
}
