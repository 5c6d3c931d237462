// Package watchlist keeps the movies a browser session has added to its
// list. The list lives in the session's snapshot store next to the identity
// snapshot.
package watchlist

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/imovie-web/sessions"
)

// Key is the snapshot key the list is persisted under.
const Key = "addedMovies"

// List is one browser session's watchlist.
type List struct {
	store sessions.SnapshotStore
	mu    *sync.Mutex
}

// New returns a List over store. Lists sharing a store should come from
// the same Lists so toggles do not race.
func New(store sessions.SnapshotStore) *List {
	return &List{store: store, mu: &sync.Mutex{}}
}

// Items returns the saved movies in the order they were added. A missing
// or malformed list reads as empty.
func (l *List) Items(ctx context.Context) ([]sessions.MovieRef, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

// Contains reports whether the movie is on the list.
func (l *List) Contains(ctx context.Context, movieID int64) (bool, error) {
	items, err := l.Items(ctx)
	if err != nil {
		return false, err
	}
	return slices.ContainsFunc(items, func(m sessions.MovieRef) bool { return m.ID == movieID }), nil
}

// IDs returns the ids on the list as a set.
func (l *List) IDs(ctx context.Context) (map[int64]bool, error) {
	items, err := l.Items(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[int64]bool, len(items))
	for _, m := range items {
		ids[m.ID] = true
	}
	return ids, nil
}

// Toggle adds the movie when absent and removes it when present. It
// returns whether the movie is on the list afterwards.
func (l *List) Toggle(ctx context.Context, movie sessions.MovieRef) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.load(ctx)
	if err != nil {
		return false, err
	}

	added := true
	if i := slices.IndexFunc(items, func(m sessions.MovieRef) bool { return m.ID == movie.ID }); i >= 0 {
		items = slices.Delete(items, i, i+1)
		added = false
	} else {
		items = append(items, movie)
	}

	data, err := json.Marshal(items)
	if err != nil {
		return false, fmt.Errorf("encode watchlist: %w", err)
	}
	if err := l.store.Set(ctx, Key, data); err != nil {
		return false, fmt.Errorf("save watchlist: %w", err)
	}
	return added, nil
}

func (l *List) load(ctx context.Context) ([]sessions.MovieRef, error) {
	data, found, err := l.store.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	if !found {
		return []sessions.MovieRef{}, nil
	}
	var items []sessions.MovieRef
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn().Err(err).Msg("discarding malformed watchlist")
		return []sessions.MovieRef{}, nil
	}
	items = slices.DeleteFunc(items, func(m sessions.MovieRef) bool { return m.ID <= 0 })
	if items == nil {
		items = []sessions.MovieRef{}
	}
	return items, nil
}

// Lists hands out the List for each browser session.
type Lists struct {
	factory sessions.SnapshotFactory

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLists(factory sessions.SnapshotFactory) *Lists {
	return &Lists{factory: factory, locks: make(map[string]*sync.Mutex)}
}

// For returns the list of sessionID.
func (ls *Lists) For(sessionID string) *List {
	ls.mu.Lock()
	lock, ok := ls.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		ls.locks[sessionID] = lock
	}
	ls.mu.Unlock()
	return &List{store: ls.factory(sessionID), mu: lock}
}

// Forget drops the per-session lock. The persisted list is untouched.
func (ls *Lists) Forget(sessionID string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	delete(ls.locks, sessionID)
}
