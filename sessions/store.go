package sessions

import (
	"bytes"
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

// Listener is notified synchronously after every Restore, Login and Logout.
type Listener func(Session)

// Store is the single source of truth for one browser session's
// authentication state. All mutation goes through Login and Logout, and the
// persisted snapshot is written before either returns.
type Store struct {
	snapshots SnapshotStore

	mu        sync.Mutex
	state     State
	identity  *Identity
	movies    []MovieRef
	listeners []listenerEntry
	nextID    int

	// seen is the snapshot the in-memory state was last aligned with.
	seen      []byte
	seenFound bool
}

type listenerEntry struct {
	id int
	fn Listener
}

// NewStore creates a Store in StateUnknown backed by the given snapshots.
func NewStore(snapshots SnapshotStore) *Store {
	return &Store{snapshots: snapshots}
}

// Restore hydrates the store from the persisted snapshot. An absent,
// unreadable or malformed snapshot leaves the store logged out. Only the
// first call has any effect.
func (s *Store) Restore(ctx context.Context) {
	s.mu.Lock()
	if s.state != StateUnknown {
		s.mu.Unlock()
		return
	}

	s.state = StateLoggedOut
	data, found, err := s.snapshots.Get(ctx, SnapshotKey)
	if err != nil {
		log.Warn().Err(err).Msg("session snapshot unreadable, starting logged out")
	} else {
		s.applySnapshotLocked(data, found)
	}
	current := s.currentLocked()
	s.mu.Unlock()

	s.notify(current)
}

// Sync re-reads the snapshot and adopts it when another writer sharing the
// snapshot store has changed it since this store last saw it. Listeners run
// only when something changed. A read error keeps the current state.
func (s *Store) Sync(ctx context.Context) {
	s.mu.Lock()
	if s.state == StateUnknown {
		s.mu.Unlock()
		return
	}
	data, found, err := s.snapshots.Get(ctx, SnapshotKey)
	if err != nil {
		s.mu.Unlock()
		log.Warn().Err(err).Msg("session snapshot unreadable, keeping current state")
		return
	}
	if found == s.seenFound && bytes.Equal(data, s.seen) {
		s.mu.Unlock()
		return
	}
	s.applySnapshotLocked(data, found)
	current := s.currentLocked()
	s.mu.Unlock()

	s.notify(current)
}

// applySnapshotLocked replaces the in-memory state with the snapshot. Absent
// or malformed snapshots mean logged out.
func (s *Store) applySnapshotLocked(data []byte, found bool) {
	s.seen = slices.Clone(data)
	s.seenFound = found
	s.identity = nil
	s.movies = nil
	s.state = StateLoggedOut
	if !found {
		return
	}
	identity, err := decodeSnapshot(data)
	if err != nil {
		log.Warn().Err(err).Msg("discarding session snapshot")
		return
	}
	s.identity = identity
	s.movies = slices.Clone(identity.Movies)
	s.state = StateLoggedIn
}

// Login replaces the current identity wholesale and persists the snapshot.
// The identity must come from a successful authentication exchange.
func (s *Store) Login(ctx context.Context, identity Identity) {
	id := identity.clone()

	s.mu.Lock()
	s.identity = id
	s.movies = slices.Clone(id.Movies)
	if s.movies == nil {
		s.movies = []MovieRef{}
	}
	s.state = StateLoggedIn

	if data, err := encodeSnapshot(id); err != nil {
		log.Err(err).Int64("user_id", id.ID).Msg("Failed to encode session snapshot")
	} else if err := s.snapshots.Set(ctx, SnapshotKey, data); err != nil {
		log.Err(err).Int64("user_id", id.ID).Msg("Failed to persist session snapshot")
	} else {
		s.seen, s.seenFound = data, true
	}
	current := s.currentLocked()
	s.mu.Unlock()

	s.notify(current)
}

// Logout clears the session and deletes the snapshot. Calling it while
// logged out changes nothing observable.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.identity = nil
	s.movies = nil
	s.state = StateLoggedOut

	if err := s.snapshots.Delete(ctx, SnapshotKey); err != nil {
		log.Err(err).Msg("Failed to delete session snapshot")
	} else {
		s.seen, s.seenFound = nil, false
	}
	current := s.currentLocked()
	s.mu.Unlock()

	s.notify(current)
}

// Current returns a copy of the session that callers may read freely.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked()
}

// State returns the lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.listeners = slices.DeleteFunc(s.listeners, func(e listenerEntry) bool {
				return e.id == id
			})
		})
	}
}

func (s *Store) currentLocked() Session {
	if s.identity == nil {
		return Session{}
	}
	movies := slices.Clone(s.movies)
	if movies == nil {
		movies = []MovieRef{}
	}
	return Session{
		Authenticated:   true,
		Identity:        s.identity.clone(),
		LastKnownMovies: movies,
	}
}

// notify runs outside the lock so listeners may read the store.
func (s *Store) notify(current Session) {
	s.mu.Lock()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(current)
	}
}
