package sessions

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Observer is notified of every session change across all stores in a
// Registry, together with the browser session id the change belongs to.
type Observer func(sessionID string, session Session)

// SnapshotFactory returns the snapshot store for one browser session.
type SnapshotFactory func(sessionID string) SnapshotStore

type registryEntry struct {
	store    *Store
	restore  sync.Once
	lastUsed time.Time
}

// Registry keeps one Store per browser session id. A store is restored from
// its snapshot the first time it is requested and synced with it on every
// later Get, so servers sharing a snapshot store see each other's logins and
// logouts. Stores idle for longer than the idle TTL are dropped.
type Registry struct {
	factory SnapshotFactory
	idleTTL time.Duration
	now     func() time.Time

	mu        sync.Mutex
	entries   map[string]*registryEntry
	observers []Observer
	onEvict   []func(sessionID string)
}

// NewRegistry creates a Registry. An idleTTL of zero keeps stores forever.
func NewRegistry(factory SnapshotFactory, idleTTL time.Duration) *Registry {
	return &Registry{
		factory: factory,
		idleTTL: idleTTL,
		now:     time.Now,
		entries: make(map[string]*registryEntry),
	}
}

// Subscribe adds an observer for stores created after this call.
func (r *Registry) Subscribe(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
}

// OnEvict registers fn to run after a store is dropped by Forget or Cleanup.
func (r *Registry) OnEvict(fn func(sessionID string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onEvict = append(r.onEvict, fn)
}

// Get returns the Store for sessionID, restored or synced with its snapshot.
func (r *Registry) Get(ctx context.Context, sessionID string) *Store {
	r.mu.Lock()
	entry, ok := r.entries[sessionID]
	if !ok {
		entry = &registryEntry{store: NewStore(r.factory(sessionID))}
		for _, o := range slices.Clone(r.observers) {
			entry.store.Subscribe(func(s Session) { o(sessionID, s) })
		}
		r.entries[sessionID] = entry
	}
	entry.lastUsed = r.now()
	r.mu.Unlock()

	restored := false
	entry.restore.Do(func() {
		entry.store.Restore(ctx)
		restored = true
	})
	if !restored {
		entry.store.Sync(ctx)
	}
	return entry.store
}

// Forget drops the in-memory store for sessionID. Its snapshot is untouched.
func (r *Registry) Forget(sessionID string) {
	r.mu.Lock()
	_, ok := r.entries[sessionID]
	delete(r.entries, sessionID)
	hooks := slices.Clone(r.onEvict)
	r.mu.Unlock()

	if ok {
		for _, fn := range hooks {
			fn(sessionID)
		}
	}
}

// Len returns the number of live stores.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Cleanup evicts stores idle for longer than the idle TTL and returns how
// many were removed.
func (r *Registry) Cleanup() int {
	if r.idleTTL <= 0 {
		return 0
	}
	r.mu.Lock()
	cutoff := r.now().Add(-r.idleTTL)
	var removed []string
	for id, entry := range r.entries {
		if entry.lastUsed.Before(cutoff) {
			delete(r.entries, id)
			removed = append(removed, id)
		}
	}
	hooks := slices.Clone(r.onEvict)
	r.mu.Unlock()

	for _, id := range removed {
		for _, fn := range hooks {
			fn(id)
		}
	}
	return len(removed)
}
