package snapshots

import (
	"context"

	"github.com/jrsteele09/imovie-web/sessions"
)

var _ sessions.SnapshotStore = scoped{}

type scoped struct {
	store     sessions.SnapshotStore
	namespace string
}

// Scoped returns a view of store in which every key is prefixed with
// namespace, giving each browser session its own key space.
func Scoped(store sessions.SnapshotStore, namespace string) sessions.SnapshotStore {
	return scoped{store: store, namespace: namespace}
}

// Factory adapts a shared store into a per-session factory for a Registry.
func Factory(store sessions.SnapshotStore) sessions.SnapshotFactory {
	return func(sessionID string) sessions.SnapshotStore {
		return Scoped(store, sessionID)
	}
}

func (s scoped) key(key string) string {
	return s.namespace + ":" + key
}

func (s scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.store.Get(ctx, s.key(key))
}

func (s scoped) Set(ctx context.Context, key string, value []byte) error {
	return s.store.Set(ctx, s.key(key), value)
}

func (s scoped) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, s.key(key))
}
