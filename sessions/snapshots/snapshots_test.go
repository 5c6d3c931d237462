package snapshots_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/imovie-web/sessions"
	"github.com/jrsteele09/imovie-web/sessions/snapshots"
)

func exerciseStore(t *testing.T, store sessions.SnapshotStore) {
	t.Helper()
	ctx := context.Background()

	_, found, err := store.Get(ctx, "user")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Set(ctx, "user", []byte(`{"id":1}`)))
	value, found, err := store.Get(ctx, "user")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `{"id":1}`, string(value))

	require.NoError(t, store.Set(ctx, "user", []byte(`{"id":2}`)))
	value, _, err = store.Get(ctx, "user")
	require.NoError(t, err)
	require.Equal(t, `{"id":2}`, string(value))

	require.NoError(t, store.Delete(ctx, "user"))
	require.NoError(t, store.Delete(ctx, "user"))
	_, found, err = store.Get(ctx, "user")
	require.NoError(t, err)
	require.False(t, found)
}

func newRedisStore(t *testing.T, ttl time.Duration) (*snapshots.Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return snapshots.NewRedis(client, ttl), mr
}

func TestMemory(t *testing.T) {
	exerciseStore(t, snapshots.NewMemory())
}

func TestMemory_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := snapshots.NewMemory()

	value := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", value))
	value[0] = 'x'

	got, _, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(got))
	require.Equal(t, 1, m.Len())
}

func TestRedis(t *testing.T) {
	store, _ := newRedisStore(t, 0)
	exerciseStore(t, store)
}

func TestRedis_TTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, time.Hour)

	require.NoError(t, store.Set(ctx, "user", []byte(`{}`)))
	require.Equal(t, time.Hour, mr.TTL("imovie:snapshot:user"))

	mr.FastForward(2 * time.Hour)
	_, found, err := store.Get(ctx, "user")
	require.NoError(t, err)
	require.False(t, found)
}

func TestRedis_ServerDown(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, 0)
	mr.Close()

	_, _, err := store.Get(ctx, "user")
	require.Error(t, err)
	require.Error(t, store.Set(ctx, "user", []byte("{}")))
}

func TestDial(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := snapshots.Dial(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	require.NoError(t, client.Close())

	mr.Close()
	_, err = snapshots.Dial(context.Background(), mr.Addr(), "", 0)
	require.Error(t, err)
}

func TestScoped(t *testing.T) {
	ctx := context.Background()
	shared := snapshots.NewMemory()
	a := snapshots.Scoped(shared, "a")
	b := snapshots.Scoped(shared, "b")

	exerciseStore(t, a)

	require.NoError(t, a.Set(ctx, "user", []byte("A")))
	_, found, err := b.Get(ctx, "user")
	require.NoError(t, err)
	require.False(t, found)

	raw, found, err := shared.Get(ctx, "a:user")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "A", string(raw))

	factory := snapshots.Factory(shared)
	got, found, err := factory("a").Get(ctx, "user")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "A", string(got))
}
