package watchlist_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/imovie-web/sessions"
	"github.com/jrsteele09/imovie-web/sessions/snapshots"
	"github.com/jrsteele09/imovie-web/watchlist"
)

var heat = sessions.MovieRef{ID: 3, Title: "Heat"}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	l := watchlist.New(snapshots.NewMemory())

	items, err := l.Items(ctx)
	require.NoError(t, err)
	require.Empty(t, items)

	added, err := l.Toggle(ctx, heat)
	require.NoError(t, err)
	require.True(t, added)

	ok, err := l.Contains(ctx, heat.ID)
	require.NoError(t, err)
	require.True(t, ok)

	added, err = l.Toggle(ctx, heat)
	require.NoError(t, err)
	require.False(t, added)

	ok, err = l.Contains(ctx, heat.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestItemsKeepOrder(t *testing.T) {
	ctx := context.Background()
	l := watchlist.New(snapshots.NewMemory())

	for _, m := range []sessions.MovieRef{{ID: 5, Title: "E"}, {ID: 1, Title: "A"}, {ID: 3, Title: "C"}} {
		_, err := l.Toggle(ctx, m)
		require.NoError(t, err)
	}
	_, err := l.Toggle(ctx, sessions.MovieRef{ID: 1})
	require.NoError(t, err)

	items, err := l.Items(ctx)
	require.NoError(t, err)
	require.Equal(t, []sessions.MovieRef{{ID: 5, Title: "E"}, {ID: 3, Title: "C"}}, items)

	ids, err := l.IDs(ctx)
	require.NoError(t, err)
	require.Equal(t, map[int64]bool{5: true, 3: true}, ids)
}

func TestMalformedListReadsEmpty(t *testing.T) {
	ctx := context.Background()
	for name, raw := range map[string]string{
		"invalid json": "{nope",
		"object":       `{"id":1}`,
		"bad ids":      `[{"id":0},{"id":-2}]`,
	} {
		t.Run(name, func(t *testing.T) {
			store := snapshots.NewMemory()
			require.NoError(t, store.Set(ctx, watchlist.Key, []byte(raw)))
			l := watchlist.New(store)

			items, err := l.Items(ctx)
			require.NoError(t, err)
			require.Empty(t, items)

			added, err := l.Toggle(ctx, heat)
			require.NoError(t, err)
			require.True(t, added)
		})
	}
}

func TestListsShareStorePerSession(t *testing.T) {
	ctx := context.Background()
	lists := watchlist.NewLists(snapshots.Factory(snapshots.NewMemory()))

	_, err := lists.For("a").Toggle(ctx, heat)
	require.NoError(t, err)

	ok, err := lists.For("a").Contains(ctx, heat.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = lists.For("b").Contains(ctx, heat.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestConcurrentToggles(t *testing.T) {
	ctx := context.Background()
	lists := watchlist.NewLists(snapshots.Factory(snapshots.NewMemory()))

	var wg sync.WaitGroup
	for i := int64(1); i <= 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := lists.For("s").Toggle(ctx, sessions.MovieRef{ID: id})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	items, err := lists.For("s").Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 20)
}
