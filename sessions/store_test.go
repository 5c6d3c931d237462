package sessions_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/imovie-web/sessions"
	"github.com/jrsteele09/imovie-web/sessions/snapshots"
)

func adaIdentity() sessions.Identity {
	return sessions.Identity{
		ID:          1,
		DisplayName: "Ada",
		Email:       "ada@example.com",
		Roles:       sessions.NewRoleSet("ADMIN"),
	}
}

// failingSnapshots fails every operation
type failingSnapshots struct{}

func (failingSnapshots) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("store down")
}
func (failingSnapshots) Set(context.Context, string, []byte) error { return errors.New("store down") }
func (failingSnapshots) Delete(context.Context, string) error      { return errors.New("store down") }

func restoredStore(t *testing.T, snaps sessions.SnapshotStore) *sessions.Store {
	t.Helper()
	s := sessions.NewStore(snaps)
	require.Equal(t, sessions.StateUnknown, s.State())
	s.Restore(context.Background())
	return s
}

func TestStore_LoginThenCurrent(t *testing.T) {
	ctx := context.Background()
	s := restoredStore(t, snapshots.NewMemory())
	require.Equal(t, sessions.StateLoggedOut, s.State())

	identity := adaIdentity()
	s.Login(ctx, identity)

	current := s.Current()
	require.True(t, current.Authenticated)
	require.NotNil(t, current.Identity)
	require.Equal(t, identity, *current.Identity)
	require.Empty(t, current.LastKnownMovies)
	require.Equal(t, sessions.StateLoggedIn, s.State())
}

func TestStore_LoginInitialisesMoviesFromIdentity(t *testing.T) {
	ctx := context.Background()
	s := restoredStore(t, snapshots.NewMemory())

	identity := adaIdentity()
	identity.Movies = []sessions.MovieRef{{ID: 7, Title: "Heat"}, {ID: 3, Title: "Alien"}}
	s.Login(ctx, identity)

	require.Equal(t, identity.Movies, s.Current().LastKnownMovies)
}

func TestStore_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("clears a logged in session", func(t *testing.T) {
		snaps := snapshots.NewMemory()
		s := restoredStore(t, snaps)
		s.Login(ctx, adaIdentity())

		s.Logout(ctx)

		current := s.Current()
		require.False(t, current.Authenticated)
		require.Nil(t, current.Identity)
		require.Empty(t, current.LastKnownMovies)
		_, found, err := snaps.Get(ctx, sessions.SnapshotKey)
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("is idempotent", func(t *testing.T) {
		s := restoredStore(t, snapshots.NewMemory())
		s.Logout(ctx)
		s.Logout(ctx)

		require.Equal(t, sessions.Session{}, s.Current())
		require.Equal(t, sessions.StateLoggedOut, s.State())
	})
}

func TestStore_SnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	snaps := snapshots.NewMemory()

	first := restoredStore(t, snaps)
	identity := adaIdentity()
	identity.Roles = sessions.NewRoleSet("USER", "ADMIN")
	identity.Movies = []sessions.MovieRef{{ID: 42, Title: "Arrival"}}
	first.Login(ctx, identity)

	reloaded := restoredStore(t, snaps)
	require.Equal(t, first.Current(), reloaded.Current())
	require.Equal(t, sessions.StateLoggedIn, reloaded.State())
}

func TestStore_RestoreMalformedSnapshot(t *testing.T) {
	ctx := context.Background()
	cases := map[string]string{
		"invalid json":   `{"id":1,"name":`,
		"json null":      `null`,
		"not an object":  `["ADMIN"]`,
		"missing id":     `{"name":"Ada","roles":["ADMIN"]}`,
		"roles not list": `{"id":1,"roles":"ADMIN"}`,
		"empty":          ``,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			snaps := snapshots.NewMemory()
			require.NoError(t, snaps.Set(ctx, sessions.SnapshotKey, []byte(raw)))

			s := restoredStore(t, snaps)

			require.Equal(t, sessions.StateLoggedOut, s.State())
			require.False(t, s.Current().Authenticated)
			require.Nil(t, s.Current().Identity)
		})
	}
}

func TestStore_RestoreReadError(t *testing.T) {
	s := restoredStore(t, failingSnapshots{})
	require.Equal(t, sessions.StateLoggedOut, s.State())
}

func TestStore_RestoreOnlyOnce(t *testing.T) {
	ctx := context.Background()
	snaps := snapshots.NewMemory()
	s := restoredStore(t, snaps)

	encoded := `{"id":9,"name":"Late","email":"late@example.com","roles":["USER"]}`
	require.NoError(t, snaps.Set(ctx, sessions.SnapshotKey, []byte(encoded)))
	s.Restore(ctx)

	require.False(t, s.Current().Authenticated)
}

func TestStore_WriteFailureStillChangesState(t *testing.T) {
	ctx := context.Background()
	s := restoredStore(t, failingSnapshots{})

	s.Login(ctx, adaIdentity())
	require.True(t, s.Current().Authenticated)

	s.Logout(ctx)
	require.False(t, s.Current().Authenticated)
}

func TestStore_ReloginReplacesIdentity(t *testing.T) {
	ctx := context.Background()
	s := restoredStore(t, snapshots.NewMemory())

	first := adaIdentity()
	first.Movies = []sessions.MovieRef{{ID: 1}}
	s.Login(ctx, first)

	second := sessions.Identity{ID: 2, DisplayName: "Grace", Roles: sessions.NewRoleSet("USER")}
	s.Login(ctx, second)

	current := s.Current()
	require.Equal(t, second, *current.Identity)
	require.False(t, current.Identity.Roles.Has("ADMIN"))
	require.Empty(t, current.LastKnownMovies)
}

func TestStore_CurrentIsACopy(t *testing.T) {
	ctx := context.Background()
	s := restoredStore(t, snapshots.NewMemory())

	identity := adaIdentity()
	identity.Movies = []sessions.MovieRef{{ID: 5, Title: "Up"}}
	s.Login(ctx, identity)

	// Mutating the caller's value or a returned view must not leak back in
	identity.Movies[0].Title = "changed"
	view := s.Current()
	view.Identity.DisplayName = "changed"
	view.LastKnownMovies[0].Title = "changed"

	again := s.Current()
	require.Equal(t, "Ada", again.Identity.DisplayName)
	require.Equal(t, "Up", again.LastKnownMovies[0].Title)
	require.Equal(t, "Up", again.Identity.Movies[0].Title)
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	s := sessions.NewStore(snapshots.NewMemory())

	var seen []sessions.Session
	unsubscribe := s.Subscribe(func(sess sessions.Session) {
		seen = append(seen, sess)
	})

	s.Restore(ctx)
	s.Login(ctx, adaIdentity())
	s.Logout(ctx)

	require.Len(t, seen, 3)
	require.False(t, seen[0].Authenticated)
	require.True(t, seen[1].Authenticated)
	require.False(t, seen[2].Authenticated)

	unsubscribe()
	unsubscribe()
	s.Login(ctx, adaIdentity())
	require.Len(t, seen, 3)
}

func TestStore_ListenerCanReadStore(t *testing.T) {
	ctx := context.Background()
	s := restoredStore(t, snapshots.NewMemory())

	var state sessions.State
	s.Subscribe(func(sessions.Session) {
		state = s.State()
	})
	s.Login(ctx, adaIdentity())

	require.Equal(t, sessions.StateLoggedIn, state)
}

func TestStore_SnapshotRoundTripWithoutRolesOrMovies(t *testing.T) {
	ctx := context.Background()

	identities := map[string]sessions.Identity{
		"zero values": {ID: 5, DisplayName: "Bo", Email: "bo@example.com"},
		"empty lists": {ID: 5, DisplayName: "Bo", Email: "bo@example.com", Roles: sessions.NewRoleSet(), Movies: []sessions.MovieRef{}},
	}

	for name, identity := range identities {
		t.Run(name, func(t *testing.T) {
			snaps := snapshots.NewMemory()
			first := restoredStore(t, snaps)
			first.Login(ctx, identity)

			reloaded := restoredStore(t, snaps)
			require.Equal(t, first.Current(), reloaded.Current())
			require.Equal(t, sessions.RoleSet{}, reloaded.Current().Identity.Roles)
			require.Nil(t, reloaded.Current().Identity.Movies)
		})
	}
}

func TestStore_SyncAdoptsChangesFromAnotherWriter(t *testing.T) {
	ctx := context.Background()
	snaps := snapshots.NewMemory()

	writer := restoredStore(t, snaps)
	reader := restoredStore(t, snaps)

	var seen []bool
	reader.Subscribe(func(s sessions.Session) { seen = append(seen, s.Authenticated) })

	writer.Login(ctx, adaIdentity())
	reader.Sync(ctx)
	require.Equal(t, sessions.StateLoggedIn, reader.State())
	require.Equal(t, writer.Current(), reader.Current())

	reader.Sync(ctx)
	require.Equal(t, []bool{true}, seen, "unchanged snapshot must not notify")

	writer.Logout(ctx)
	reader.Sync(ctx)
	require.Equal(t, sessions.StateLoggedOut, reader.State())
	require.False(t, reader.Current().Authenticated)
	require.Equal(t, []bool{true, false}, seen)
}

func TestStore_SyncKeepsStateOnReadError(t *testing.T) {
	ctx := context.Background()
	s := restoredStore(t, failingSnapshots{})
	s.Login(ctx, adaIdentity())

	s.Sync(ctx)
	require.True(t, s.Current().Authenticated)
}

func TestStore_SyncBeforeRestoreDoesNothing(t *testing.T) {
	ctx := context.Background()
	snaps := snapshots.NewMemory()
	restoredStore(t, snaps).Login(ctx, adaIdentity())

	s := sessions.NewStore(snaps)
	s.Sync(ctx)
	require.Equal(t, sessions.StateUnknown, s.State())
}
