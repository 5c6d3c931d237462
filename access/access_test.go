package access_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/imovie-web/access"
	"github.com/jrsteele09/imovie-web/sessions"
	"github.com/jrsteele09/imovie-web/sessions/snapshots"
)

func loggedIn(roles ...string) sessions.Session {
	return sessions.Session{
		Authenticated: true,
		Identity: &sessions.Identity{
			ID:          1,
			DisplayName: "Ada",
			Roles:       sessions.NewRoleSet(roles...),
		},
	}
}

func TestCheck_RoleIn(t *testing.T) {
	admin := access.RoleIn("ADMIN")

	require.Equal(t, access.Denied, access.Check(loggedIn("USER"), admin))
	require.Equal(t, access.Granted, access.Check(loggedIn("USER", "ADMIN"), admin))
	require.Equal(t, access.Denied, access.Check(sessions.Session{}, admin))

	t.Run("any of several roles", func(t *testing.T) {
		req := access.RoleIn("EDITOR", "ADMIN")
		require.Equal(t, access.Granted, access.Check(loggedIn("EDITOR"), req))
		require.Equal(t, access.Denied, access.Check(loggedIn("USER"), req))
	})

	t.Run("empty role requirement", func(t *testing.T) {
		require.Equal(t, access.Denied, access.Check(loggedIn("ADMIN"), access.RoleIn()))
	})
}

func TestCheck_AnyAuthenticated(t *testing.T) {
	req := access.AnyAuthenticated()

	require.Equal(t, access.Denied, access.Check(sessions.Session{}, req))
	require.Equal(t, access.Granted, access.Check(loggedIn(), req))
	require.Equal(t, access.Granted, access.Check(loggedIn("USER"), req))
	require.Equal(t, access.Granted, access.Check(loggedIn("ADMIN"), req))
}

func TestCheck_InconsistentSessionIsDenied(t *testing.T) {
	require.Equal(t, access.Denied, access.Check(sessions.Session{Authenticated: true}, access.AnyAuthenticated()))
}

func TestCheck_LoginLogoutScenario(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewStore(snapshots.NewMemory())
	store.Restore(ctx)

	store.Login(ctx, sessions.Identity{ID: 1, DisplayName: "Ada", Roles: sessions.NewRoleSet("ADMIN")})
	require.Equal(t, access.Granted, access.Check(store.Current(), access.RoleIn("ADMIN")))

	store.Logout(ctx)
	require.Equal(t, access.Denied, access.Check(store.Current(), access.RoleIn("ADMIN")))
}

func TestCheck_DoesNotMutateSession(t *testing.T) {
	s := loggedIn("USER")
	before := s.Identity.Roles.Slice()

	access.Check(s, access.Admin)
	access.Check(s, access.AnyAuthenticated())

	require.Equal(t, before, s.Identity.Roles.Slice())
	require.True(t, s.Authenticated)
}

func TestStrings(t *testing.T) {
	require.Equal(t, "granted", access.Granted.String())
	require.Equal(t, "denied", access.Denied.String())
	require.Equal(t, "any_authenticated", access.AnyAuthenticated().String())
	require.Equal(t, "role_in(ADMIN,EDITOR)", access.RoleIn("EDITOR", "ADMIN").String())
	require.True(t, access.Allowed(loggedIn("ADMIN"), access.Admin))
}
