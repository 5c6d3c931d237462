package sessions_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/imovie-web/sessions"
)

func TestRoleSet(t *testing.T) {
	t.Run("dedupes and sorts", func(t *testing.T) {
		rs := sessions.NewRoleSet("USER", " ADMIN ", "USER", "")
		require.Equal(t, []string{"ADMIN", "USER"}, rs.Slice())
		require.Equal(t, 2, rs.Len())
		require.Equal(t, "ADMIN,USER", rs.String())
	})

	t.Run("membership", func(t *testing.T) {
		rs := sessions.NewRoleSet("USER")
		require.True(t, rs.Has("USER"))
		require.False(t, rs.Has("ADMIN"))
		require.True(t, rs.Intersects(sessions.NewRoleSet("ADMIN", "USER")))
		require.False(t, rs.Intersects(sessions.NewRoleSet("ADMIN")))
		require.False(t, sessions.RoleSet{}.Intersects(rs))
	})

	t.Run("slice is a copy", func(t *testing.T) {
		rs := sessions.NewRoleSet("ADMIN")
		roles := rs.Slice()
		roles[0] = "ROOT"
		require.True(t, rs.Has("ADMIN"))
	})

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(sessions.RoleSet{})
		require.NoError(t, err)
		require.JSONEq(t, `[]`, string(data))

		var rs sessions.RoleSet
		require.NoError(t, json.Unmarshal([]byte(`["USER","ADMIN","USER"]`), &rs))
		require.Equal(t, []string{"ADMIN", "USER"}, rs.Slice())
	})
}

func TestIdentity_SnapshotShape(t *testing.T) {
	identity := sessions.Identity{
		ID:          1,
		DisplayName: "Ada",
		Email:       "ada@example.com",
		Roles:       sessions.NewRoleSet("ADMIN"),
	}
	data, err := json.Marshal(identity)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":1,"name":"Ada","email":"ada@example.com","roles":["ADMIN"]}`, string(data))
}

func TestSession_HasRole(t *testing.T) {
	require.False(t, sessions.Session{}.HasRole("ADMIN"))
	require.Zero(t, sessions.Session{}.UserID())

	s := sessions.Session{
		Authenticated: true,
		Identity:      &sessions.Identity{ID: 3, Roles: sessions.NewRoleSet("ADMIN")},
	}
	require.True(t, s.HasRole("ADMIN"))
	require.EqualValues(t, 3, s.UserID())
}

func TestState_String(t *testing.T) {
	require.Equal(t, "unknown", sessions.StateUnknown.String())
	require.Equal(t, "logged_out", sessions.StateLoggedOut.String())
	require.Equal(t, "logged_in", sessions.StateLoggedIn.String())
}
