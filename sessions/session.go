package sessions

import (
	"encoding/json"
	"slices"
	"strings"
)

// State is the authentication lifecycle state of a Store.
type State int

const (
	// StateUnknown is the transient state before Restore has run.
	StateUnknown State = iota
	StateLoggedOut
	StateLoggedIn
)

func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged_out"
	case StateLoggedIn:
		return "logged_in"
	default:
		return "unknown"
	}
}

// MovieRef is a lightweight reference to a catalog movie.
type MovieRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title,omitempty"`
}

// RoleSet is an immutable set of role names. The zero value is the empty set.
type RoleSet struct {
	roles []string // sorted, unique
}

// NewRoleSet builds a RoleSet, dropping blanks and duplicates.
func NewRoleSet(roles ...string) RoleSet {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return RoleSet{}
	}
	slices.Sort(out)
	return RoleSet{roles: slices.Compact(out)}
}

// Has reports whether role is in the set.
func (rs RoleSet) Has(role string) bool {
	_, found := slices.BinarySearch(rs.roles, role)
	return found
}

// Intersects reports whether the two sets share at least one role.
func (rs RoleSet) Intersects(other RoleSet) bool {
	for _, r := range other.roles {
		if rs.Has(r) {
			return true
		}
	}
	return false
}

// Len returns the number of roles.
func (rs RoleSet) Len() int {
	return len(rs.roles)
}

// Slice returns a sorted copy of the roles.
func (rs RoleSet) Slice() []string {
	return slices.Clone(rs.roles)
}

func (rs RoleSet) String() string {
	return strings.Join(rs.roles, ",")
}

func (rs RoleSet) MarshalJSON() ([]byte, error) {
	if rs.roles == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(rs.roles)
}

func (rs *RoleSet) UnmarshalJSON(data []byte) error {
	var roles []string
	if err := json.Unmarshal(data, &roles); err != nil {
		return err
	}
	*rs = NewRoleSet(roles...)
	return nil
}

// Identity is the profile of the authenticated user, as returned by a
// successful authentication exchange with the catalog backend.
type Identity struct {
	ID          int64      `json:"id"`
	DisplayName string     `json:"name"`
	Email       string     `json:"email"`
	Roles       RoleSet    `json:"roles"`
	Movies      []MovieRef `json:"movies,omitempty"`
}

// clone deep copies the identity. An empty movie list becomes nil, which is
// how it reads back from a snapshot.
func (i *Identity) clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	c.Movies = nil
	if len(i.Movies) > 0 {
		c.Movies = slices.Clone(i.Movies)
	}
	return &c
}

// Session is a read-only view of the authentication state.
// Authenticated is true iff Identity is non-nil.
type Session struct {
	Authenticated   bool       `json:"authenticated"`
	Identity        *Identity  `json:"identity"`
	LastKnownMovies []MovieRef `json:"lastKnownMovies"`
}

// HasRole reports whether the session is authenticated with the given role.
func (s Session) HasRole(role string) bool {
	return s.Authenticated && s.Identity != nil && s.Identity.Roles.Has(role)
}

// UserID returns the identity id, or 0 when logged out.
func (s Session) UserID() int64 {
	if s.Identity == nil {
		return 0
	}
	return s.Identity.ID
}
