// Package access decides whether a session satisfies a requirement. It has
// no side effects: callers render the fallback or proceed themselves.
package access

import (
	"github.com/jrsteele09/imovie-web/sessions"
)

// Decision is the outcome of a Check. Denied deliberately does not say
// whether the user was anonymous or lacked a role.
type Decision bool

const (
	Denied  Decision = false
	Granted Decision = true
)

func (d Decision) String() string {
	if d == Granted {
		return "granted"
	}
	return "denied"
}

type requirementKind int

const (
	kindAnyAuthenticated requirementKind = iota
	kindRoleIn
)

// Requirement describes what a gated view or action needs.
type Requirement struct {
	kind  requirementKind
	roles sessions.RoleSet
}

// AnyAuthenticated is satisfied by any logged in session.
func AnyAuthenticated() Requirement {
	return Requirement{kind: kindAnyAuthenticated}
}

// RoleIn is satisfied by a logged in session holding at least one of roles.
// With no roles it is never satisfied.
func RoleIn(roles ...string) Requirement {
	return Requirement{kind: kindRoleIn, roles: sessions.NewRoleSet(roles...)}
}

// Admin gates the catalog administration views.
var Admin = RoleIn("ADMIN")

func (r Requirement) String() string {
	if r.kind == kindRoleIn {
		return "role_in(" + r.roles.String() + ")"
	}
	return "any_authenticated"
}

// Check returns Granted when session satisfies req.
func Check(session sessions.Session, req Requirement) Decision {
	if !session.Authenticated || session.Identity == nil {
		return Denied
	}
	switch req.kind {
	case kindAnyAuthenticated:
		return Granted
	case kindRoleIn:
		return Decision(session.Identity.Roles.Intersects(req.roles))
	default:
		return Denied
	}
}

// Allowed is shorthand for Check(...) == Granted.
func Allowed(session sessions.Session, req Requirement) bool {
	return Check(session, req) == Granted
}
