// Package guard decides whether the current session may enter a navigation
// target. Authorization failure is a routing decision, never an error: a
// logged-in user outside a route's allowed set is sent to /dashboard, only a
// missing session goes to /login.
package guard

import "github.com/romeroalan26/posfacturard-console/internal/session"

// Role is one of the four fixed variants the API assigns to users. There is
// no linear privilege order — access is a per-route-class capability set.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleCajero     Role = "cajero"
	RoleInventario Role = "inventario"
	RoleInvitado   Role = "invitado"
)

// ParseRole maps the server's role string to a Role. Unknown strings map to
// an empty Role, which belongs to no allowed set (deny by default).
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleCajero, RoleInventario, RoleInvitado:
		return Role(s)
	default:
		return ""
	}
}

// RouteClass is a named bucket of screens sharing one access rule.
type RouteClass int

const (
	Public RouteClass = iota
	Authenticated
	SalesCapable
	AdminOnly
	GuestOnly
)

// allowedRoles is the single declarative table behind every guard decision.
// Public is absent on purpose: it short-circuits before role evaluation.
var allowedRoles = map[RouteClass]map[Role]bool{
	Authenticated: {RoleAdmin: true, RoleCajero: true, RoleInventario: true, RoleInvitado: true},
	SalesCapable:  {RoleAdmin: true, RoleCajero: true},
	AdminOnly:     {RoleAdmin: true},
	GuestOnly:     {RoleInvitado: true},
}

// SessionState is the guard's view of the session at decision time. Loading
// is a real third state: deciding before the session fetch resolves would
// flash-redirect an authenticated user to /login.
type SessionState struct {
	Loading bool
	Session session.Session
	Present bool
}

// Outcome of a guard evaluation.
type Outcome int

const (
	Defer Outcome = iota // session still loading — render neutral state
	Allow
	Redirect
)

// Decision is the result of evaluating one navigation attempt.
type Decision struct {
	Outcome Outcome
	Target  string // redirect target when Outcome == Redirect
}

const (
	loginPath     = "/login"
	dashboardPath = "/dashboard"
)

// Evaluate runs the fixed decision order: loading → defer; Public → allow;
// no session → /login; role outside the class set → /dashboard. Checking the
// role before session presence would dereference an absent user record, so
// the order is load-bearing.
func Evaluate(state SessionState, class RouteClass) Decision {
	if state.Loading {
		return Decision{Outcome: Defer}
	}
	if class == Public {
		return Decision{Outcome: Allow}
	}
	if !state.Present {
		return Decision{Outcome: Redirect, Target: loginPath}
	}
	role := ParseRole(state.Session.User.Rol)
	if !allowedRoles[class][role] {
		return Decision{Outcome: Redirect, Target: dashboardPath}
	}
	return Decision{Outcome: Allow}
}
