package guard

import "ceria/internal/token"

// Status is the resolution state of a role-gated view.
type Status int

const (
	StatusLoading Status = iota
	StatusAnonymous
	StatusUnauthorized
	StatusAuthorized
)

// IdentitySource is the slice of the session the guards read.
type IdentitySource interface {
	Resolved() bool
	Identity() *token.Identity
}

// Decision is the outcome of a guard check. Redirect is set for every
// non-authorized terminal state; Required and Current carry the diagnostic
// context for unauthorized access.
type Decision struct {
	Status   Status
	Redirect string
	Required string
	Current  token.Role
	Identity *token.Identity
}

// Check evaluates a view that accepts the given roles. Anonymous users are
// sent to the login screen; wrong-role users are sent to their own home
// screen with the mismatch recorded in the decision.
func Check(source IdentitySource, allowed ...token.Role) Decision {
	if !source.Resolved() {
		return Decision{Status: StatusLoading}
	}

	identity := source.Identity()
	if identity == nil {
		return Decision{Status: StatusAnonymous, Redirect: "/login"}
	}

	rule := Rule{Roles: allowed}
	if !rule.Allows(identity.Role) {
		return Decision{
			Status:   StatusUnauthorized,
			Redirect: HomePath(identity.Role),
			Required: rule.RequiredLabel(),
			Current:  identity.Role,
			Identity: identity,
		}
	}

	return Decision{Status: StatusAuthorized, Identity: identity}
}

// CheckGuest evaluates a guest-only view (login, register): any resolved
// identity is redirected to its home screen.
func CheckGuest(source IdentitySource) Decision {
	if !source.Resolved() {
		return Decision{Status: StatusLoading}
	}

	identity := source.Identity()
	if identity != nil {
		return Decision{
			Status:   StatusUnauthorized,
			Redirect: HomePath(identity.Role),
			Current:  identity.Role,
			Identity: identity,
		}
	}
	return Decision{Status: StatusAuthorized}
}
