// Package guard is the single route-to-role table and the two enforcement
// layers that consume it: the view-level check and the edge middleware.
// Keeping one table guarantees the layers cannot drift apart.
package guard

import (
	"strings"

	"ceria/internal/token"
)

// Rule maps a path prefix to the roles allowed under it. A guest rule marks
// an auth screen that resolved identities are redirected away from.
type Rule struct {
	Prefix string
	Roles  []token.Role
	Guest  bool
}

// Allows reports whether the role satisfies the rule.
func (r Rule) Allows(role token.Role) bool {
	for _, allowed := range r.Roles {
		if role == allowed {
			return true
		}
	}
	return false
}

// RequiredLabel renders the rule's role set for diagnostic context, e.g.
// "parent or child".
func (r Rule) RequiredLabel() string {
	labels := make([]string, len(r.Roles))
	for i, role := range r.Roles {
		labels[i] = string(role)
	}
	return strings.Join(labels, " or ")
}

// Table is an ordered list of rules; the first match wins. Guest rules
// match their path exactly, guarded rules by prefix.
type Table struct {
	rules []Rule
}

// NewTable builds a table from rules.
func NewTable(rules ...Rule) *Table {
	return &Table{rules: rules}
}

// Default is the application's route table.
func Default() *Table {
	return NewTable(
		Rule{Prefix: "/login", Guest: true},
		Rule{Prefix: "/register", Guest: true},
		Rule{Prefix: "/dashboard", Roles: []token.Role{token.RoleParent}},
		Rule{Prefix: "/panel", Roles: []token.Role{token.RoleParent, token.RoleChild}},
		Rule{Prefix: "/super-admin", Roles: []token.Role{token.RoleSuperAdmin}},
	)
}

// Match returns the rule covering path, or nil for public paths.
func (t *Table) Match(path string) *Rule {
	for i := range t.rules {
		rule := &t.rules[i]
		if rule.Guest {
			if path == rule.Prefix {
				return rule
			}
			continue
		}
		if strings.HasPrefix(path, rule.Prefix) {
			return rule
		}
	}
	return nil
}

// HomePath is the home screen for a role: the landing page when no role is
// known.
func HomePath(role token.Role) string {
	switch role {
	case token.RoleParent:
		return "/dashboard"
	case token.RoleChild:
		return "/panel"
	case token.RoleSuperAdmin:
		return "/super-admin"
	}
	return "/"
}
