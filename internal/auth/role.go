package auth

import (
	"sort"
	"strings"
)

// Role is one of the fixed account tiers. The set is closed; anything else
// carries no grants.
type Role string

const (
	RoleAdmin              Role = "admin"
	RolePremium            Role = "premium"
	RoleBasic              Role = "basic"
	RoleUnconfirmed        Role = "unconfirmed"
	RoleAnonymousPermanent Role = "anonymous_permanent"
	RoleAnonymous          Role = "anonymous"
)

// ParseRole normalizes raw input into a known Role.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.TrimSpace(strings.ToLower(raw))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RolePremium:
		return RolePremium, true
	case RoleBasic:
		return RoleBasic, true
	case RoleUnconfirmed:
		return RoleUnconfirmed, true
	case RoleAnonymousPermanent:
		return RoleAnonymousPermanent, true
	case RoleAnonymous:
		return RoleAnonymous, true
	}
	return "", false
}

// Scope is a single permission unit in its wire form.
type Scope string

const (
	ScopeReadUnpaid  Scope = "content_unpaid:read"
	ScopeWriteUnpaid Scope = "content_unpaid:write"
	ScopeReadPaid    Scope = "content_paid:read"
	ScopeWritePaid   Scope = "content_paid:write"
	ScopeAdminAll    Scope = "admin:all"
)

// ParseScope maps a raw scope name onto the closed Scope set.
func ParseScope(raw string) (Scope, bool) {
	switch Scope(raw) {
	case ScopeReadUnpaid:
		return ScopeReadUnpaid, true
	case ScopeWriteUnpaid:
		return ScopeWriteUnpaid, true
	case ScopeReadPaid:
		return ScopeReadPaid, true
	case ScopeWritePaid:
		return ScopeWritePaid, true
	case ScopeAdminAll:
		return ScopeAdminAll, true
	}
	return "", false
}

// ScopeDescriptions documents every scope for introspection callers.
var ScopeDescriptions = map[Scope]string{
	ScopeReadUnpaid:  "Read access to unpaid content",
	ScopeWriteUnpaid: "Write access to unpaid content",
	ScopeReadPaid:    "Read access to paid content",
	ScopeWritePaid:   "Write access to paid content",
	ScopeAdminAll:    "Administrative access",
}

// ScopeSet is an unordered collection of scopes.
type ScopeSet map[Scope]struct{}

// NewScopeSet builds a set from the given scopes.
func NewScopeSet(scopes ...Scope) ScopeSet {
	set := make(ScopeSet, len(scopes))
	for _, scope := range scopes {
		set[scope] = struct{}{}
	}
	return set
}

// Has reports membership.
func (s ScopeSet) Has(scope Scope) bool {
	_, ok := s[scope]
	return ok
}

// Strings returns the scope names sorted for a stable wire encoding.
func (s ScopeSet) Strings() []string {
	out := make([]string, 0, len(s))
	for scope := range s {
		out = append(out, string(scope))
	}
	sort.Strings(out)
	return out
}

// roleScopes is the fixed grant table. Note the asymmetry between the two
// anonymous tiers: short-lived anonymous identities get paid reads while
// permanent ones get unpaid reads only. That is product policy, keep it.
var roleScopes = map[Role]ScopeSet{
	RoleAdmin: NewScopeSet(
		ScopeReadUnpaid, ScopeWriteUnpaid, ScopeReadPaid, ScopeWritePaid, ScopeAdminAll,
	),
	RolePremium: NewScopeSet(
		ScopeReadUnpaid, ScopeWriteUnpaid, ScopeReadPaid, ScopeWritePaid,
	),
	RoleBasic:              NewScopeSet(ScopeReadUnpaid, ScopeWriteUnpaid),
	RoleUnconfirmed:        NewScopeSet(ScopeReadUnpaid),
	RoleAnonymousPermanent: NewScopeSet(ScopeReadUnpaid),
	RoleAnonymous:          NewScopeSet(ScopeReadPaid),
}

// ScopesFor returns a copy of the scope set granted to role. Unknown roles
// yield an empty set, which denies everything.
func ScopesFor(role Role) ScopeSet {
	granted, ok := roleScopes[role]
	if !ok {
		return ScopeSet{}
	}
	out := make(ScopeSet, len(granted))
	for scope := range granted {
		out[scope] = struct{}{}
	}
	return out
}
