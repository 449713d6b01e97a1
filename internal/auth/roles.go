package auth

import "sort"

// Role spellings recognised in token claims. Each logical role is the union
// of its plain and ROLE_-prefixed spelling.
const (
	RoleAdmin          = "ADMIN"
	RoleAdminPrefixed  = "ROLE_ADMIN"
	RoleSeller         = "SELLER"
	RoleSellerPrefixed = "ROLE_SELLER"
	RoleUser           = "USER"
	RoleUserPrefixed   = "ROLE_USER"
)

var (
	// AdminRoles grants the admin area.
	AdminRoles = []string{RoleAdmin, RoleAdminPrefixed}
	// SellerRoles grants the seller area.
	SellerRoles = []string{RoleSeller, RoleSellerPrefixed}
	// UserRoles marks an ordinary shopper account.
	UserRoles = []string{RoleUser, RoleUserPrefixed}
	// CatalogManagerRoles may create and edit products.
	CatalogManagerRoles = []string{RoleSeller, RoleSellerPrefixed, RoleAdmin, RoleAdminPrefixed}
)

// RoleSet is a set of role identifiers. Lookups are exact and case-sensitive.
type RoleSet map[string]struct{}

// NewRoleSet builds a set, skipping empty identifiers.
func NewRoleSet(roles ...string) RoleSet {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		if role != "" {
			set[role] = struct{}{}
		}
	}
	return set
}

// Has reports exact membership.
func (s RoleSet) Has(role string) bool {
	_, ok := s[role]
	return ok
}

// HasAny reports whether the set intersects roles.
func (s RoleSet) HasAny(roles ...string) bool {
	for _, role := range roles {
		if s.Has(role) {
			return true
		}
	}
	return false
}

// Slice returns the roles sorted.
func (s RoleSet) Slice() []string {
	out := make([]string, 0, len(s))
	for role := range s {
		out = append(out, role)
	}
	sort.Strings(out)
	return out
}

// Access is the single role a session acts under.
type Access int

const (
	AccessAnonymous Access = iota
	AccessBuyer
	AccessSeller
	AccessAdmin
)

func (a Access) String() string {
	switch a {
	case AccessBuyer:
		return "buyer"
	case AccessSeller:
		return "seller"
	case AccessAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// Policy answers capability questions for one session.
type Policy struct {
	roles    RoleSet
	hasToken bool
}

// NewPolicy builds a policy from token presence and its roles.
func NewPolicy(hasToken bool, roles RoleSet) Policy {
	if !hasToken {
		roles = nil
	}
	return Policy{roles: roles, hasToken: hasToken}
}

// PolicyForToken decodes the token and builds its policy.
func PolicyForToken(token string) Policy {
	return NewPolicy(token != "", DecodeClaims(token).Roles)
}

// HasToken reports whether the session carries a token.
func (p Policy) HasToken() bool { return p.hasToken }

// Roles returns the decoded role set.
func (p Policy) Roles() RoleSet { return p.roles }

// IsAdmin reports ADMIN or ROLE_ADMIN.
func (p Policy) IsAdmin() bool { return p.roles.HasAny(AdminRoles...) }

// IsSeller reports SELLER or ROLE_SELLER.
func (p Policy) IsSeller() bool { return p.roles.HasAny(SellerRoles...) }

// IsBuyer is the default role of any token holder that is neither admin nor seller.
func (p Policy) IsBuyer() bool { return p.hasToken && !p.IsAdmin() && !p.IsSeller() }

// CanManageCatalog reports seller or admin.
func (p Policy) CanManageCatalog() bool { return p.IsSeller() || p.IsAdmin() }

// HasUserRole reports USER or ROLE_USER, which unlocks buying and reviewing.
func (p Policy) HasUserRole() bool { return p.roles.HasAny(UserRoles...) }

// Access collapses the predicates into one role. Admin outranks seller.
func (p Policy) Access() Access {
	switch {
	case !p.hasToken:
		return AccessAnonymous
	case p.IsAdmin():
		return AccessAdmin
	case p.IsSeller():
		return AccessSeller
	default:
		return AccessBuyer
	}
}
