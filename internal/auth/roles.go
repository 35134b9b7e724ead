package auth

// Role is the coarse permission level carried by every account and
// embedded in every access token.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleViewer Role = "viewer"
)

// ParseRole validates a raw role string against the closed role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleViewer:
		return Role(s), true
	}
	return "", false
}

// RoleSet is the set of roles permitted to attempt an operation.
// Endpoint classes supply their set at the call site.
type RoleSet map[Role]struct{}

// NewRoleSet builds a RoleSet from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Contains reports whether the role is a member of the set.
func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

// Shared endpoint role sets. Collection-level listing and mutation of
// global lookup data are restricted; single-resource access is open to
// every role subject to the ownership check.
var (
	AdminOnly    = NewRoleSet(RoleAdmin)
	AdminAndUser = NewRoleSet(RoleAdmin, RoleUser)
	AllRoles     = NewRoleSet(RoleAdmin, RoleUser, RoleViewer)
)
