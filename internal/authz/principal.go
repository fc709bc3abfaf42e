package authz

import "lendshare-backend/internal/domain"

// Principal is the authenticated identity an authorization decision runs
// against. A zero UserID with no roles is the anonymous sentinel.
type Principal struct {
	UserID int32
	Roles  []domain.Role
	// AdminScheme is true only when the principal authenticated through the
	// admin authentication scheme. An Admin role claim obtained through the
	// regular scheme must not unlock the admin bypass.
	AdminScheme bool
}

// Anonymous returns the unauthenticated principal.
func Anonymous() Principal {
	return Principal{}
}

func (p Principal) IsAnonymous() bool {
	return p.UserID == 0
}

func (p Principal) HasRole(role domain.Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the principal qualifies for the admin bypass.
func (p Principal) IsAdmin() bool {
	return p.AdminScheme && p.HasRole(domain.RoleAdmin)
}
