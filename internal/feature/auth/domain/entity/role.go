package entity

import "strings"

// Role is a user's access level.
type Role int

const (
	RoleUnset Role = iota
	RoleUser
	RoleModerator
	RoleAdmin
)

// Backend role names.
const (
	roleNameAdmin     = "Administrador"
	roleNameModerator = "Moderador"
	roleNameUser      = "Usuario"
)

// ParseRole maps a role name to a Role. Comparison is case-insensitive;
// unknown names map to RoleUnset, which grants nothing.
func ParseRole(name string) Role {
	switch {
	case strings.EqualFold(name, roleNameAdmin):
		return RoleAdmin
	case strings.EqualFold(name, roleNameModerator):
		return RoleModerator
	case strings.EqualFold(name, roleNameUser):
		return RoleUser
	default:
		return RoleUnset
	}
}

// Name returns the backend's name for the role, empty for RoleUnset.
func (r Role) Name() string {
	switch r {
	case RoleAdmin:
		return roleNameAdmin
	case RoleModerator:
		return roleNameModerator
	case RoleUser:
		return roleNameUser
	default:
		return ""
	}
}

// IsAdmin reports whether the role grants administrator access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
