// Package dto holds the wire shapes of the remote forum backend. Field names
// follow the backend's Spanish JSON contract exactly.
package dto

import (
	"foro_backend/internal/feature/auth/domain/entity"
)

// Role is the wire shape of a user role.
type Role struct {
	ID          int    `json:"id_rol"`
	Name        string `json:"nombre_rol"`
	Description string `json:"descripcion_rol"`
}

// User is the wire shape of a user. Clave carries the bcrypt hash of the
// password; plaintext never crosses the wire.
type User struct {
	ID           *uint  `json:"id,omitempty"`
	Name         string `json:"nombre"`
	Email        string `json:"correo"`
	PasswordHash string `json:"clave"`
	AcceptsTerms int    `json:"acepta_terminos"` // 0|1
	Role         Role   `json:"rol"`
}

// roleIDs as the backend numbers them.
const (
	roleIDAdmin     = 1
	roleIDModerator = 2
	roleIDUser      = 3
)

// FromUserEntity maps a domain user onto the wire shape. A zero id is
// omitted so creates post without one.
func FromUserEntity(u entity.User) User {
	accepts := 0
	if u.AcceptedTerms {
		accepts = 1
	}
	var id *uint
	if u.ID != 0 {
		v := u.ID
		id = &v
	}
	return User{
		ID:           id,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		AcceptsTerms: accepts,
		Role:         roleFromEntity(u.Role),
	}
}

// ToEntity maps the wire shape onto a domain user. An absent role name maps
// to RoleUnset, which grants nothing.
func (u User) ToEntity() entity.User {
	var id uint
	if u.ID != nil {
		id = *u.ID
	}
	return entity.User{
		ID:            id,
		Name:          u.Name,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		AcceptedTerms: u.AcceptsTerms != 0,
		Role:          entity.ParseRole(u.Role.Name),
	}
}

func roleFromEntity(r entity.Role) Role {
	switch r {
	case entity.RoleAdmin:
		return Role{ID: roleIDAdmin, Name: r.Name()}
	case entity.RoleModerator:
		return Role{ID: roleIDModerator, Name: r.Name()}
	case entity.RoleUser:
		return Role{ID: roleIDUser, Name: r.Name()}
	default:
		return Role{}
	}
}
