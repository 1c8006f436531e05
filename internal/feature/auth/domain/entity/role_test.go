package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Role
	}{
		{"exact admin name", "Administrador", RoleAdmin},
		{"case-insensitive admin", "aDmInIsTrAdOr", RoleAdmin},
		{"moderator", "Moderador", RoleModerator},
		{"user", "usuario", RoleUser},
		{"unknown name", "SuperUsuario", RoleUnset},
		{"empty name", "", RoleUnset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRole(tt.input))
		})
	}
}

func TestRoleRoundTrip(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleModerator, RoleUser} {
		assert.Equal(t, r, ParseRole(r.Name()))
	}
	assert.Empty(t, RoleUnset.Name())
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleModerator.IsAdmin())
	assert.False(t, RoleUser.IsAdmin())
	assert.False(t, RoleUnset.IsAdmin())
}
