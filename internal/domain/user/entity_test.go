package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("  Maria ", "Maria Costa", "segredo1", RoleOperator, "admin-id")
	require.NoError(t, err)

	assert.Equal(t, "maria", u.Username)
	assert.True(t, u.Active)
	assert.False(t, u.IsAdmin())
	assert.NotEqual(t, "segredo1", u.Password)
	assert.True(t, u.CheckPassword("segredo1"))
	assert.False(t, u.CheckPassword("outra"))

	_, err = NewUser("", "x", "segredo1", RoleAdmin, "")
	assert.ErrorIs(t, err, ErrEmptyUsername)

	_, err = NewUser("x", "x", "123", RoleAdmin, "")
	assert.ErrorIs(t, err, ErrShortPassword)

	_, err = NewUser("x", "x", "segredo1", "gerente", "")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestDeactivate(t *testing.T) {
	u := &User{ID: "u1", Active: true}

	assert.ErrorIs(t, u.Deactivate("u1"), ErrSelfDeactivate)
	assert.True(t, u.Active)

	require.NoError(t, u.Deactivate("admin"))
	assert.False(t, u.Active)
	assert.ErrorIs(t, u.Deactivate("admin"), ErrAlreadyInactive)
}
