package models

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Auth is wallet-based only: the users schema must carry a mandatory unique
// ethereum address, default to the siwe auth method, and have no password
// column at all.
func TestUserSchema(t *testing.T) {
	typ := reflect.TypeOf(User{})

	_, hasPassword := typ.FieldByName("Password")
	assert.False(t, hasPassword, "users must not have a password column")

	addr, ok := typ.FieldByName("EthereumAddress")
	require.True(t, ok)
	assert.Contains(t, addr.Tag.Get("gorm"), "not null")
	assert.Contains(t, addr.Tag.Get("gorm"), "uniqueIndex")

	method, ok := typ.FieldByName("AuthMethod")
	require.True(t, ok)
	assert.Contains(t, method.Tag.Get("gorm"), "default:'siwe'")

	role, ok := typ.FieldByName("Role")
	require.True(t, ok)
	assert.Contains(t, role.Tag.Get("gorm"), "default:'buyer'")
}

func TestSessionClaims_IsAdmin(t *testing.T) {
	assert.True(t, (&SessionClaims{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&SessionClaims{Role: RoleBuyer}).IsAdmin())
	assert.False(t, (&SessionClaims{}).IsAdmin())
}
