package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		Secret:   "test-secret",
		Issuer:   "bookstore",
		Audience: "bookstore-users",
		TTL:      time.Hour,
	})
	require.NoError(t, err)
	return m
}

func TestGenerateAndVerify(t *testing.T) {
	m := newTestManager(t)

	token, jti, err := m.Generate(42, "customer")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, jti)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, jti, claims.ID)
	assert.False(t, claims.IsAdmin())
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m := newTestManager(t)
	other, err := NewManager(Config{Secret: "other-secret", Issuer: "bookstore", Audience: "bookstore-users", TTL: time.Hour})
	require.NoError(t, err)

	token, _, err := m.Generate(1, "")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	m := newTestManager(t)
	other, err := NewManager(Config{Secret: "test-secret", Issuer: "someone-else", Audience: "bookstore-users", TTL: time.Hour})
	require.NoError(t, err)

	token, _, err := m.Generate(1, "")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestAdminRole(t *testing.T) {
	m := newTestManager(t)

	token, _, err := m.Generate(7, "admin")
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager(Config{})
	assert.Error(t, err)
}
