package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.GenerateAccessToken("user-1", "ana@example.com", "super_admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "super_admin", claims.Role)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Hour).GenerateAccessToken("user-1", "a@example.com", "admin")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour).ParseAndValidate(token)
	assert.Error(t, err)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)
	token, err := m.GenerateAccessToken("user-1", "a@example.com", "admin")
	require.NoError(t, err)

	_, err = m.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	_, err := m.ParseAndValidate("not.a.token")
	assert.Error(t, err)
}

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasherWithCost(bcrypt.MinCost)

	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, h.Compare(hash, "s3cret-pass"))
	assert.Error(t, h.Compare(hash, "wrong"))
}
