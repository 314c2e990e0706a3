package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyToken_RoundTrip(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.GenerateToken("admin-1", "Alice", 10, time.Hour)
	require.NoError(t, err)

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, 10, claims.Level)
}

func TestVerifyToken_Expired(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.GenerateToken("admin-1", "Alice", 10, -time.Minute)
	require.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	m := NewManager("test-secret")
	other := NewManager("other-secret")

	token, err := m.GenerateToken("admin-1", "Alice", 10, time.Hour)
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	m := NewManager("test-secret")

	_, err := m.VerifyToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
