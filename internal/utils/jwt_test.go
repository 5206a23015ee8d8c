package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const secret = "test-secret-key-that-is-at-least-32-characters-long"

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager(secret, time.Hour)

	token, err := m.GenerateToken("v-1", "ada@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "v-1", claims.VendorID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.False(t, claims.IsExpired())
	assert.InDelta(t, time.Hour.Seconds(), m.Remaining(claims).Seconds(), 5)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager(secret, time.Hour)
	token, err := m.GenerateToken("v-1", "ada@example.com")
	require.NoError(t, err)

	other := NewJWTManager("another-secret-key-that-is-at-least-32-chars", time.Hour)
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewJWTManager(secret, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateToken("v-1", "ada@example.com")
	require.NoError(t, err)
	_, err = m.ValidateToken(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("supersecret", 4)
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("supersecret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))

	hash, err = HashPassword("supersecret", 99)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
