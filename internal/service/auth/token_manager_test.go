package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := NewTokenManager("test-signing-key", time.Hour)

	token, err := m.Issue("user-1", "alice", false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.False(t, claims.IsAdmin)
}

func TestTokenManager_AdminFlagRoundTrip(t *testing.T) {
	m := NewTokenManager("test-signing-key", time.Hour)

	token, err := m.Issue("user-2", "root", true)
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestTokenManager_MissingToken(t *testing.T) {
	m := NewTokenManager("test-signing-key", time.Hour)

	_, err := m.Verify("")
	assert.ErrorIs(t, err, ErrTokenMissing)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	m := NewTokenManager("test-signing-key", -time.Minute)

	token, err := m.Issue("user-1", "alice", false)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongKey(t *testing.T) {
	m := NewTokenManager("test-signing-key", time.Hour)
	other := NewTokenManager("different-key", time.Hour)

	token, err := m.Issue("user-1", "alice", false)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_GarbageToken(t *testing.T) {
	m := NewTokenManager("test-signing-key", time.Hour)

	_, err := m.Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
