package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tokens := NewTokenManager("secret", time.Hour)

	signed, err := tokens.Issue("admin-1", "Priya Nair", "priya@example.com", RoleAdmin)
	require.NoError(t, err)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.Subject)
	assert.Equal(t, "Priya Nair", claims.FullName)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	signed, err := NewTokenManager("secret-a", time.Hour).Issue("admin-1", "Priya", "p@example.com", RoleAdmin)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).Verify(signed)
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tokens := NewTokenManager("secret", -time.Minute)

	signed, err := tokens.Issue("cand-1", "Asha", "a@example.com", RoleCandidate)
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.Error(t, err)
}
