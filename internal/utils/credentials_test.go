package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUsername(t *testing.T) {
	username, err := GenerateUsername("Asha Verma")
	require.NoError(t, err)

	assert.Len(t, username, len("asha@verma"))
	assert.NotContains(t, username, " ")
	assert.Equal(t, strings.ToLower(username), username)

	// Same multiset of characters as the source, shuffled.
	want := sortedRunes("asha@verma")
	assert.Equal(t, want, sortedRunes(username))
}

func TestGeneratePassword(t *testing.T) {
	password, err := GeneratePassword("asha.verma@example.com")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(password, "asha&verma"), "dots in the local part become &: %s", password)
	assert.NotContains(t, password, "@example.com")
	assert.Greater(t, len(password), len("asha&verma"))
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 4)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}

func sortedRunes(s string) []rune {
	runes := []rune(s)
	for i := 1; i < len(runes); i++ {
		for j := i; j > 0 && runes[j] < runes[j-1]; j-- {
			runes[j], runes[j-1] = runes[j-1], runes[j]
		}
	}
	return runes
}
