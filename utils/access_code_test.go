package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessCode(t *testing.T) {
	code, err := GenerateAccessCode()
	require.NoError(t, err)

	assert.Len(t, code, AccessCodeLength)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(AccessCodeAlphabet, r), "unexpected character %q", r)
	}
}

func TestGenerateAccessCodeIsRandom(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := GenerateAccessCode()
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate access code %s", code)
		seen[code] = true
	}
}
