package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenOTPCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := GenOTPCode()
		require.NoError(t, err)
		assert.Len(t, code, OTPLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(otpAlphabet, r), "unexpected character %q", r)
		}
		seen[code] = true
	}
	// 100 draws from a 62^6 space should essentially never collide
	assert.Greater(t, len(seen), 95)
}

func TestGenTokenKey(t *testing.T) {
	a, err := GenTokenKey()
	require.NoError(t, err)
	b, err := GenTokenKey()
	require.NoError(t, err)

	assert.Len(t, a, 40)
	assert.NotEqual(t, a, b)
	assert.Equal(t, strings.ToLower(a), a, "key must be lowercase hex")
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Abc@12345")
	require.NoError(t, err)
	assert.NotEqual(t, "Abc@12345", hash)
	assert.True(t, CompareHashAndPassword(hash, "Abc@12345"))
	assert.False(t, CompareHashAndPassword(hash, "Abc@12346"))
}
