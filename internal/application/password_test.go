package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPasswordStrength(t *testing.T) {
	valid := []string{
		"Abc@12345",
		`P:ssw0rd`,
		"Xy9<zzzz",
		"A1b2c3d4!",
	}
	for _, pw := range valid {
		assert.NoError(t, CheckPasswordStrength(pw), "password %q should pass", pw)
	}

	invalid := []string{
		"",
		"Ab@1xyz",    // 7 chars
		"abc12345",   // no upper, no symbol
		"ABC12345!",  // no lower
		"Abcdefgh!",  // no digit
		"Abc123456",  // no symbol
		"Abc_12345",  // underscore is not in the allowed set
		"Abc-12345",  // hyphen is not in the allowed set
	}
	for _, pw := range invalid {
		assert.ErrorIs(t, CheckPasswordStrength(pw), ErrWeakPassword, "password %q should fail", pw)
	}
}
