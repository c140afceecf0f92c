package application

import "strings"

const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

// CheckPasswordStrength enforces the account password policy: at least
// 8 characters with one uppercase letter, one lowercase letter, one
// digit and one symbol from the allowed punctuation set. The HTTP edge
// rejects most weak passwords via the strongpwd binding tag, but the
// reset flow re-validates here because it bypasses registration binding.
func CheckPasswordStrength(pw string) error {
	if len(pw) < 8 {
		return ErrWeakPassword
	}
	var upper, lower, digit, symbol bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	if !upper || !lower || !digit || !symbol {
		return ErrWeakPassword
	}
	return nil
}
