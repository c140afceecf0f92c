package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// OTPLength is the number of characters in a verification code.
const OTPLength = 6

// otpAlphabet mixes upper/lower case letters and digits so codes are
// short but still negligible to collide within a validity window.
const otpAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenOTPCode generates a random alphanumeric verification code.
func GenOTPCode() (string, error) {
	b := make([]byte, OTPLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = otpAlphabet[int(b[i])%len(otpAlphabet)]
	}
	return string(b), nil
}

// GenTokenKey generates the opaque bearer credential stored per user:
// 20 random bytes, hex-encoded to 40 characters.
func GenTokenKey() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
