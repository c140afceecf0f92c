package entity

import (
	"time"
)

// User is the permanent account aggregate.
// Passwords are stored as bcrypt hashes in Password field.
// Username is a short auto-generated public handle, immutable once created.
// OTP and OTPCreatedAt are used by the password-reset flow only; the
// registration flow keeps its code on PendingRegistration instead.
type User struct {
	ID           string
	Email        string
	Username     string
	Password     string
	IsActive     bool
	IsStaff      bool
	OTP          *string
	OTPCreatedAt *time.Time
	CreatedAt    time.Time
}

// LocalPart returns the part of the email before '@', used as the
// default display name at promotion time.
func LocalPart(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
