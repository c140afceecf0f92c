package entity

import "time"

// PendingRegistration holds an unconfirmed signup keyed by email.
// A new registration request for the same email overwrites the previous
// one. The row is read and deleted by the verification step when it
// promotes the entry into a real User.
type PendingRegistration struct {
	Email        string
	Password     string // already bcrypt-hashed
	Role         Role
	OTP          string
	OTPCreatedAt time.Time
	CreatedAt    time.Time
}
