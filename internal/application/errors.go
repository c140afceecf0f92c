package application

import "errors"

// Sentinel errors for the auth flows. Handlers map these onto HTTP
// statuses; everything else surfaces as a 500.
var (
	ErrDuplicateEmail     = errors.New("a user with that email already exists")
	ErrPasswordMismatch   = errors.New("password fields didn't match")
	ErrWeakPassword       = errors.New("password does not meet strength requirements")
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCode        = errors.New("invalid otp")
	ErrCodeExpired        = errors.New("otp has expired")
	ErrResendCooldown     = errors.New("please wait before resending otp")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDeliveryFailure    = errors.New("failed to send otp email")
	ErrMissingRole        = errors.New("account has no role assignment")
)
