package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Rafid41/LMS/internal/domain/entity"
)

// ErrNotFound is returned by all repositories when no row matches.
var ErrNotFound = errors.New("not found")

// UserRepository defines persistence for permanent accounts.
// Users are only ever created through Promote, which turns a pending
// registration into a user + role + common profile in one transaction.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	RoleOf(ctx context.Context, userID string) (entity.Role, error)

	// Promote atomically creates the account, its role record and its
	// common profile, deletes the pending row, and returns the new user.
	Promote(ctx context.Context, p *entity.PendingRegistration) (*entity.User, error)

	// Password-reset OTP bookkeeping on the account itself.
	SetResetOTP(ctx context.Context, userID, otp string, issuedAt time.Time) error
	UpdatePasswordClearOTP(ctx context.Context, userID, passwordHash string) error
}

// PendingRegistrationRepository holds unconfirmed signups keyed by email.
type PendingRegistrationRepository interface {
	// Upsert replaces any prior pending attempt for the same email.
	Upsert(ctx context.Context, p *entity.PendingRegistration) error
	GetByEmail(ctx context.Context, email string) (*entity.PendingRegistration, error)
	UpdateOTP(ctx context.Context, email, otp string, issuedAt time.Time) error
}

// TokenRepository stores the opaque bearer credential per user.
type TokenRepository interface {
	// GetOrCreate returns the existing token for the user or inserts a
	// new one generated by gen. Concurrent logins resolve to one row via
	// the store's uniqueness constraint.
	GetOrCreate(ctx context.Context, userID string, gen func() (string, error)) (*entity.AuthToken, error)
	GetByKey(ctx context.Context, key string) (*entity.AuthToken, error)
}
