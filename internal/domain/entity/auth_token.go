package entity

import "time"

// AuthToken is the opaque bearer credential bound one-to-one to a user.
// It is created lazily on first successful login and reused afterwards;
// two sequential logins return the same key.
type AuthToken struct {
	UserID    string
	Key       string
	CreatedAt time.Time
}
