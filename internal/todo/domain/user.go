package domain

import "time"

// User is the durable credential record. RefreshToken holds the SHA-256
// fingerprint of the one live refresh token (or nil when the user has never
// logged in); it is overwritten on every successful login, so at most one
// refresh session exists per user.
type User struct {
	ID               string
	Username         string
	Email            string
	PasswordHash     string // argon2id encoded
	RefreshToken     *string
	RefreshExpiresAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
