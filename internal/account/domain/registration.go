package domain

import (
	"time"

	cryptoDomain "github.com/allisson/bookstore/internal/crypto/domain"
)

// MaxOTPAttempts is the number of wrong codes after which a pending registration is discarded.
const MaxOTPAttempts = 5

// PendingRegistration is a sign-up waiting for its e-mailed one-time code.
// The account is only created once the code is confirmed.
type PendingRegistration struct {
	ID        string
	Username  string
	Email     string
	Name      string
	Password  *cryptoDomain.Envelope
	OTPHash   string // Argon2id PHC string of the code
	Attempts  int
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the code can no longer be used at now.
func (r *PendingRegistration) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// PasswordReset is a single-use password reset grant. Only the SHA-256 hash of the
// token mailed to the user is stored.
type PasswordReset struct {
	ID        string
	AccountID string
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// IsUsable reports whether the reset can still be redeemed at now.
func (r *PasswordReset) IsUsable(now time.Time) bool {
	return r.UsedAt == nil && now.Before(r.ExpiresAt)
}
