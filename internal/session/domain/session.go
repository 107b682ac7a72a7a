// Package domain defines the session record carried in the signed session cookie
// and the principal a valid session resolves to.
package domain

import (
	"time"
)

// State is the position of a request in the session lifecycle.
type State string

const (
	// StateAnonymous means no usable session was presented.
	StateAnonymous State = "anonymous"
	// StateActive means a valid, unexpired session resolved to an existing account.
	StateActive State = "active"
	// StateExpired means the presented session was authentic but past its expiry.
	StateExpired State = "expired"
	// StateRevoked means the session cookie was cleared during this request (logout).
	StateRevoked State = "revoked"
)

// Session is the payload of a session token.
type Session struct {
	AccountID string
	IsAdmin   bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the session has reached its expiry at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Principal is the account a request acts as once its session has been resolved.
type Principal struct {
	AccountID string
	Username  string
	IsAdmin   bool
}
