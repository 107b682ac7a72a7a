// Package service encodes, signs and validates session tokens.
package service

import (
	"time"

	sessionDomain "github.com/allisson/bookstore/internal/session/domain"
)

// SessionManager issues, validates and renews session tokens.
type SessionManager interface {
	// Issue creates a token for a freshly authenticated account.
	Issue(accountID string, isAdmin bool) (string, *sessionDomain.Session, error)

	// Validate decodes and verifies a token and checks its expiry.
	// Returns ErrMalformedSession, ErrAuthenticationFailure or ErrSessionExpired.
	Validate(token string) (*sessionDomain.Session, error)

	// Renew re-issues session with a refreshed expiry.
	Renew(session *sessionDomain.Session) (string, *sessionDomain.Session, error)

	// TTL returns the sliding session lifetime.
	TTL() time.Duration
}
