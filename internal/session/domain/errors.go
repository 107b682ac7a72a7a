package domain

import (
	"github.com/allisson/bookstore/internal/errors"
)

// Session validation errors. They are logged and never sent to clients: every one of
// them downgrades the request to anonymous and clears the cookie.
var (
	// ErrMalformedSession indicates a cookie value that cannot be decoded.
	ErrMalformedSession = errors.Wrap(errors.ErrUnauthorized, "malformed session")

	// ErrSessionExpired indicates an authentic session past its expiry.
	ErrSessionExpired = errors.Wrap(errors.ErrUnauthorized, "session expired")
)
