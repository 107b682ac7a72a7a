// Package http wires the session lifecycle into gin: it resolves the session cookie of
// every request, renews it, and exposes login, logout and access guards.
package http

import (
	"context"

	sessionDomain "github.com/allisson/bookstore/internal/session/domain"
)

// principalKey is a context key type for storing the resolved principal.
type principalKey struct{}

// WithPrincipal stores the resolved principal in the context.
func WithPrincipal(ctx context.Context, principal *sessionDomain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves the resolved principal from the context.
// Returns (nil, false) for anonymous requests.
func GetPrincipal(ctx context.Context) (*sessionDomain.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(*sessionDomain.Principal)
	return principal, ok && principal != nil
}
