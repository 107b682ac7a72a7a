package http

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/bookstore/internal/errors"
	"github.com/allisson/bookstore/internal/httputil"
	sessionDomain "github.com/allisson/bookstore/internal/session/domain"
	sessionService "github.com/allisson/bookstore/internal/session/service"
)

// AccountResolver loads the current principal of a session's account.
// Returns an error wrapping ErrNotFound when the account no longer exists.
type AccountResolver interface {
	ResolvePrincipal(ctx context.Context, accountID string) (*sessionDomain.Principal, error)
}

// Store drives the session lifecycle of HTTP requests:
//
//	Anonymous -> Active (login) -> Active (renewed every request) -> Expired | Revoked -> Anonymous
//
// Sessions live entirely in the signed cookie. Logging out clears the cookie in the
// browser but does not invalidate copies of the token, which stay usable until expiry.
type Store struct {
	manager  sessionService.SessionManager
	resolver AccountResolver
	cookies  CookieConfig
	logger   *slog.Logger
}

// NewStore creates a new session Store.
func NewStore(
	manager sessionService.SessionManager,
	resolver AccountResolver,
	cookies CookieConfig,
	logger *slog.Logger,
) *Store {
	return &Store{
		manager:  manager,
		resolver: resolver,
		cookies:  cookies,
		logger:   logger,
	}
}

// Middleware resolves the session cookie of every request.
//
// A valid session whose account still exists makes the request Active: the principal
// is stored in the request context and a renewed cookie with a refreshed expiry is set.
// A cookie that is malformed, forged, expired or points at a deleted account is cleared
// and the request continues as anonymous. No failure reason is sent to the client.
func (s *Store) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(s.cookies.Name)
		if err != nil || token == "" {
			c.Next()
			return
		}

		session, err := s.manager.Validate(token)
		if err != nil {
			s.logger.Debug("discarding session cookie",
				slog.String("state", string(stateOf(err))),
				slog.Any("error", err))
			s.cookies.clear(c.Writer)
			c.Next()
			return
		}

		principal, err := s.resolver.ResolvePrincipal(c.Request.Context(), session.AccountID)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				s.logger.Debug("discarding session of unknown account",
					slog.String("account_id", session.AccountID))
				s.cookies.clear(c.Writer)
				c.Next()
				return
			}
			httputil.HandleErrorGin(c, err, s.logger)
			c.Abort()
			return
		}

		// The account record is authoritative for the privilege flag.
		session.IsAdmin = principal.IsAdmin
		renewed, next, err := s.manager.Renew(session)
		if err != nil {
			httputil.HandleErrorGin(c, err, s.logger)
			c.Abort()
			return
		}
		s.cookies.set(c.Writer, renewed, next.ExpiresAt, s.manager.TTL())

		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

// Login issues a session for principal, sets the cookie and makes the rest of the
// request run as principal.
func (s *Store) Login(c *gin.Context, principal *sessionDomain.Principal) error {
	token, session, err := s.manager.Issue(principal.AccountID, principal.IsAdmin)
	if err != nil {
		return err
	}
	s.cookies.set(c.Writer, token, session.ExpiresAt, s.manager.TTL())
	c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))

	s.logger.Debug("session issued",
		slog.String("account_id", principal.AccountID),
		slog.Time("expires_at", session.ExpiresAt))
	return nil
}

// Logout revokes the session of the request by clearing its cookie.
func (s *Store) Logout(c *gin.Context) {
	if principal, ok := GetPrincipal(c.Request.Context()); ok {
		s.logger.Debug("session revoked",
			slog.String("state", string(sessionDomain.StateRevoked)),
			slog.String("account_id", principal.AccountID))
	}
	s.cookies.clear(c.Writer)
	c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), nil))
}

// stateOf names the lifecycle state a validation error leads to, for logging.
func stateOf(err error) sessionDomain.State {
	if apperrors.Is(err, sessionDomain.ErrSessionExpired) {
		return sessionDomain.StateExpired
	}
	return sessionDomain.StateAnonymous
}

// RequireAccount rejects anonymous requests with 401 Unauthorized.
func RequireAccount(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetPrincipal(c.Request.Context()); !ok {
			logger.Debug("access denied: no session")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects anonymous requests with 401 and non-admin accounts with 403.
func RequireAdmin(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok {
			logger.Debug("access denied: no session")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}
		if !principal.IsAdmin {
			logger.Debug("access denied: admin required",
				slog.String("account_id", principal.AccountID))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireCustomer rejects anonymous requests with 401 and admin accounts with 403.
func RequireCustomer(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok {
			logger.Debug("access denied: no session")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}
		if principal.IsAdmin {
			logger.Debug("access denied: customer required",
				slog.String("account_id", principal.AccountID))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}
		c.Next()
	}
}
