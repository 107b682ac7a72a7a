// Package http provides HTTP handlers for sign-up, login and account management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
	apperrors "github.com/allisson/bookstore/internal/errors"
	"github.com/allisson/bookstore/internal/httputil"
	sessionDomain "github.com/allisson/bookstore/internal/session/domain"
	sessionHTTP "github.com/allisson/bookstore/internal/session/http"
)

const invalidCredentialsMessage = "Your username and/or password is incorrect"

// SessionStore starts and ends the session of a request.
type SessionStore interface {
	Login(c *gin.Context, principal *sessionDomain.Principal) error
	Logout(c *gin.Context)
}

// handleCredentialError answers a rejected password with the same 401 body whether the
// account exists or not. Other errors go through the standard mapping.
func handleCredentialError(c *gin.Context, err error, logger *slog.Logger) {
	if apperrors.Is(err, accountDomain.ErrInvalidCredentials) {
		logger.Debug("credentials rejected")
		c.JSON(http.StatusUnauthorized, httputil.ErrorResponse{
			Error:   "invalid_credentials",
			Message: invalidCredentialsMessage,
		})
		return
	}
	httputil.HandleErrorGin(c, err, logger)
}

// principalOf returns the principal of the request or answers 401.
func principalOf(c *gin.Context, logger *slog.Logger) (*sessionDomain.Principal, bool) {
	principal, ok := sessionHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
		return nil, false
	}
	return principal, true
}
