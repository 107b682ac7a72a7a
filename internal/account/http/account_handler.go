package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/bookstore/internal/account/http/dto"
	accountUseCase "github.com/allisson/bookstore/internal/account/usecase"
	"github.com/allisson/bookstore/internal/httputil"
	customValidation "github.com/allisson/bookstore/internal/validation"
)

// AccountHandler handles requests on the signed-in account. Routes must be guarded
// by RequireAccount.
type AccountHandler struct {
	accountUseCase accountUseCase.AccountUseCase
	sessions       SessionStore
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler with required dependencies.
func NewAccountHandler(
	accountUseCase accountUseCase.AccountUseCase,
	sessions SessionStore,
	logger *slog.Logger,
) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		sessions:       sessions,
		logger:         logger,
	}
}

// GetHandler returns the signed-in account.
// GET /api/account - Returns 200 OK.
func (h *AccountHandler) GetHandler(c *gin.Context) {
	principal, ok := principalOf(c, h.logger)
	if !ok {
		return
	}

	account, err := h.accountUseCase.Get(c.Request.Context(), principal.AccountID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccountToResponse(account))
}

// UpdateHandler updates the profile of the signed-in account.
// PUT /api/account - Returns 200 OK with the updated account.
func (h *AccountHandler) UpdateHandler(c *gin.Context) {
	principal, ok := principalOf(c, h.logger)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	account, err := h.accountUseCase.UpdateProfile(c.Request.Context(), principal.AccountID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccountToResponse(account))
}

// ChangePasswordHandler replaces the password and ends the session.
// POST /api/account/password - Returns 204 No Content and clears the session cookie.
func (h *AccountHandler) ChangePasswordHandler(c *gin.Context) {
	principal, ok := principalOf(c, h.logger)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	err := h.accountUseCase.ChangePassword(
		c.Request.Context(),
		principal.AccountID,
		req.CurrentPassword,
		req.NewPassword,
	)
	if err != nil {
		handleCredentialError(c, err, h.logger)
		return
	}

	h.sessions.Logout(c)
	c.Data(http.StatusNoContent, "application/json", nil)
}
