package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/bookstore/internal/account/http/dto"
	accountUseCase "github.com/allisson/bookstore/internal/account/usecase"
	"github.com/allisson/bookstore/internal/httputil"
	"github.com/allisson/bookstore/internal/identity"
	customValidation "github.com/allisson/bookstore/internal/validation"
)

// AdminHandler handles account administration. Routes must be guarded by RequireAdmin.
type AdminHandler struct {
	accountUseCase accountUseCase.AccountUseCase
	logger         *slog.Logger
}

// NewAdminHandler creates a new admin handler with required dependencies.
func NewAdminHandler(accountUseCase accountUseCase.AccountUseCase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		accountUseCase: accountUseCase,
		logger:         logger,
	}
}

// ListHandler lists accounts.
// GET /api/admin/users?offset=0&limit=50 - Returns 200 OK with paginated accounts.
func (h *AdminHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	accounts, err := h.accountUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccountsToListResponse(accounts))
}

// CreateHandler creates a customer or admin account without e-mail verification.
// POST /api/admin/users - Returns 201 Created with the account.
func (h *AdminHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	account, err := h.accountUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAccountToResponse(account))
}

// DeleteHandler deletes an account other than the caller's.
// DELETE /api/admin/users/:id - Returns 204 No Content.
func (h *AdminHandler) DeleteHandler(c *gin.Context) {
	principal, ok := principalOf(c, h.logger)
	if !ok {
		return
	}

	accountID := c.Param("id")
	if !identity.Valid(accountID) {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid account ID format: must be a valid id"),
			h.logger)
		return
	}

	if err := h.accountUseCase.Delete(c.Request.Context(), principal.AccountID, accountID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
