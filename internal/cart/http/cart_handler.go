// Package http provides HTTP handlers for customer shopping carts.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/bookstore/internal/cart/http/dto"
	cartUseCase "github.com/allisson/bookstore/internal/cart/usecase"
	apperrors "github.com/allisson/bookstore/internal/errors"
	"github.com/allisson/bookstore/internal/httputil"
	"github.com/allisson/bookstore/internal/identity"
	sessionHTTP "github.com/allisson/bookstore/internal/session/http"
	customValidation "github.com/allisson/bookstore/internal/validation"
)

// CartHandler serves the cart of the logged-in customer. Routes must be guarded by
// RequireCustomer; the cart is always the one of the session's account.
type CartHandler struct {
	cartUseCase cartUseCase.CartUseCase
	logger      *slog.Logger
}

// NewCartHandler creates a new cart handler with required dependencies.
func NewCartHandler(cartUseCase cartUseCase.CartUseCase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
		logger:      logger,
	}
}

// GetHandler shows the cart with its total.
// GET /api/cart - Returns 200 OK.
func (h *CartHandler) GetHandler(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}

	cart, err := h.cartUseCase.Get(c.Request.Context(), accountID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCartToResponse(cart))
}

// AddItemHandler adds copies of a book, capped at the copies in stock.
// POST /api/cart/items - Returns 200 OK with the updated cart.
func (h *CartHandler) AddItemHandler(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}

	var req dto.AddItemRequest
	if !h.bind(c, &req) {
		return
	}

	cart, err := h.cartUseCase.AddItem(c.Request.Context(), accountID, req.BookID, *req.Quantity)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCartToResponse(cart))
}

// UpdateItemHandler sets the quantity of a book in the cart. Zero removes it.
// PUT /api/cart/items/:book_id - Returns 200 OK with the updated cart.
func (h *CartHandler) UpdateItemHandler(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}
	bookID, ok := h.parseBookID(c)
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if !h.bind(c, &req) {
		return
	}

	cart, err := h.cartUseCase.UpdateItem(c.Request.Context(), accountID, bookID, *req.Quantity)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCartToResponse(cart))
}

// RemoveItemHandler removes one book from the cart.
// DELETE /api/cart/items/:book_id - Returns 200 OK with the updated cart.
func (h *CartHandler) RemoveItemHandler(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}
	bookID, ok := h.parseBookID(c)
	if !ok {
		return
	}

	cart, err := h.cartUseCase.UpdateItem(c.Request.Context(), accountID, bookID, 0)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCartToResponse(cart))
}

// ClearHandler empties the cart.
// DELETE /api/cart - Returns 204 No Content.
func (h *CartHandler) ClearHandler(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}

	if err := h.cartUseCase.Clear(c.Request.Context(), accountID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *CartHandler) accountID(c *gin.Context) (string, bool) {
	principal, ok := sessionHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return "", false
	}
	return principal.AccountID, true
}

func (h *CartHandler) parseBookID(c *gin.Context) (string, bool) {
	bookID := c.Param("book_id")
	if !identity.Valid(bookID) {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid book ID format: must be a valid id"),
			h.logger)
		return "", false
	}
	return bookID, true
}

type validatable interface {
	Validate() error
}

func (h *CartHandler) bind(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return false
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return false
	}
	return true
}
