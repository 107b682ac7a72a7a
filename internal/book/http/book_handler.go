// Package http provides HTTP handlers for the book catalogue.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/bookstore/internal/book/http/dto"
	bookUseCase "github.com/allisson/bookstore/internal/book/usecase"
	"github.com/allisson/bookstore/internal/httputil"
	"github.com/allisson/bookstore/internal/identity"
	customValidation "github.com/allisson/bookstore/internal/validation"
)

// BookHandler handles HTTP requests for the catalogue. List and Get are public;
// Create, Update and Delete must be guarded by RequireAdmin.
type BookHandler struct {
	bookUseCase bookUseCase.BookUseCase
	logger      *slog.Logger
}

// NewBookHandler creates a new book handler with required dependencies.
func NewBookHandler(bookUseCase bookUseCase.BookUseCase, logger *slog.Logger) *BookHandler {
	return &BookHandler{
		bookUseCase: bookUseCase,
		logger:      logger,
	}
}

// ListHandler lists the catalogue.
// GET /api/books?offset=0&limit=50 - Returns 200 OK with paginated books.
func (h *BookHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	books, err := h.bookUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBooksToListResponse(books))
}

// GetHandler retrieves a book by ID.
// GET /api/books/:id - Returns 200 OK.
func (h *BookHandler) GetHandler(c *gin.Context) {
	bookID, ok := h.parseID(c)
	if !ok {
		return
	}

	book, err := h.bookUseCase.Get(c.Request.Context(), bookID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBookToResponse(book))
}

// CreateHandler adds a book.
// POST /api/admin/books - Returns 201 Created.
func (h *BookHandler) CreateHandler(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	book, err := h.bookUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapBookToResponse(book))
}

// UpdateHandler replaces the fields of a book.
// PUT /api/admin/books/:id - Returns 200 OK.
func (h *BookHandler) UpdateHandler(c *gin.Context) {
	bookID, ok := h.parseID(c)
	if !ok {
		return
	}

	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	book, err := h.bookUseCase.Update(c.Request.Context(), bookID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBookToResponse(book))
}

// DeleteHandler removes a book.
// DELETE /api/admin/books/:id - Returns 204 No Content.
func (h *BookHandler) DeleteHandler(c *gin.Context) {
	bookID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.bookUseCase.Delete(c.Request.Context(), bookID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *BookHandler) parseID(c *gin.Context) (string, bool) {
	bookID := c.Param("id")
	if !identity.Valid(bookID) {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid book ID format: must be a valid id"),
			h.logger)
		return "", false
	}
	return bookID, true
}

func (h *BookHandler) bindRequest(c *gin.Context) (*dto.BookRequest, bool) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return nil, false
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return nil, false
	}
	return &req, true
}
