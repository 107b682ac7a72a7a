// Package usecase implements catalogue management.
package usecase

import (
	"context"

	bookDomain "github.com/allisson/bookstore/internal/book/domain"
)

// BookRepository defines persistence operations for books.
type BookRepository interface {
	Create(ctx context.Context, book *bookDomain.Book) error

	// Update modifies an existing book. Returns ErrBookNotFound if not found.
	Update(ctx context.Context, book *bookDomain.Book) error

	// Get retrieves a book by ID. Returns ErrBookNotFound if not found.
	Get(ctx context.Context, bookID string) (*bookDomain.Book, error)

	// List retrieves books ordered by title.
	List(ctx context.Context, offset, limit int) ([]*bookDomain.Book, error)

	// Delete removes a book. Returns ErrBookNotFound if not found.
	Delete(ctx context.Context, bookID string) error
}

// BookUseCase defines business logic operations for the catalogue.
type BookUseCase interface {
	Create(ctx context.Context, input *bookDomain.BookInput) (*bookDomain.Book, error)
	Update(ctx context.Context, bookID string, input *bookDomain.BookInput) (*bookDomain.Book, error)
	Get(ctx context.Context, bookID string) (*bookDomain.Book, error)
	List(ctx context.Context, offset, limit int) ([]*bookDomain.Book, error)
	Delete(ctx context.Context, bookID string) error
}
