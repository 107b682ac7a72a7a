// Package usecase implements customer shopping carts.
package usecase

import (
	"context"

	bookDomain "github.com/allisson/bookstore/internal/book/domain"
	cartDomain "github.com/allisson/bookstore/internal/cart/domain"
)

// CartRepository defines persistence operations for cart items.
type CartRepository interface {
	// GetItem retrieves one item, locking it when ctx carries a transaction.
	// Returns ErrCartItemNotFound if the book is not in the cart.
	GetItem(ctx context.Context, accountID, bookID string) (*cartDomain.Item, error)

	// CreateItem inserts an item. Returns ErrCartItemConflict if the line already exists.
	CreateItem(ctx context.Context, item *cartDomain.Item) error

	UpdateItem(ctx context.Context, item *cartDomain.Item) error

	// DeleteItem removes one line. Returns ErrCartItemNotFound if not found.
	DeleteItem(ctx context.Context, accountID, bookID string) error

	Clear(ctx context.Context, accountID string) error

	// ListLines retrieves the cart joined with its books, ordered by title.
	ListLines(ctx context.Context, accountID string) ([]*cartDomain.Line, error)
}

// BookRepository is the part of the catalogue the cart reads stock and existence from.
type BookRepository interface {
	Get(ctx context.Context, bookID string) (*bookDomain.Book, error)
}

// CartUseCase defines business logic operations for shopping carts.
type CartUseCase interface {
	Get(ctx context.Context, accountID string) (*cartDomain.Cart, error)
	AddItem(ctx context.Context, accountID, bookID string, quantity int) (*cartDomain.Cart, error)
	UpdateItem(ctx context.Context, accountID, bookID string, quantity int) (*cartDomain.Cart, error)
	Clear(ctx context.Context, accountID string) error
}
