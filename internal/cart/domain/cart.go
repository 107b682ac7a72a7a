// Package domain defines customer shopping carts.
package domain

import (
	"time"

	"github.com/allisson/bookstore/internal/errors"
)

// MaxQuantity is the largest quantity accepted in a single add or update.
const MaxQuantity = 10000

var (
	// ErrCartItemNotFound indicates the book is not in the cart.
	ErrCartItemNotFound = errors.Wrap(errors.ErrNotFound, "cart item not found")

	// ErrUnknownBook indicates the book being added does not exist.
	ErrUnknownBook = errors.Wrap(errors.ErrInvalidInput, "book does not exist")

	// ErrInvalidQuantity indicates a quantity outside 0..MaxQuantity.
	ErrInvalidQuantity = errors.Wrap(errors.ErrInvalidInput, "quantity must be between 0 and 10000")

	// ErrCartItemConflict indicates the same line was created concurrently.
	ErrCartItemConflict = errors.Wrap(errors.ErrConflict, "cart item was modified concurrently")
)

// Item is one book in a customer's cart. A cart holds at most one item per book.
type Item struct {
	AccountID string
	BookID    string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Line is a cart item joined with the current state of its book.
type Line struct {
	BookID     string
	Title      string
	Author     string
	Image      string
	PriceCents int64
	Stock      int
	Quantity   int
}

// SubtotalCents is the price of the line at the current book price.
func (l *Line) SubtotalCents() int64 {
	return l.PriceCents * int64(l.Quantity)
}

// Cart is the content of one customer's cart.
type Cart struct {
	AccountID string
	Lines     []*Line
}

// TotalCents sums every line at current book prices.
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.SubtotalCents()
	}
	return total
}

// ItemCount is the number of copies across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// ValidQuantity reports whether quantity may be requested in one add or update.
func ValidQuantity(quantity int) bool {
	return quantity >= 0 && quantity <= MaxQuantity
}

// ClampQuantity limits a requested quantity to the copies in stock.
func ClampQuantity(requested, stock int) int {
	return max(0, min(requested, stock))
}
