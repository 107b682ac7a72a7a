// Package domain defines the books of the catalogue.
package domain

import (
	"time"

	"github.com/allisson/bookstore/internal/errors"
)

// ErrBookNotFound indicates the book does not exist.
var ErrBookNotFound = errors.Wrap(errors.ErrNotFound, "book not found")

// Book is a catalogue entry. Its ID is a RandomID assigned on creation.
// Image holds a reference (URL or path) to the cover, not the image bytes.
type Book struct {
	ID          string
	Title       string
	Author      string
	Language    string
	Genre       string
	Description string
	Image       string
	Quantity    int
	PriceCents  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InStock reports whether at least one copy is available.
func (b *Book) InStock() bool {
	return b.Quantity > 0
}

// BookInput contains the editable fields of a book.
type BookInput struct {
	Title       string
	Author      string
	Language    string
	Genre       string
	Description string
	Image       string
	Quantity    int
	PriceCents  int64
}

// Apply copies input onto the book.
func (b *Book) Apply(input *BookInput) {
	b.Title = input.Title
	b.Author = input.Author
	b.Language = input.Language
	b.Genre = input.Genre
	b.Description = input.Description
	b.Image = input.Image
	b.Quantity = input.Quantity
	b.PriceCents = input.PriceCents
}
