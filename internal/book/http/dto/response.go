package dto

import (
	"time"

	bookDomain "github.com/allisson/bookstore/internal/book/domain"
)

// BookResponse represents a book in API responses.
type BookResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Language    string    `json:"language"`
	Genre       string    `json:"genre"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Quantity    int       `json:"quantity"`
	InStock     bool      `json:"in_stock"`
	PriceCents  int64     `json:"price_cents"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MapBookToResponse converts a domain book to an API response.
func MapBookToResponse(book *bookDomain.Book) BookResponse {
	return BookResponse{
		ID:          book.ID,
		Title:       book.Title,
		Author:      book.Author,
		Language:    book.Language,
		Genre:       book.Genre,
		Description: book.Description,
		Image:       book.Image,
		Quantity:    book.Quantity,
		InStock:     book.InStock(),
		PriceCents:  book.PriceCents,
		CreatedAt:   book.CreatedAt,
		UpdatedAt:   book.UpdatedAt,
	}
}

// ListBooksResponse represents a paginated list of books in API responses.
type ListBooksResponse struct {
	Data []BookResponse `json:"data"`
}

// MapBooksToListResponse converts a slice of domain books to a list API response.
func MapBooksToListResponse(books []*bookDomain.Book) ListBooksResponse {
	responses := make([]BookResponse, 0, len(books))
	for _, book := range books {
		responses = append(responses, MapBookToResponse(book))
	}
	return ListBooksResponse{Data: responses}
}
