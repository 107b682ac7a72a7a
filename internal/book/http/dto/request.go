// Package dto provides data transfer objects for book HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	bookDomain "github.com/allisson/bookstore/internal/book/domain"
	customValidation "github.com/allisson/bookstore/internal/validation"
)

// BookRequest contains the fields of a book to create or replace.
type BookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Language    string `json:"language"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Quantity    int    `json:"quantity"`
	PriceCents  int64  `json:"price_cents"`
}

// Validate checks if the book request is valid.
func (r *BookRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Author, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Language, validation.Required, validation.Length(1, 64)),
		validation.Field(&r.Genre, validation.Required, validation.Length(1, 64)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.Image, validation.Length(0, 500)),
		validation.Field(&r.Quantity, validation.Min(0)),
		validation.Field(&r.PriceCents, validation.Min(int64(0))),
	)
}

// ToInput converts the request to a use case input.
func (r *BookRequest) ToInput() *bookDomain.BookInput {
	return &bookDomain.BookInput{
		Title:       r.Title,
		Author:      r.Author,
		Language:    r.Language,
		Genre:       r.Genre,
		Description: r.Description,
		Image:       r.Image,
		Quantity:    r.Quantity,
		PriceCents:  r.PriceCents,
	}
}
