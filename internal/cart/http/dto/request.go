// Package dto provides data transfer objects for cart HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	cartDomain "github.com/allisson/bookstore/internal/cart/domain"
	customValidation "github.com/allisson/bookstore/internal/validation"
)

// AddItemRequest adds copies of a book to the cart.
type AddItemRequest struct {
	BookID   string `json:"book_id"`
	Quantity *int   `json:"quantity"`
}

// Validate checks if the add request is valid.
func (r *AddItemRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.BookID, validation.Required, customValidation.ID),
		validation.Field(&r.Quantity, validation.NotNil, validation.Min(0), validation.Max(cartDomain.MaxQuantity)),
	)
}

// UpdateItemRequest sets the quantity of a book in the cart.
type UpdateItemRequest struct {
	Quantity *int `json:"quantity"`
}

// Validate checks if the update request is valid.
func (r *UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Quantity, validation.NotNil, validation.Min(0), validation.Max(cartDomain.MaxQuantity)),
	)
}
