package dto

import (
	cartDomain "github.com/allisson/bookstore/internal/cart/domain"
)

// CartLineResponse represents one book in the cart.
type CartLineResponse struct {
	BookID        string `json:"book_id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Image         string `json:"image"`
	PriceCents    int64  `json:"price_cents"`
	Quantity      int    `json:"quantity"`
	InStock       bool   `json:"in_stock"`
	SubtotalCents int64  `json:"subtotal_cents"`
}

// CartResponse represents a cart in API responses.
type CartResponse struct {
	Items      []CartLineResponse `json:"items"`
	ItemCount  int                `json:"item_count"`
	TotalCents int64              `json:"total_cents"`
}

// MapCartToResponse converts a domain cart to an API response.
func MapCartToResponse(cart *cartDomain.Cart) CartResponse {
	items := make([]CartLineResponse, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, CartLineResponse{
			BookID:        line.BookID,
			Title:         line.Title,
			Author:        line.Author,
			Image:         line.Image,
			PriceCents:    line.PriceCents,
			Quantity:      line.Quantity,
			InStock:       line.Stock >= line.Quantity,
			SubtotalCents: line.SubtotalCents(),
		})
	}
	return CartResponse{
		Items:      items,
		ItemCount:  cart.ItemCount(),
		TotalCents: cart.TotalCents(),
	}
}
