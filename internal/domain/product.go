package domain

import "github.com/shopspring/decimal"

// Product mirrors the backend catalog entry. The client treats it as a
// snapshot: stock and price are authoritative only at the backend.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image,omitempty"`
}

// ProductInput carries the fields an admin may set; the backend assigns IDs.
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image,omitempty"`
}
