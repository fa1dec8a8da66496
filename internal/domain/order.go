package domain

import "github.com/shopspring/decimal"

// OrderItem is one line of an order submission.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderRequest is the single atomic checkout payload sent to the backend.
type OrderRequest struct {
	Items []OrderItem `json:"items"`
}

// OrderConfirmation is the backend's acknowledgement of a placed order.
type OrderConfirmation struct {
	ID         string          `json:"id,omitempty"`
	Status     string          `json:"status,omitempty"`
	TotalPrice decimal.Decimal `json:"total_price,omitempty"`
}
