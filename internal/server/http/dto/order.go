package dto

import "time"

// OrderResponse describes an order summary.
type OrderResponse struct {
	ID          int64     `json:"id"`
	TotalAmount int64     `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderLineResponse describes one snapshotted order line.
type OrderLineResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Amount    int64  `json:"amount"`
}

// OrderDetailResponse is an order with its lines and payment attempts.
type OrderDetailResponse struct {
	OrderResponse
	Lines    []OrderLineResponse `json:"lines"`
	Payments []PaymentResponse   `json:"payments"`
}
