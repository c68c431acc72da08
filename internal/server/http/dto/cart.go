package dto

// CartAddRequest describes the add-to-cart payload.
type CartAddRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CartQuantityRequest describes a quantity change for one cart row.
type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse describes one cart row priced at the current catalog.
type CartItemResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Amount    int64  `json:"amount"`
}

// CartResponse is the full cart with its running total.
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total int64              `json:"total"`
}
