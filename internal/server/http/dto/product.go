package dto

// ProductResponse describes one catalog entry.
type ProductResponse struct {
	ID          int64  `json:"id"`
	CategoryID  int64  `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	Status      string `json:"status"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

// CategoryResponse describes one product category.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductsStatusRequest describes the bulk status change payload.
type ProductsStatusRequest struct {
	IDs    []int64 `json:"ids"`
	Status string  `json:"status"`
}

// ProductsStatusResponse reports how many products changed.
type ProductsStatusResponse struct {
	Updated int64 `json:"updated"`
}
