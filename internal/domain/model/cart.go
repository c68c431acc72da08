package model

// CartItem is a pending product selection. One row per (user, product) pair,
// quantity at least 1. Product fields are joined from the catalog for display
// and snapshotting; they are not stored with the cart row.
type CartItem struct {
	ID            int64
	UserID        int64
	ProductID     int64
	Quantity      int
	ProductName   string
	ProductPrice  int64
	ProductStatus ProductStatus
}

// Amount is the line total at current catalog price.
func (i CartItem) Amount() int64 {
	return i.ProductPrice * int64(i.Quantity)
}
