package model

import "time"

// OrderStatus describes the order lifecycle.
type OrderStatus string

const (
	OrderStatusRequested     OrderStatus = "requested"
	OrderStatusPaid          OrderStatus = "paid"
	OrderStatusFailedPayment OrderStatus = "failed_payment"
	OrderStatusCancelled     OrderStatus = "cancelled"
	OrderStatusDelivered     OrderStatus = "delivered"
)

// Order is a purchase created from a cart snapshot. TotalAmount is fixed at
// creation time and independent of later catalog price changes.
type Order struct {
	ID          int64
	UserID      int64
	TotalAmount int64
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanPay reports whether a new payment attempt may be started.
func (o *Order) CanPay() bool {
	return o.Status == OrderStatusRequested || o.Status == OrderStatusFailedPayment
}

// OrderLine is an immutable copy of a cart row taken at order creation.
// Name and Price never reflect later catalog changes.
type OrderLine struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Name      string
	Price     int64
	Quantity  int
}

// Amount is the snapshotted line total.
func (l OrderLine) Amount() int64 {
	return l.Price * int64(l.Quantity)
}

// LinesTotal sums line amounts. Used when building an order from a cart.
func LinesTotal(lines []OrderLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Amount()
	}
	return total
}
