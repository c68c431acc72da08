package events

import (
	"context"
	"time"
)

// Topic carries order status changes produced by payment reconciliation.
const Topic = "order.status"

// OrderEvent describes a terminal reconciliation result for an order.
type OrderEvent struct {
	OrderID    int64     `json:"order_id"`
	Status     string    `json:"status"`
	PaymentUID string    `json:"payment_uid,omitempty"`
	Amount     int64     `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits order events to downstream consumers. Publishing is
// best-effort; reconciliation never fails because of a broker outage.
type Publisher interface {
	Publish(ctx context.Context, event OrderEvent)
}

// NopPublisher discards events. Used when no brokers are configured.
type NopPublisher struct{}

// Publish drops the event.
func (NopPublisher) Publish(context.Context, OrderEvent) {}
