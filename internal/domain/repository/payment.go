package repository

import (
	"context"

	"github.com/minseo-cho/gomall/internal/domain/model"
)

// PaymentRepository describes persistence operations for payment attempts.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) (*model.Payment, error)
	GetByUID(ctx context.Context, uid string) (*model.Payment, error)
	ListByOrder(ctx context.Context, orderID int64) ([]model.Payment, error)
	// ApplyGatewayStatus persists the gateway-reported status unconditionally.
	ApplyGatewayStatus(ctx context.Context, paymentID int64, status model.PayStatus, paidOK bool) error
	// SelectReadyBatch returns ready payments whose orders are still payable,
	// locking them against concurrent pollers.
	SelectReadyBatch(ctx context.Context, limit int) ([]model.Payment, error)
}
