package repository

import (
	"context"

	"github.com/minseo-cho/gomall/internal/domain/model"
)

// OrderRepository describes persistence operations for orders and their
// snapshotted lines.
type OrderRepository interface {
	// Create persists the order, its lines, and removes the user's cart rows
	// in a single transaction, so a failure mid-snapshot leaves no partial
	// order behind.
	Create(ctx context.Context, order *model.Order, lines []model.OrderLine) (*model.Order, error)
	GetByID(ctx context.Context, id, userID int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListLines(ctx context.Context, orderID int64) ([]model.OrderLine, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	// MarkPaid transitions the order to paid, flags the winning payment row,
	// and deletes sibling payment rows, all in one transaction. Only the
	// first observed paid report wins; later calls are no-ops.
	MarkPaid(ctx context.Context, orderID, paymentID int64) error
}
