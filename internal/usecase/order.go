package usecase

import (
	"context"

	domainErrors "github.com/minseo-cho/gomall/internal/domain/errors"
	"github.com/minseo-cho/gomall/internal/domain/model"
	"github.com/minseo-cho/gomall/internal/domain/repository"
)

// OrderUseCase encapsulates the order lifecycle.
type OrderUseCase struct {
	orders repository.OrderRepository
	carts  repository.CartRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, carts repository.CartRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, carts: carts}
}

// CreateFromCart snapshots the user's cart into an immutable order. Line
// name and price are copied at this moment; the total is their sum. The
// cart rows are removed in the same transaction as the order insert.
func (u *OrderUseCase) CreateFromCart(ctx context.Context, userID int64) (*model.Order, error) {
	items, err := u.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}

	lines := make([]model.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, model.OrderLine{
			ProductID: item.ProductID,
			Name:      item.ProductName,
			Price:     item.ProductPrice,
			Quantity:  item.Quantity,
		})
	}

	order := &model.Order{
		UserID:      userID,
		TotalAmount: model.LinesTotal(lines),
		Status:      model.OrderStatusRequested,
	}
	return u.orders.Create(ctx, order, lines)
}

// Get fetches an order scoped to its owner.
func (u *OrderUseCase) Get(ctx context.Context, id, userID int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, id, userID)
}

// ListByUser returns the user's orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// Lines returns the snapshotted lines of an order.
func (u *OrderUseCase) Lines(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	return u.orders.ListLines(ctx, orderID)
}

// Deliver marks a paid order as delivered.
func (u *OrderUseCase) Deliver(ctx context.Context, id, userID int64) error {
	order, err := u.orders.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if order.Status != model.OrderStatusPaid {
		return domainErrors.ErrInvalidStatus
	}
	return u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusDelivered)
}
