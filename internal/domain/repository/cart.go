package repository

import (
	"context"

	"github.com/minseo-cho/gomall/internal/domain/model"
)

// CartRepository manages per-user pending product selections. The
// (user, product) pair is unique; Add must increment the existing row
// instead of inserting a second one.
type CartRepository interface {
	// Add inserts a cart row or increments the quantity of an existing one.
	// The returned flag reports whether a new row was created.
	Add(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, bool, error)
	ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error)
	SetQuantity(ctx context.Context, userID, productID int64, quantity int) error
	Remove(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
}
