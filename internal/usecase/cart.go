package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/minseo-cho/gomall/internal/domain/errors"
	"github.com/minseo-cho/gomall/internal/domain/model"
	"github.com/minseo-cho/gomall/internal/domain/repository"
)

// CartUseCase manages per-user pending product selections.
type CartUseCase struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{carts: carts, products: products}
}

// Add puts quantity units of an active product into the user's cart. Adding
// a product already present increments its row instead of creating another.
func (u *CartUseCase) Add(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, error) {
	if quantity <= 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}

	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Status != model.ProductStatusActive {
		return nil, fmt.Errorf("product is not active: %w", domainErrors.ErrNotFound)
	}

	item, _, err := u.carts.Add(ctx, userID, productID, quantity)
	if err != nil {
		return nil, err
	}
	item.ProductName = product.Name
	item.ProductPrice = product.Price
	item.ProductStatus = product.Status
	return item, nil
}

// Items lists the user's cart with current catalog prices.
func (u *CartUseCase) Items(ctx context.Context, userID int64) ([]model.CartItem, error) {
	return u.carts.ListByUser(ctx, userID)
}

// Total sums the cart at current catalog prices.
func (u *CartUseCase) Total(ctx context.Context, userID int64) (int64, error) {
	items, err := u.carts.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, item := range items {
		total += item.Amount()
	}
	return total, nil
}

// SetQuantity updates the quantity of a cart row. Quantities below 1 are
// rejected before any write.
func (u *CartUseCase) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	if quantity <= 0 {
		return domainErrors.ErrInvalidQuantity
	}
	return u.carts.SetQuantity(ctx, userID, productID, quantity)
}

// Remove deletes one product from the user's cart.
func (u *CartUseCase) Remove(ctx context.Context, userID, productID int64) error {
	return u.carts.Remove(ctx, userID, productID)
}
