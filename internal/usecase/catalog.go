package usecase

import (
	"context"

	domainErrors "github.com/minseo-cho/gomall/internal/domain/errors"
	"github.com/minseo-cho/gomall/internal/domain/model"
	"github.com/minseo-cho/gomall/internal/domain/repository"
)

// DefaultPageSize bounds catalog listings.
const DefaultPageSize = 20

// CatalogUseCase serves product listings and admin catalog operations.
type CatalogUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository, categories repository.CategoryRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products, categories: categories}
}

// List returns one page of active products, optionally filtered by a
// case-insensitive name query. Pages start at 1.
func (u *CatalogUseCase) List(ctx context.Context, query string, page int) ([]model.Product, error) {
	if page < 1 {
		page = 1
	}
	return u.products.List(ctx, repository.ProductFilter{
		Status: model.ProductStatusActive,
		Query:  query,
		Limit:  DefaultPageSize,
		Offset: (page - 1) * DefaultPageSize,
	})
}

// Get fetches a single product.
func (u *CatalogUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// Categories lists all categories.
func (u *CatalogUseCase) Categories(ctx context.Context) ([]model.Category, error) {
	return u.categories.List(ctx)
}

// SetProductsStatus changes the status of the identified products and
// reports how many rows changed. Bulk admin changes always go through
// explicit id lists.
func (u *CatalogUseCase) SetProductsStatus(ctx context.Context, ids []int64, status model.ProductStatus) (int64, error) {
	if !status.Valid() {
		return 0, domainErrors.ErrInvalidStatus
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return u.products.UpdateStatusBulk(ctx, ids, status)
}
