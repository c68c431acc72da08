package repository

import (
	"context"

	"github.com/minseo-cho/gomall/internal/domain/model"
)

// ProductFilter narrows catalog listings. Query matches product names
// case-insensitively; zero Limit means the repository default page size.
type ProductFilter struct {
	Status model.ProductStatus
	Query  string
	Limit  int
	Offset int
}

// ProductRepository describes persistence operations for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetByName(ctx context.Context, categoryID int64, name string) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	// UpdateStatusBulk changes the status of the identified products and
	// returns how many rows changed. Bulk admin actions go through explicit
	// id lists, never a query abstraction.
	UpdateStatusBulk(ctx context.Context, ids []int64, status model.ProductStatus) (int64, error)
}

// CategoryRepository manages product categories.
type CategoryRepository interface {
	GetOrCreate(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}
