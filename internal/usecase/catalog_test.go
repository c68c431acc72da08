package usecase

import (
	"context"
	"testing"

	domainErrors "github.com/minseo-cho/gomall/internal/domain/errors"
	"github.com/minseo-cho/gomall/internal/domain/model"
	"github.com/minseo-cho/gomall/internal/domain/repository"
	testhelpers "github.com/minseo-cho/gomall/internal/test"
)

func TestCatalogUseCaseListPassesFilter(t *testing.T) {
	var captured repository.ProductFilter
	products := &testhelpers.ProductRepositoryStub{
		ListFn: func(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
			captured = filter
			return nil, nil
		},
	}
	uc := NewCatalogUseCase(products, &testhelpers.CategoryRepositoryStub{})

	if _, err := uc.List(context.Background(), "key", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Status != model.ProductStatusActive {
		t.Fatalf("expected active filter, got %s", captured.Status)
	}
	if captured.Query != "key" {
		t.Fatalf("unexpected query %q", captured.Query)
	}
	if captured.Limit != DefaultPageSize || captured.Offset != 2*DefaultPageSize {
		t.Fatalf("unexpected page window: limit=%d offset=%d", captured.Limit, captured.Offset)
	}
}

func TestCatalogUseCaseListNormalizesPage(t *testing.T) {
	var captured repository.ProductFilter
	products := &testhelpers.ProductRepositoryStub{
		ListFn: func(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
			captured = filter
			return nil, nil
		},
	}
	uc := NewCatalogUseCase(products, &testhelpers.CategoryRepositoryStub{})

	if _, err := uc.List(context.Background(), "", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Offset != 0 {
		t.Fatalf("page below 1 must map to offset 0, got %d", captured.Offset)
	}
}

func TestCatalogUseCaseSetProductsStatus(t *testing.T) {
	products := &testhelpers.ProductRepositoryStub{
		Products: []model.Product{
			{ID: 1, Name: "keyboard", Status: model.ProductStatusInactive},
			{ID: 2, Name: "mouse", Status: model.ProductStatusInactive},
			{ID: 3, Name: "cable", Status: model.ProductStatusActive},
		},
	}
	uc := NewCatalogUseCase(products, &testhelpers.CategoryRepositoryStub{})

	changed, err := uc.SetProductsStatus(context.Background(), []int64{1, 2, 3}, model.ProductStatusActive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed != 2 {
		t.Fatalf("expected 2 changed rows, got %d", changed)
	}
	if len(products.BulkUpdates) != 1 {
		t.Fatalf("expected a single bulk update, got %d", len(products.BulkUpdates))
	}
}

func TestCatalogUseCaseSetProductsStatusInvalid(t *testing.T) {
	uc := NewCatalogUseCase(&testhelpers.ProductRepositoryStub{}, &testhelpers.CategoryRepositoryStub{})
	if _, err := uc.SetProductsStatus(context.Background(), []int64{1}, "on_sale"); err != domainErrors.ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestCatalogUseCaseSetProductsStatusEmptyIDs(t *testing.T) {
	products := &testhelpers.ProductRepositoryStub{}
	uc := NewCatalogUseCase(products, &testhelpers.CategoryRepositoryStub{})

	changed, err := uc.SetProductsStatus(context.Background(), nil, model.ProductStatusObsolete)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed != 0 {
		t.Fatalf("expected zero changed rows, got %d", changed)
	}
	if len(products.BulkUpdates) != 0 {
		t.Fatalf("repository must not be called for empty id list")
	}
}

func TestCatalogUseCaseCategories(t *testing.T) {
	categories := &testhelpers.CategoryRepositoryStub{Categories: []model.Category{{ID: 1, Name: "peripherals"}}}
	uc := NewCatalogUseCase(&testhelpers.ProductRepositoryStub{}, categories)

	list, err := uc.Categories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].Name != "peripherals" {
		t.Fatalf("unexpected categories: %+v", list)
	}
}
