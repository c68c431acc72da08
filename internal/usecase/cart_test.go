package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/minseo-cho/gomall/internal/domain/errors"
	"github.com/minseo-cho/gomall/internal/domain/model"
	testhelpers "github.com/minseo-cho/gomall/internal/test"
)

func activeProduct(id int64, price int64) model.Product {
	return model.Product{ID: id, Name: "keyboard", Price: price, Status: model.ProductStatusActive}
}

func TestCartUseCaseAddEnrichesItem(t *testing.T) {
	products := &testhelpers.ProductRepositoryStub{Products: []model.Product{activeProduct(1, 4900)}}
	carts := &testhelpers.CartRepositoryStub{}
	uc := NewCartUseCase(carts, products)

	item, err := uc.Add(context.Background(), 7, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ProductName != "keyboard" || item.ProductPrice != 4900 {
		t.Fatalf("item not enriched with product data: %+v", item)
	}
	if item.Amount() != 9800 {
		t.Fatalf("unexpected amount %d", item.Amount())
	}
}

func TestCartUseCaseAddIncrementsExistingRow(t *testing.T) {
	products := &testhelpers.ProductRepositoryStub{Products: []model.Product{activeProduct(1, 4900)}}
	carts := &testhelpers.CartRepositoryStub{}
	uc := NewCartUseCase(carts, products)

	if _, err := uc.Add(context.Background(), 7, 1, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	item, err := uc.Add(context.Background(), 7, 1, 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if item.Quantity != 5 {
		t.Fatalf("expected quantity 5 after increment, got %d", item.Quantity)
	}
	if len(carts.Items) != 1 {
		t.Fatalf("expected a single cart row, got %d", len(carts.Items))
	}
}

func TestCartUseCaseAddRejectsInvalidQuantity(t *testing.T) {
	carts := &testhelpers.CartRepositoryStub{}
	uc := NewCartUseCase(carts, &testhelpers.ProductRepositoryStub{})

	for _, quantity := range []int{0, -1} {
		if _, err := uc.Add(context.Background(), 7, 1, quantity); err != domainErrors.ErrInvalidQuantity {
			t.Fatalf("quantity %d: expected ErrInvalidQuantity, got %v", quantity, err)
		}
	}
	if len(carts.Items) != 0 {
		t.Fatalf("nothing must be written for invalid quantity")
	}
}

func TestCartUseCaseAddRejectsInactiveProduct(t *testing.T) {
	products := &testhelpers.ProductRepositoryStub{Products: []model.Product{
		{ID: 1, Name: "keyboard", Price: 4900, Status: model.ProductStatusSoldOut},
	}}
	uc := NewCartUseCase(&testhelpers.CartRepositoryStub{}, products)

	if _, err := uc.Add(context.Background(), 7, 1, 1); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for inactive product, got %v", err)
	}
}

func TestCartUseCaseTotal(t *testing.T) {
	carts := &testhelpers.CartRepositoryStub{
		ListByUserFn: func(ctx context.Context, userID int64) ([]model.CartItem, error) {
			return []model.CartItem{
				{ProductID: 1, Quantity: 2, ProductPrice: 4900},
				{ProductID: 2, Quantity: 1, ProductPrice: 100},
			}, nil
		},
	}
	uc := NewCartUseCase(carts, &testhelpers.ProductRepositoryStub{})

	total, err := uc.Total(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 9900 {
		t.Fatalf("expected total 9900, got %d", total)
	}
}

func TestCartUseCaseSetQuantityRejectsInvalid(t *testing.T) {
	called := false
	carts := &testhelpers.CartRepositoryStub{
		SetQuantityFn: func(context.Context, int64, int64, int) error {
			called = true
			return nil
		},
	}
	uc := NewCartUseCase(carts, &testhelpers.ProductRepositoryStub{})

	if err := uc.SetQuantity(context.Background(), 7, 1, 0); err != domainErrors.ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if called {
		t.Fatalf("repository must not be called for invalid quantity")
	}
}

func TestCartUseCaseRemove(t *testing.T) {
	carts := &testhelpers.CartRepositoryStub{Items: []model.CartItem{{ID: 1, UserID: 7, ProductID: 1, Quantity: 1}}}
	uc := NewCartUseCase(carts, &testhelpers.ProductRepositoryStub{})

	if err := uc.Remove(context.Background(), 7, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.Remove(context.Background(), 7, 1); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found for missing row, got %v", err)
	}
}
