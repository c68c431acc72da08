package handlers

import (
	"context"

	"github.com/minseo-cho/gomall/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, email, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// CatalogFacade exposes catalog browsing and admin operations.
type CatalogFacade interface {
	Products(ctx context.Context, query string, page int) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	Categories(ctx context.Context) ([]model.Category, error)
	SetProductsStatus(ctx context.Context, ids []int64, status model.ProductStatus) (int64, error)
}

// CartFacade encapsulates cart operations exposed via HTTP.
type CartFacade interface {
	AddToCart(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, error)
	CartItems(ctx context.Context, userID int64) ([]model.CartItem, error)
	CartTotal(ctx context.Context, userID int64) (int64, error)
	SetCartQuantity(ctx context.Context, userID, productID int64, quantity int) error
	RemoveFromCart(ctx context.Context, userID, productID int64) error
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, userID int64) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, id, userID int64) (*model.Order, error)
	OrderLines(ctx context.Context, orderID int64) ([]model.OrderLine, error)
	DeliverOrder(ctx context.Context, id, userID int64) error
}

// PaymentFacade provides payment attempt operations and reconciliation.
type PaymentFacade interface {
	StartPayment(ctx context.Context, orderID, userID int64, payMethod string) (*model.Payment, error)
	OrderPayments(ctx context.Context, orderID, userID int64) ([]model.Payment, error)
	CheckPayment(ctx context.Context, uid string, userID int64) (*model.Payment, model.ReconcileOutcome, error)
	CancelPayment(ctx context.Context, uid string, userID int64, reason string) (*model.Payment, model.ReconcileOutcome, error)
	ReconcilePayment(ctx context.Context, uid string) (*model.Payment, model.ReconcileOutcome, error)
}

// ShopFacade aggregates the full set of operations used across handlers.
type ShopFacade interface {
	AuthFacade
	CatalogFacade
	CartFacade
	OrderFacade
	PaymentFacade
}
