package app

import (
	"context"

	"github.com/minseo-cho/gomall/internal/domain/model"
	"github.com/minseo-cho/gomall/internal/usecase"
)

// ShopFacade aggregates the use cases behind the single surface consumed by
// the HTTP handlers and the payment watcher.
type ShopFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	cart     *usecase.CartUseCase
	orders   *usecase.OrderUseCase
	payments *usecase.PaymentUseCase
}

func NewShopFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	cart *usecase.CartUseCase,
	orders *usecase.OrderUseCase,
	payments *usecase.PaymentUseCase,
) *ShopFacade {
	return &ShopFacade{auth: auth, catalog: catalog, cart: cart, orders: orders, payments: payments}
}

func (f *ShopFacade) Register(ctx context.Context, login, email, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, email, password)
	return token, err
}

func (f *ShopFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *ShopFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *ShopFacade) Products(ctx context.Context, query string, page int) ([]model.Product, error) {
	return f.catalog.List(ctx, query, page)
}

func (f *ShopFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *ShopFacade) Categories(ctx context.Context) ([]model.Category, error) {
	return f.catalog.Categories(ctx)
}

func (f *ShopFacade) SetProductsStatus(ctx context.Context, ids []int64, status model.ProductStatus) (int64, error) {
	return f.catalog.SetProductsStatus(ctx, ids, status)
}

func (f *ShopFacade) AddToCart(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, error) {
	return f.cart.Add(ctx, userID, productID, quantity)
}

func (f *ShopFacade) CartItems(ctx context.Context, userID int64) ([]model.CartItem, error) {
	return f.cart.Items(ctx, userID)
}

func (f *ShopFacade) CartTotal(ctx context.Context, userID int64) (int64, error) {
	return f.cart.Total(ctx, userID)
}

func (f *ShopFacade) SetCartQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	return f.cart.SetQuantity(ctx, userID, productID, quantity)
}

func (f *ShopFacade) RemoveFromCart(ctx context.Context, userID, productID int64) error {
	return f.cart.Remove(ctx, userID, productID)
}

func (f *ShopFacade) PlaceOrder(ctx context.Context, userID int64) (*model.Order, error) {
	return f.orders.CreateFromCart(ctx, userID)
}

func (f *ShopFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *ShopFacade) Order(ctx context.Context, id, userID int64) (*model.Order, error) {
	return f.orders.Get(ctx, id, userID)
}

func (f *ShopFacade) OrderLines(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	return f.orders.Lines(ctx, orderID)
}

func (f *ShopFacade) DeliverOrder(ctx context.Context, id, userID int64) error {
	return f.orders.Deliver(ctx, id, userID)
}

func (f *ShopFacade) StartPayment(ctx context.Context, orderID, userID int64, payMethod string) (*model.Payment, error) {
	return f.payments.Start(ctx, orderID, userID, payMethod)
}

func (f *ShopFacade) OrderPayments(ctx context.Context, orderID, userID int64) ([]model.Payment, error) {
	return f.payments.ListByOrder(ctx, orderID, userID)
}

func (f *ShopFacade) CheckPayment(ctx context.Context, uid string, userID int64) (*model.Payment, model.ReconcileOutcome, error) {
	if _, err := f.payments.Get(ctx, uid, userID); err != nil {
		return nil, "", err
	}
	return f.payments.Reconcile(ctx, uid)
}

func (f *ShopFacade) CancelPayment(ctx context.Context, uid string, userID int64, reason string) (*model.Payment, model.ReconcileOutcome, error) {
	return f.payments.Cancel(ctx, uid, userID, reason)
}

// ReconcilePayment is the unscoped reconciliation entry used by the webhook
// and the watcher. The uid is the only input trusted from outside.
func (f *ShopFacade) ReconcilePayment(ctx context.Context, uid string) (*model.Payment, model.ReconcileOutcome, error) {
	return f.payments.Reconcile(ctx, uid)
}

func (f *ShopFacade) PaymentsForReconciliation(ctx context.Context, limit int) ([]model.Payment, error) {
	return f.payments.PaymentsForReconciliation(ctx, limit)
}
