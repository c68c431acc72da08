package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/minseo-cho/gomall/internal/domain/model"
	"github.com/minseo-cho/gomall/internal/events"
)

// CatalogFacadeStub provides controllable behaviour for catalog endpoints.
type CatalogFacadeStub struct {
	ProductsFn   func(context.Context, string, int) ([]model.Product, error)
	ProductFn    func(context.Context, int64) (*model.Product, error)
	CategoriesFn func(context.Context) ([]model.Category, error)
	SetStatusFn  func(context.Context, []int64, model.ProductStatus) (int64, error)
}

// Products returns predefined catalog page.
func (s CatalogFacadeStub) Products(ctx context.Context, query string, page int) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, query, page)
	}
	return []model.Product{{ID: 1, Name: "keyboard", Price: 4900, Status: model.ProductStatusActive}}, nil
}

// Product returns predefined product.
func (s CatalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "keyboard", Price: 4900, Status: model.ProductStatusActive}, nil
}

// Categories returns predefined categories.
func (s CatalogFacadeStub) Categories(ctx context.Context) ([]model.Category, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return []model.Category{{ID: 1, Name: "peripherals"}}, nil
}

// SetProductsStatus executes the configured handler.
func (s CatalogFacadeStub) SetProductsStatus(ctx context.Context, ids []int64, status model.ProductStatus) (int64, error) {
	if s.SetStatusFn != nil {
		return s.SetStatusFn(ctx, ids, status)
	}
	return int64(len(ids)), nil
}

// CartFacadeStub simulates cart operations.
type CartFacadeStub struct {
	AddFn         func(context.Context, int64, int64, int) (*model.CartItem, error)
	ItemsFn       func(context.Context, int64) ([]model.CartItem, error)
	TotalFn       func(context.Context, int64) (int64, error)
	SetQuantityFn func(context.Context, int64, int64, int) error
	RemoveFn      func(context.Context, int64, int64) error
}

// AddToCart returns the configured result or a default item.
func (s CartFacadeStub) AddToCart(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, productID, quantity)
	}
	return &model.CartItem{ID: 1, UserID: userID, ProductID: productID, Quantity: quantity}, nil
}

// CartItems returns predefined cart rows.
func (s CartFacadeStub) CartItems(ctx context.Context, userID int64) ([]model.CartItem, error) {
	if s.ItemsFn != nil {
		return s.ItemsFn(ctx, userID)
	}
	return []model.CartItem{{ID: 1, UserID: userID, ProductID: 1, Quantity: 2, ProductName: "keyboard", ProductPrice: 4900}}, nil
}

// CartTotal returns predefined total.
func (s CartFacadeStub) CartTotal(ctx context.Context, userID int64) (int64, error) {
	if s.TotalFn != nil {
		return s.TotalFn(ctx, userID)
	}
	return 9800, nil
}

// SetCartQuantity executes the configured handler.
func (s CartFacadeStub) SetCartQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	if s.SetQuantityFn != nil {
		return s.SetQuantityFn(ctx, userID, productID, quantity)
	}
	return nil
}

// RemoveFromCart executes the configured handler.
func (s CartFacadeStub) RemoveFromCart(ctx context.Context, userID, productID int64) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, productID)
	}
	return nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn   func(context.Context, int64) (*model.Order, error)
	OrdersFn  func(context.Context, int64) ([]model.Order, error)
	OrderFn   func(context.Context, int64, int64) (*model.Order, error)
	LinesFn   func(context.Context, int64) ([]model.OrderLine, error)
	DeliverFn func(context.Context, int64, int64) error
}

// PlaceOrder delegates to provided function or returns a default order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, userID int64) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, userID)
	}
	return &model.Order{ID: 1, UserID: userID, TotalAmount: 9800, Status: model.OrderStatusRequested}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, UserID: userID, Status: model.OrderStatusRequested}}, nil
}

// Order returns one predefined order.
func (s OrderFacadeStub) Order(ctx context.Context, id, userID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id, userID)
	}
	return &model.Order{ID: id, UserID: userID, Status: model.OrderStatusRequested}, nil
}

// OrderLines returns predefined lines.
func (s OrderFacadeStub) OrderLines(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	if s.LinesFn != nil {
		return s.LinesFn(ctx, orderID)
	}
	return []model.OrderLine{{ID: 1, OrderID: orderID, ProductID: 1, Name: "keyboard", Price: 4900, Quantity: 2}}, nil
}

// DeliverOrder executes the configured handler.
func (s OrderFacadeStub) DeliverOrder(ctx context.Context, id, userID int64) error {
	if s.DeliverFn != nil {
		return s.DeliverFn(ctx, id, userID)
	}
	return nil
}

// PaymentFacadeStub simulates payment operations for handler tests.
type PaymentFacadeStub struct {
	StartFn     func(context.Context, int64, int64, string) (*model.Payment, error)
	ListFn      func(context.Context, int64, int64) ([]model.Payment, error)
	CheckFn     func(context.Context, string, int64) (*model.Payment, model.ReconcileOutcome, error)
	CancelFn    func(context.Context, string, int64, string) (*model.Payment, model.ReconcileOutcome, error)
	ReconcileFn func(context.Context, string) (*model.Payment, model.ReconcileOutcome, error)
}

// StartPayment returns the configured attempt or a default ready one.
func (s PaymentFacadeStub) StartPayment(ctx context.Context, orderID, userID int64, payMethod string) (*model.Payment, error) {
	if s.StartFn != nil {
		return s.StartFn(ctx, orderID, userID, payMethod)
	}
	return &model.Payment{ID: 1, OrderID: orderID, UID: "uid-1", DesiredAmount: 9800, Status: model.PayStatusReady}, nil
}

// OrderPayments returns predefined attempts.
func (s PaymentFacadeStub) OrderPayments(ctx context.Context, orderID, userID int64) ([]model.Payment, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, orderID, userID)
	}
	return []model.Payment{{ID: 1, OrderID: orderID, UID: "uid-1", Status: model.PayStatusReady}}, nil
}

// CheckPayment delegates to the configured handler.
func (s PaymentFacadeStub) CheckPayment(ctx context.Context, uid string, userID int64) (*model.Payment, model.ReconcileOutcome, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, uid, userID)
	}
	return &model.Payment{ID: 1, UID: uid, Status: model.PayStatusPaid, PaidOK: true}, model.OutcomePaid, nil
}

// CancelPayment delegates to the configured handler.
func (s PaymentFacadeStub) CancelPayment(ctx context.Context, uid string, userID int64, reason string) (*model.Payment, model.ReconcileOutcome, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, uid, userID, reason)
	}
	return &model.Payment{ID: 1, UID: uid, Status: model.PayStatusCancelled}, model.OutcomeCancelled, nil
}

// ReconcilePayment delegates to the configured handler.
func (s PaymentFacadeStub) ReconcilePayment(ctx context.Context, uid string) (*model.Payment, model.ReconcileOutcome, error) {
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, uid)
	}
	return &model.Payment{ID: 1, UID: uid, Status: model.PayStatusPaid, PaidOK: true}, model.OutcomePaid, nil
}

// ShopFacadeStub aggregates facade dependencies for HTTP layer tests.
type ShopFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	OrderFacadeStub
	PaymentFacadeStub
}

// WatcherFacadeStub mimics worker interactions with the payment facade.
type WatcherFacadeStub struct {
	Batches     [][]model.Payment
	BatchesFn   func(context.Context, int) ([]model.Payment, error)
	ReconcileFn func(context.Context, string) (*model.Payment, model.ReconcileOutcome, error)
	Reconciled  []string
	mu          sync.Mutex
	batchCalls  int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WatcherFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WatcherFacadeStub) Unlock() { s.mu.Unlock() }

// PaymentsForReconciliation returns batches from the configured queue.
func (s *WatcherFacadeStub) PaymentsForReconciliation(ctx context.Context, limit int) ([]model.Payment, error) {
	if s.BatchesFn != nil {
		return s.BatchesFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.batchCalls, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// ReconcilePayment records the uid and returns the configured result.
func (s *WatcherFacadeStub) ReconcilePayment(ctx context.Context, uid string) (*model.Payment, model.ReconcileOutcome, error) {
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, uid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reconciled = append(s.Reconciled, uid)
	return &model.Payment{UID: uid, Status: model.PayStatusPaid, PaidOK: true}, model.OutcomePaid, nil
}

// GatewayStub fetches and cancels payments for tests.
type GatewayStub struct {
	FetchFn   func(context.Context, string) (*model.GatewayPayment, error)
	CancelFn  func(context.Context, string, string) error
	Payment   *model.GatewayPayment
	FetchErr  error
	CancelErr error
	Cancelled []string
}

// Fetch returns the configured gateway record or a paid default.
func (s *GatewayStub) Fetch(ctx context.Context, uid string) (*model.GatewayPayment, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, uid)
	}
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	if s.Payment != nil {
		return s.Payment, nil
	}
	return &model.GatewayPayment{UID: uid, Status: model.PayStatusPaid}, nil
}

// Cancel records the uid and returns the configured error.
func (s *GatewayStub) Cancel(ctx context.Context, uid, reason string) error {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, uid, reason)
	}
	s.Cancelled = append(s.Cancelled, uid)
	return s.CancelErr
}

// PublisherStub records emitted order events.
type PublisherStub struct {
	mu       sync.Mutex
	recorded []events.OrderEvent
}

// Publish stores the event for later inspection.
func (s *PublisherStub) Publish(ctx context.Context, event events.OrderEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorded = append(s.recorded, event)
}

// Events returns a copy of recorded events.
func (s *PublisherStub) Events() []events.OrderEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]events.OrderEvent, len(s.recorded))
	copy(out, s.recorded)
	return out
}
