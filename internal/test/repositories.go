package test

import (
	"context"

	domainErrors "github.com/minseo-cho/gomall/internal/domain/errors"
	"github.com/minseo-cho/gomall/internal/domain/model"
	"github.com/minseo-cho/gomall/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, email, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, Email: email, PasswordHash: passwordHash}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ProductRepositoryStub lets tests control catalog data.
type ProductRepositoryStub struct {
	CreateFn           func(context.Context, *model.Product) (*model.Product, error)
	GetByIDFn          func(context.Context, int64) (*model.Product, error)
	GetByNameFn        func(context.Context, int64, string) (*model.Product, error)
	ListFn             func(context.Context, repository.ProductFilter) ([]model.Product, error)
	UpdateStatusBulkFn func(context.Context, []int64, model.ProductStatus) (int64, error)

	Products    []model.Product
	BulkUpdates []ProductBulkUpdate
}

// ProductBulkUpdate records one UpdateStatusBulk invocation.
type ProductBulkUpdate struct {
	IDs    []int64
	Status model.ProductStatus
}

// Create appends the product to the stored slice.
func (s *ProductRepositoryStub) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, product)
	}
	created := *product
	created.ID = int64(len(s.Products) + 1)
	s.Products = append(s.Products, created)
	return &created, nil
}

// GetByID returns matched product from the stored slice.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, p := range s.Products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByName returns a product matched by category and name.
func (s *ProductRepositoryStub) GetByName(ctx context.Context, categoryID int64, name string) (*model.Product, error) {
	if s.GetByNameFn != nil {
		return s.GetByNameFn(ctx, categoryID, name)
	}
	for _, p := range s.Products {
		if p.CategoryID == categoryID && p.Name == name {
			product := p
			return &product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List filters the stored slice by status.
func (s *ProductRepositoryStub) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	var out []model.Product
	for _, p := range s.Products {
		if p.Status == filter.Status {
			out = append(out, p)
		}
	}
	return out, nil
}

// UpdateStatusBulk records the invocation and mutates stored products.
func (s *ProductRepositoryStub) UpdateStatusBulk(ctx context.Context, ids []int64, status model.ProductStatus) (int64, error) {
	if s.UpdateStatusBulkFn != nil {
		return s.UpdateStatusBulkFn(ctx, ids, status)
	}
	s.BulkUpdates = append(s.BulkUpdates, ProductBulkUpdate{IDs: ids, Status: status})
	var changed int64
	for _, id := range ids {
		for i := range s.Products {
			if s.Products[i].ID == id && s.Products[i].Status != status {
				s.Products[i].Status = status
				changed++
			}
		}
	}
	return changed, nil
}

// CategoryRepositoryStub stores categories in-memory for tests.
type CategoryRepositoryStub struct {
	GetOrCreateFn func(context.Context, string) (*model.Category, error)
	ListFn        func(context.Context) ([]model.Category, error)
	Categories    []model.Category
}

// GetOrCreate returns an existing category or appends a new one.
func (s *CategoryRepositoryStub) GetOrCreate(ctx context.Context, name string) (*model.Category, error) {
	if s.GetOrCreateFn != nil {
		return s.GetOrCreateFn(ctx, name)
	}
	for _, c := range s.Categories {
		if c.Name == name {
			category := c
			return &category, nil
		}
	}
	category := model.Category{ID: int64(len(s.Categories) + 1), Name: name}
	s.Categories = append(s.Categories, category)
	return &category, nil
}

// List returns stored categories.
func (s *CategoryRepositoryStub) List(ctx context.Context) ([]model.Category, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Categories, nil
}

// CartRepositoryStub keeps cart rows in-memory with upsert semantics. When
// Products is set, ListByUser joins product name, price, and status the way
// the real repository does.
type CartRepositoryStub struct {
	AddFn         func(context.Context, int64, int64, int) (*model.CartItem, bool, error)
	ListByUserFn  func(context.Context, int64) ([]model.CartItem, error)
	SetQuantityFn func(context.Context, int64, int64, int) error
	RemoveFn      func(context.Context, int64, int64) error
	ClearFn       func(context.Context, int64) error

	Products *ProductRepositoryStub
	Items    []model.CartItem
	Cleared  []int64
	Next     int64
}

// Add inserts or increments the matching cart row.
func (s *CartRepositoryStub) Add(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, bool, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, productID, quantity)
	}
	for i := range s.Items {
		if s.Items[i].UserID == userID && s.Items[i].ProductID == productID {
			s.Items[i].Quantity += quantity
			item := s.Items[i]
			return &item, false, nil
		}
	}
	s.Next++
	item := model.CartItem{ID: s.Next, UserID: userID, ProductID: productID, Quantity: quantity}
	s.Items = append(s.Items, item)
	return &item, true, nil
}

// ListByUser returns stored rows for the user.
func (s *CartRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	var out []model.CartItem
	for _, item := range s.Items {
		if item.UserID != userID {
			continue
		}
		if s.Products != nil {
			if p, err := s.Products.GetByID(ctx, item.ProductID); err == nil {
				item.ProductName = p.Name
				item.ProductPrice = p.Price
			}
		}
		out = append(out, item)
	}
	return out, nil
}

// SetQuantity updates the matching row or reports not found.
func (s *CartRepositoryStub) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	if s.SetQuantityFn != nil {
		return s.SetQuantityFn(ctx, userID, productID, quantity)
	}
	for i := range s.Items {
		if s.Items[i].UserID == userID && s.Items[i].ProductID == productID {
			s.Items[i].Quantity = quantity
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// Remove deletes the matching row or reports not found.
func (s *CartRepositoryStub) Remove(ctx context.Context, userID, productID int64) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, productID)
	}
	for i := range s.Items {
		if s.Items[i].UserID == userID && s.Items[i].ProductID == productID {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// Clear removes all rows of the user and records the call.
func (s *CartRepositoryStub) Clear(ctx context.Context, userID int64) error {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, userID)
	}
	s.Cleared = append(s.Cleared, userID)
	var kept []model.CartItem
	for _, item := range s.Items {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	s.Items = kept
	return nil
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order, []model.OrderLine) (*model.Order, error)
	GetByIDFn      func(context.Context, int64, int64) (*model.Order, error)
	ListByUserFn   func(context.Context, int64) ([]model.Order, error)
	ListLinesFn    func(context.Context, int64) ([]model.OrderLine, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus) error
	MarkPaidFn     func(context.Context, int64, int64) error

	Orders      []model.Order
	Lines       map[int64][]model.OrderLine
	UpdateCalls []OrderUpdateCall
	MarkedPaid  []MarkPaidCall
	Next        int64
}

// OrderUpdateCall records one UpdateStatus invocation.
type OrderUpdateCall struct {
	OrderID int64
	Status  model.OrderStatus
}

// MarkPaidCall records one MarkPaid invocation.
type MarkPaidCall struct {
	OrderID   int64
	PaymentID int64
}

// Create stores the order with its lines.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order, lines []model.OrderLine) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order, lines)
	}
	s.Next++
	created := *order
	created.ID = s.Next
	s.Orders = append(s.Orders, created)
	if s.Lines == nil {
		s.Lines = make(map[int64][]model.OrderLine)
	}
	s.Lines[created.ID] = lines
	return &created, nil
}

// GetByID returns matched order scoped by owner.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id, userID int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id, userID)
	}
	for _, o := range s.Orders {
		if o.ID == id && o.UserID == userID {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	var out []model.Order
	for _, o := range s.Orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// ListLines returns stored lines of the order.
func (s *OrderRepositoryStub) ListLines(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	if s.ListLinesFn != nil {
		return s.ListLinesFn(ctx, orderID)
	}
	return s.Lines[orderID], nil
}

// UpdateStatus records the invocation and mutates the stored order.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	s.UpdateCalls = append(s.UpdateCalls, OrderUpdateCall{OrderID: orderID, Status: status})
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			s.Orders[i].Status = status
		}
	}
	return nil
}

// MarkPaid records the invocation and marks the stored order paid.
func (s *OrderRepositoryStub) MarkPaid(ctx context.Context, orderID, paymentID int64) error {
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, orderID, paymentID)
	}
	s.MarkedPaid = append(s.MarkedPaid, MarkPaidCall{OrderID: orderID, PaymentID: paymentID})
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			s.Orders[i].Status = model.OrderStatusPaid
		}
	}
	return nil
}

// PaymentRepositoryStub keeps payment attempts in-memory for tests.
type PaymentRepositoryStub struct {
	CreateFn             func(context.Context, *model.Payment) (*model.Payment, error)
	GetByUIDFn           func(context.Context, string) (*model.Payment, error)
	ListByOrderFn        func(context.Context, int64) ([]model.Payment, error)
	ApplyGatewayStatusFn func(context.Context, int64, model.PayStatus, bool) error
	SelectReadyBatchFn   func(context.Context, int) ([]model.Payment, error)

	Payments []model.Payment
	Applied  []GatewayStatusCall
	Next     int64
}

// GatewayStatusCall records one ApplyGatewayStatus invocation.
type GatewayStatusCall struct {
	PaymentID int64
	Status    model.PayStatus
	PaidOK    bool
}

// Create stores the payment attempt.
func (s *PaymentRepositoryStub) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, payment)
	}
	s.Next++
	created := *payment
	created.ID = s.Next
	s.Payments = append(s.Payments, created)
	return &created, nil
}

// GetByUID returns the matching attempt or not found.
func (s *PaymentRepositoryStub) GetByUID(ctx context.Context, uid string) (*model.Payment, error) {
	if s.GetByUIDFn != nil {
		return s.GetByUIDFn(ctx, uid)
	}
	for _, p := range s.Payments {
		if p.UID == uid {
			payment := p
			return &payment, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByOrder returns stored attempts of the order.
func (s *PaymentRepositoryStub) ListByOrder(ctx context.Context, orderID int64) ([]model.Payment, error) {
	if s.ListByOrderFn != nil {
		return s.ListByOrderFn(ctx, orderID)
	}
	var out []model.Payment
	for _, p := range s.Payments {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ApplyGatewayStatus records the invocation and mutates the stored row.
func (s *PaymentRepositoryStub) ApplyGatewayStatus(ctx context.Context, paymentID int64, status model.PayStatus, paidOK bool) error {
	if s.ApplyGatewayStatusFn != nil {
		return s.ApplyGatewayStatusFn(ctx, paymentID, status, paidOK)
	}
	s.Applied = append(s.Applied, GatewayStatusCall{PaymentID: paymentID, Status: status, PaidOK: paidOK})
	for i := range s.Payments {
		if s.Payments[i].ID == paymentID {
			s.Payments[i].Status = status
			s.Payments[i].PaidOK = paidOK
		}
	}
	return nil
}

// SelectReadyBatch returns ready attempts up to the limit.
func (s *PaymentRepositoryStub) SelectReadyBatch(ctx context.Context, limit int) ([]model.Payment, error) {
	if s.SelectReadyBatchFn != nil {
		return s.SelectReadyBatchFn(ctx, limit)
	}
	var out []model.Payment
	for _, p := range s.Payments {
		if p.Status == model.PayStatusReady && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}
