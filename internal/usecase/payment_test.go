package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/minseo-cho/gomall/internal/adapter/portone"
	domainErrors "github.com/minseo-cho/gomall/internal/domain/errors"
	"github.com/minseo-cho/gomall/internal/domain/model"
	testhelpers "github.com/minseo-cho/gomall/internal/test"
)

type paymentFixture struct {
	payments  *testhelpers.PaymentRepositoryStub
	orders    *testhelpers.OrderRepositoryStub
	users     *testhelpers.UserRepositoryStub
	gateway   *testhelpers.GatewayStub
	publisher *testhelpers.PublisherStub
	uc        *PaymentUseCase
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		payments:  &testhelpers.PaymentRepositoryStub{},
		orders:    &testhelpers.OrderRepositoryStub{},
		users:     testhelpers.NewUserRepositoryStub(),
		gateway:   &testhelpers.GatewayStub{},
		publisher: &testhelpers.PublisherStub{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.uc = NewPaymentUseCase(f.payments, f.orders, f.users, f.gateway, f.publisher, logger)
	return f
}

func (f *paymentFixture) seedOrder(t *testing.T, status model.OrderStatus) *model.Order {
	t.Helper()
	if _, err := f.users.Create(context.Background(), "alice", "alice@example.com", "hash"); err != nil && !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("seed user: %v", err)
	}
	order := &model.Order{UserID: 1, TotalAmount: 9900, Status: status}
	created, err := f.orders.Create(context.Background(), order, []model.OrderLine{
		{ProductID: 1, Name: "keyboard", Price: 4900, Quantity: 2},
		{ProductID: 2, Name: "cable", Price: 100, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return created
}

func (f *paymentFixture) seedPayment(t *testing.T, orderID int64) *model.Payment {
	t.Helper()
	payment, err := f.payments.Create(context.Background(), &model.Payment{
		OrderID:       orderID,
		UID:           model.NewPaymentUID(),
		DesiredAmount: 9900,
		Status:        model.PayStatusReady,
	})
	if err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	return payment
}

func TestPaymentUseCaseStart(t *testing.T) {
	f := newPaymentFixture()
	order := f.seedOrder(t, model.OrderStatusRequested)

	payment, err := f.uc.Start(context.Background(), order.ID, 1, "card")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payment.UID) != 32 {
		t.Fatalf("expected 32 char merchant uid, got %q", payment.UID)
	}
	if payment.DesiredAmount != 9900 {
		t.Fatalf("desired amount must equal order total, got %d", payment.DesiredAmount)
	}
	if payment.Name != "keyboard and 1 more" {
		t.Fatalf("unexpected payment name %q", payment.Name)
	}
	if payment.BuyerName != "alice" || payment.BuyerEmail != "alice@example.com" {
		t.Fatalf("buyer not filled from account: %+v", payment)
	}
	if payment.Status != model.PayStatusReady {
		t.Fatalf("new attempt must be ready, got %s", payment.Status)
	}
}

func TestPaymentUseCaseStartEachAttemptGetsFreshUID(t *testing.T) {
	f := newPaymentFixture()
	order := f.seedOrder(t, model.OrderStatusFailedPayment)

	first, err := f.uc.Start(context.Background(), order.ID, 1, "card")
	if err != nil {
		t.Fatalf("first attempt failed: %v", err)
	}
	second, err := f.uc.Start(context.Background(), order.ID, 1, "card")
	if err != nil {
		t.Fatalf("second attempt failed: %v", err)
	}
	if first.UID == second.UID {
		t.Fatalf("attempts must never share a merchant uid")
	}
}

func TestPaymentUseCaseStartRejectsUnpayableOrder(t *testing.T) {
	f := newPaymentFixture()
	for _, status := range []model.OrderStatus{model.OrderStatusPaid, model.OrderStatusCancelled, model.OrderStatusDelivered} {
		order := f.seedOrder(t, status)
		if _, err := f.uc.Start(context.Background(), order.ID, 1, "card"); err != domainErrors.ErrOrderNotPayable {
			t.Fatalf("status %s: expected ErrOrderNotPayable, got %v", status, err)
		}
	}
}

func TestPaymentUseCaseReconcilePaid(t *testing.T) {
	f := newPaymentFixture()
	order := f.seedOrder(t, model.OrderStatusRequested)
	payment := f.seedPayment(t, order.ID)
	f.gateway.Payment = &model.GatewayPayment{UID: payment.UID, Status: model.PayStatusPaid, Amount: 9900}

	got, outcome, err := f.uc.Reconcile(context.Background(), payment.UID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != model.OutcomePaid {
		t.Fatalf("expected paid outcome, got %s", outcome)
	}
	if !got.PaidOK {
		t.Fatalf("winning payment must be flagged paid ok")
	}
	if len(f.payments.Applied) != 1 || !f.payments.Applied[0].PaidOK {
		t.Fatalf("gateway status not persisted: %+v", f.payments.Applied)
	}
	if len(f.orders.MarkedPaid) != 1 || f.orders.MarkedPaid[0].OrderID != order.ID {
		t.Fatalf("order must be marked paid: %+v", f.orders.MarkedPaid)
	}
	events := f.publisher.Events()
	if len(events) != 1 || events[0].Status != string(model.OrderStatusPaid) {
		t.Fatalf("expected one paid event, got %+v", events)
	}
}

func TestPaymentUseCaseReconcileAmountMismatch(t *testing.T) {
	f := newPaymentFixture()
	order := f.seedOrder(t, model.OrderStatusRequested)
	payment := f.seedPayment(t, order.ID)
	f.gateway.Payment = &model.GatewayPayment{UID: payment.UID, Status: model.PayStatusPaid, Amount: 100}

	got, outcome, err := f.uc.Reconcile(context.Background(), payment.UID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != model.OutcomeAmountMismatch {
		t.Fatalf("expected amount mismatch, got %s", outcome)
	}
	if got.PaidOK {
		t.Fatalf("mismatched payment must not be flagged paid ok")
	}
	if got.Status != model.PayStatusPaid {
		t.Fatalf("reported gateway status must still be persisted, got %s", got.Status)
	}
	if len(f.orders.MarkedPaid) != 0 || len(f.orders.UpdateCalls) != 0 {
		t.Fatalf("order must stay untouched on mismatch")
	}
	if len(f.publisher.Events()) != 0 {
		t.Fatalf("no event for a mismatch requiring manual review")
	}
}

func TestPaymentUseCaseReconcileFailed(t *testing.T) {
	f := newPaymentFixture()
	order := f.seedOrder(t, model.OrderStatusRequested)
	payment := f.seedPayment(t, order.ID)
	f.gateway.Payment = &model.GatewayPayment{UID: payment.UID, Status: model.PayStatusFailed}

	_, outcome, err := f.uc.Reconcile(context.Background(), payment.UID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != model.OutcomeFailed {
		t.Fatalf("expected failed outcome, got %s", outcome)
	}
	if len(f.orders.UpdateCalls) != 1 || f.orders.UpdateCalls[0].Status != model.OrderStatusFailedPayment {
		t.Fatalf("order must move to failed_payment: %+v", f.orders.UpdateCalls)
	}

	updated, err := f.orders.GetByID(context.Background(), order.ID, 1)
	if err != nil {
		t.Fatalf("fetch order: %v", err)
	}
	if !updated.CanPay() {
		t.Fatalf("failed_payment order must stay payable")
	}
}

func TestPaymentUseCaseReconcileCancelled(t *testing.T) {
	f := newPaymentFixture()
	order := f.seedOrder(t, model.OrderStatusRequested)
	payment := f.seedPayment(t, order.ID)
	f.gateway.Payment = &model.GatewayPayment{UID: payment.UID, Status: model.PayStatusCancelled}

	_, outcome, err := f.uc.Reconcile(context.Background(), payment.UID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != model.OutcomeCancelled {
		t.Fatalf("expected cancelled outcome, got %s", outcome)
	}

	updated, err := f.orders.GetByID(context.Background(), order.ID, 1)
	if err != nil {
		t.Fatalf("fetch order: %v", err)
	}
	if updated.CanPay() {
		t.Fatalf("cancelled order must not be payable")
	}
}

func TestPaymentUseCaseReconcilePending(t *testing.T) {
	f := newPaymentFixture()
	order := f.seedOrder(t, model.OrderStatusRequested)
	payment := f.seedPayment(t, order.ID)
	f.gateway.Payment = &model.GatewayPayment{UID: payment.UID, Status: model.PayStatusReady}

	_, outcome, err := f.uc.Reconcile(context.Background(), payment.UID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != model.OutcomePending {
		t.Fatalf("expected pending outcome, got %s", outcome)
	}
	if len(f.orders.UpdateCalls) != 0 || len(f.orders.MarkedPaid) != 0 {
		t.Fatalf("pending report must not transition the order")
	}
}

func TestPaymentUseCaseReconcileGatewayUnknownUID(t *testing.T) {
	f := newPaymentFixture()
	order := f.seedOrder(t, model.OrderStatusRequested)
	payment := f.seedPayment(t, order.ID)
	f.gateway.FetchErr = portone.ErrPaymentNotFound

	if _, _, err := f.uc.Reconcile(context.Background(), payment.UID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("gateway miss must surface as not found, got %v", err)
	}
	if len(f.payments.Applied) != 0 {
		t.Fatalf("nothing must be persisted when the gateway has no record")
	}
}

func TestPaymentUseCaseReconcileRateLimited(t *testing.T) {
	f := newPaymentFixture()
	order := f.seedOrder(t, model.OrderStatusRequested)
	payment := f.seedPayment(t, order.ID)
	f.gateway.FetchErr = portone.TooManyRequestsError{RetryAfter: 3 * time.Second}

	_, _, err := f.uc.Reconcile(context.Background(), payment.UID)
	var tooMany portone.TooManyRequestsError
	if !errors.As(err, &tooMany) {
		t.Fatalf("rate limit signal must pass through, got %v", err)
	}
	if tooMany.RetryAfter != 3*time.Second {
		t.Fatalf("unexpected retry after %s", tooMany.RetryAfter)
	}
}

func TestPaymentUseCaseCancelReconcilesDespiteCancelError(t *testing.T) {
	f := newPaymentFixture()
	order := f.seedOrder(t, model.OrderStatusRequested)
	payment := f.seedPayment(t, order.ID)
	f.gateway.CancelErr = errors.New("gateway unavailable")
	f.gateway.Payment = &model.GatewayPayment{UID: payment.UID, Status: model.PayStatusCancelled}

	_, outcome, err := f.uc.Cancel(context.Background(), payment.UID, 1, "changed my mind")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != model.OutcomeCancelled {
		t.Fatalf("expected cancelled outcome, got %s", outcome)
	}
	if len(f.gateway.Cancelled) != 1 {
		t.Fatalf("gateway cancel must be attempted")
	}
}

func TestPaymentUseCaseCancelScopedByUser(t *testing.T) {
	f := newPaymentFixture()
	order := f.seedOrder(t, model.OrderStatusRequested)
	payment := f.seedPayment(t, order.ID)

	if _, _, err := f.uc.Cancel(context.Background(), payment.UID, 99, "not mine"); err != domainErrors.ErrNotFound {
		t.Fatalf("foreign payment must be not found, got %v", err)
	}
	if len(f.gateway.Cancelled) != 0 {
		t.Fatalf("gateway must not be called for a foreign payment")
	}
}

func TestPaymentUseCasePaymentsForReconciliation(t *testing.T) {
	f := newPaymentFixture()
	order := f.seedOrder(t, model.OrderStatusRequested)
	f.seedPayment(t, order.ID)
	f.seedPayment(t, order.ID)

	batch, err := f.uc.PaymentsForReconciliation(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch) != 1 {
		t.Fatalf("expected batch limited to 1, got %d", len(batch))
	}
}
