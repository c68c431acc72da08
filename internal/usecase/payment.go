package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/minseo-cho/gomall/internal/adapter/portone"
	domainErrors "github.com/minseo-cho/gomall/internal/domain/errors"
	"github.com/minseo-cho/gomall/internal/domain/model"
	"github.com/minseo-cho/gomall/internal/domain/repository"
	"github.com/minseo-cho/gomall/internal/events"
)

// PaymentUseCase starts payment attempts and reconciles them against the
// gateway, which is the single source of truth for money movement.
type PaymentUseCase struct {
	payments  repository.PaymentRepository
	orders    repository.OrderRepository
	users     repository.UserRepository
	gateway   portone.Client
	publisher events.Publisher
	logger    *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(
	payments repository.PaymentRepository,
	orders repository.OrderRepository,
	users repository.UserRepository,
	gateway portone.Client,
	publisher events.Publisher,
	logger *slog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		payments:  payments,
		orders:    orders,
		users:     users,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
	}
}

// Start opens a new payment attempt for the order. Each attempt gets a fresh
// merchant uid, so a retried checkout never reuses a gateway transaction.
func (u *PaymentUseCase) Start(ctx context.Context, orderID, userID int64, payMethod string) (*model.Payment, error) {
	order, err := u.orders.GetByID(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if !order.CanPay() {
		return nil, domainErrors.ErrOrderNotPayable
	}

	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines, err := u.orders.ListLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	payment := &model.Payment{
		OrderID:       order.ID,
		UID:           model.NewPaymentUID(),
		Name:          orderDisplayName(lines),
		DesiredAmount: order.TotalAmount,
		BuyerName:     usr.Login,
		BuyerEmail:    usr.Email,
		PayMethod:     payMethod,
		Status:        model.PayStatusReady,
	}
	return u.payments.Create(ctx, payment)
}

// Get returns the payment attempt identified by uid, scoped to the order's
// owner.
func (u *PaymentUseCase) Get(ctx context.Context, uid string, userID int64) (*model.Payment, error) {
	payment, err := u.payments.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if _, err := u.orders.GetByID(ctx, payment.OrderID, userID); err != nil {
		return nil, err
	}
	return payment, nil
}

// ListByOrder returns the payment attempts of an order owned by userID.
func (u *PaymentUseCase) ListByOrder(ctx context.Context, orderID, userID int64) ([]model.Payment, error) {
	if _, err := u.orders.GetByID(ctx, orderID, userID); err != nil {
		return nil, err
	}
	return u.payments.ListByOrder(ctx, orderID)
}

// Reconcile pulls the gateway's record for uid and applies the resulting
// transition. The gateway-reported status is persisted on the payment row
// before any order transition, so a crash between the two steps leaves an
// audit trail rather than lost money state.
//
// A paid report at the exact desired amount marks the order paid; the first
// such report wins and discards sibling attempts. A paid report at any other
// amount is recorded as a mismatch for manual review and leaves the order
// payable. Failed and cancelled reports move the order accordingly.
func (u *PaymentUseCase) Reconcile(ctx context.Context, uid string) (*model.Payment, model.ReconcileOutcome, error) {
	payment, err := u.payments.GetByUID(ctx, uid)
	if err != nil {
		return nil, "", err
	}

	reported, err := u.gateway.Fetch(ctx, uid)
	if err != nil {
		var tooMany portone.TooManyRequestsError
		if errors.As(err, &tooMany) {
			return nil, "", err
		}
		if errors.Is(err, portone.ErrPaymentNotFound) {
			return nil, "", fmt.Errorf("%w: %s", domainErrors.ErrNotFound, err)
		}
		return nil, "", err
	}

	outcome := model.OutcomeFor(reported.Status, reported.Amount, payment.DesiredAmount)
	paidOK := outcome == model.OutcomePaid

	if err := u.payments.ApplyGatewayStatus(ctx, payment.ID, reported.Status, paidOK); err != nil {
		return nil, "", err
	}
	payment.Status = reported.Status
	payment.PaidOK = paidOK
	payment.UpdatedAt = time.Now()

	switch outcome {
	case model.OutcomePaid:
		if err := u.orders.MarkPaid(ctx, payment.OrderID, payment.ID); err != nil {
			return nil, "", err
		}
		u.publish(ctx, payment, model.OrderStatusPaid)
	case model.OutcomeFailed:
		if err := u.orders.UpdateStatus(ctx, payment.OrderID, model.OrderStatusFailedPayment); err != nil {
			return nil, "", err
		}
		u.publish(ctx, payment, model.OrderStatusFailedPayment)
	case model.OutcomeCancelled:
		if err := u.orders.UpdateStatus(ctx, payment.OrderID, model.OrderStatusCancelled); err != nil {
			return nil, "", err
		}
		u.publish(ctx, payment, model.OrderStatusCancelled)
	case model.OutcomeAmountMismatch:
		u.logger.Warn("payment amount mismatch",
			slog.String("uid", payment.UID),
			slog.Int64("order_id", payment.OrderID),
			slog.Int64("desired", payment.DesiredAmount),
			slog.Int64("paid", reported.Amount),
		)
	case model.OutcomePending:
		// Non-terminal gateway status, nothing to transition.
	}

	return payment, outcome, nil
}

// Cancel asks the gateway to cancel the attempt and then reconciles. The
// reconciliation runs regardless of the cancel result: the gateway may have
// cancelled the payment even when its response was lost.
func (u *PaymentUseCase) Cancel(ctx context.Context, uid string, userID int64, reason string) (*model.Payment, model.ReconcileOutcome, error) {
	payment, err := u.payments.GetByUID(ctx, uid)
	if err != nil {
		return nil, "", err
	}
	if _, err := u.orders.GetByID(ctx, payment.OrderID, userID); err != nil {
		return nil, "", err
	}

	if err := u.gateway.Cancel(ctx, uid, reason); err != nil {
		var tooMany portone.TooManyRequestsError
		if errors.As(err, &tooMany) {
			return nil, "", err
		}
		u.logger.Warn("gateway cancel failed, reconciling anyway",
			slog.String("uid", uid), slog.String("error", err.Error()))
	}

	return u.Reconcile(ctx, uid)
}

// PaymentsForReconciliation returns the next batch of open attempts for the
// background watcher.
func (u *PaymentUseCase) PaymentsForReconciliation(ctx context.Context, limit int) ([]model.Payment, error) {
	return u.payments.SelectReadyBatch(ctx, limit)
}

func (u *PaymentUseCase) publish(ctx context.Context, payment *model.Payment, status model.OrderStatus) {
	u.publisher.Publish(ctx, events.OrderEvent{
		OrderID:    payment.OrderID,
		Status:     string(status),
		PaymentUID: payment.UID,
		Amount:     payment.DesiredAmount,
		OccurredAt: time.Now(),
	})
}

// orderDisplayName builds the human readable payment name shown at the
// gateway checkout, e.g. "Keyboard and 2 more".
func orderDisplayName(lines []model.OrderLine) string {
	if len(lines) == 0 {
		return "order"
	}
	if len(lines) == 1 {
		return lines[0].Name
	}
	return fmt.Sprintf("%s and %d more", lines[0].Name, len(lines)-1)
}
