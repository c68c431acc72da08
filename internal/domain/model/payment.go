package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PayStatus mirrors the payment states reported by the gateway.
type PayStatus string

const (
	PayStatusReady     PayStatus = "ready"
	PayStatusPaid      PayStatus = "paid"
	PayStatusCancelled PayStatus = "cancelled"
	PayStatusFailed    PayStatus = "failed"
)

// Payment is one payment attempt for an order. Re-attempts create new rows;
// at most one row per order ends up with PaidOK set. UID is the merchant
// reference sent to the gateway and doubles as the attempt's idempotency token.
type Payment struct {
	ID            int64
	OrderID       int64
	UID           string
	Name          string
	DesiredAmount int64
	BuyerName     string
	BuyerEmail    string
	PayMethod     string
	Status        PayStatus
	PaidOK        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewPaymentUID returns a fresh merchant reference id.
func NewPaymentUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GatewayPayment is the gateway's view of a payment attempt.
type GatewayPayment struct {
	UID        string
	Status     PayStatus
	Amount     int64
	ReceiptURL string
}

// ReconcileOutcome classifies one reconciliation pass against the gateway.
type ReconcileOutcome string

const (
	// OutcomePending means the gateway reported a non-terminal status; the
	// order is left untouched.
	OutcomePending ReconcileOutcome = "pending"
	OutcomePaid    ReconcileOutcome = "paid"
	OutcomeFailed  ReconcileOutcome = "failed"
	// OutcomeCancelled marks both payment and order as cancelled.
	OutcomeCancelled ReconcileOutcome = "cancelled"
	// OutcomeAmountMismatch flags a payment that succeeded at the wrong
	// amount. The order stays payable and the row needs manual review.
	OutcomeAmountMismatch ReconcileOutcome = "amount_mismatch"
)

// OutcomeFor maps a gateway-reported status and paid amount onto the
// reconciliation transition table. Amounts must match exactly for a paid
// report to count.
func OutcomeFor(status PayStatus, amount, desired int64) ReconcileOutcome {
	switch status {
	case PayStatusPaid:
		if amount == desired {
			return OutcomePaid
		}
		return OutcomeAmountMismatch
	case PayStatusFailed:
		return OutcomeFailed
	case PayStatusCancelled:
		return OutcomeCancelled
	default:
		return OutcomePending
	}
}
