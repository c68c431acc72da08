package dto

import "time"

// PaymentStartRequest describes the payload opening a new payment attempt.
type PaymentStartRequest struct {
	PayMethod string `json:"pay_method"`
}

// PaymentCancelRequest carries the user supplied cancellation reason.
type PaymentCancelRequest struct {
	Reason string `json:"reason"`
}

// PaymentResponse describes one payment attempt.
type PaymentResponse struct {
	UID           string    `json:"uid"`
	OrderID       int64     `json:"order_id"`
	Name          string    `json:"name"`
	DesiredAmount int64     `json:"desired_amount"`
	BuyerName     string    `json:"buyer_name,omitempty"`
	BuyerEmail    string    `json:"buyer_email,omitempty"`
	PayMethod     string    `json:"pay_method,omitempty"`
	Status        string    `json:"status"`
	PaidOK        bool      `json:"paid_ok"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReconcileResponse reports the result of one reconciliation pass.
type ReconcileResponse struct {
	Payment PaymentResponse `json:"payment"`
	Outcome string          `json:"outcome"`
}

// WebhookRequest is the gateway callback body. Only the merchant uid is
// used; status and amount are always re-read from the gateway.
type WebhookRequest struct {
	ImpUID      string `json:"imp_uid"`
	MerchantUID string `json:"merchant_uid"`
	Status      string `json:"status"`
}
