package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minseo-cho/gomall/internal/adapter/portone"
	domainErrors "github.com/minseo-cho/gomall/internal/domain/errors"
	"github.com/minseo-cho/gomall/internal/server/http/dto"
)

// PaymentHandler manages payment attempts and gateway callbacks.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Start handles POST /api/orders/:id/payments.
func (h *PaymentHandler) Start(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID, ok := paramID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.PaymentStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	payment, err := h.facade.StartPayment(c.Request.Context(), orderID, userID, req.PayMethod)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrOrderNotPayable):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toPaymentResponse(*payment))
}

// Check handles POST /api/payments/:uid/check.
func (h *PaymentHandler) Check(c *gin.Context) {
	userID := CurrentUserID(c)
	uid := c.Param("uid")

	payment, outcome, err := h.facade.CheckPayment(c.Request.Context(), uid, userID)
	if err != nil {
		h.reconcileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReconcileResponse{Payment: toPaymentResponse(*payment), Outcome: string(outcome)})
}

// Cancel handles POST /api/payments/:uid/cancel.
func (h *PaymentHandler) Cancel(c *gin.Context) {
	userID := CurrentUserID(c)
	uid := c.Param("uid")

	var req dto.PaymentCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	payment, outcome, err := h.facade.CancelPayment(c.Request.Context(), uid, userID, req.Reason)
	if err != nil {
		h.reconcileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReconcileResponse{Payment: toPaymentResponse(*payment), Outcome: string(outcome)})
}

// Webhook handles POST /api/payments/webhook. The callback body only names
// the merchant uid; status and amount are always re-read from the gateway.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.MerchantUID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	payment, outcome, err := h.facade.ReconcilePayment(c.Request.Context(), req.MerchantUID)
	if err != nil {
		h.reconcileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReconcileResponse{Payment: toPaymentResponse(*payment), Outcome: string(outcome)})
}

func (h *PaymentHandler) reconcileError(c *gin.Context, err error) {
	var tooMany portone.TooManyRequestsError
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.As(err, &tooMany):
		c.Header("Retry-After", strconv.Itoa(int(tooMany.RetryAfter/time.Second)))
		c.Status(http.StatusTooManyRequests)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
