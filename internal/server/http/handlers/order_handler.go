package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/minseo-cho/gomall/internal/domain/errors"
	"github.com/minseo-cho/gomall/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	orders   OrderFacade
	payments PaymentFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(orders OrderFacade, payments PaymentFacade) *OrderHandler {
	return &OrderHandler{orders: orders, payments: payments}
}

// Place handles POST /api/orders. The order snapshots the current cart and
// empties it.
func (h *OrderHandler) Place(c *gin.Context) {
	userID := CurrentUserID(c)

	order, err := h.orders.PlaceOrder(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyCart):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	orders, err := h.orders.Orders(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id with lines and payment attempts.
func (h *OrderHandler) Get(c *gin.Context) {
	userID := CurrentUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.orders.Order(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	lines, err := h.orders.OrderLines(c.Request.Context(), order.ID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	payments, err := h.payments.OrderPayments(c.Request.Context(), order.ID, userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := dto.OrderDetailResponse{OrderResponse: toOrderResponse(*order)}
	for _, line := range lines {
		response.Lines = append(response.Lines, dto.OrderLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Amount:    line.Amount(),
		})
	}
	for _, p := range payments {
		response.Payments = append(response.Payments, toPaymentResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// Deliver handles POST /api/orders/:id/deliver.
func (h *OrderHandler) Deliver(c *gin.Context) {
	userID := CurrentUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.orders.DeliverOrder(c.Request.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusOK)
}
