package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minseo-cho/gomall/internal/domain/model"
	"github.com/minseo-cho/gomall/internal/server/http/dto"
	"github.com/minseo-cho/gomall/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func toPaymentResponse(p model.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		UID:           p.UID,
		OrderID:       p.OrderID,
		Name:          p.Name,
		DesiredAmount: p.DesiredAmount,
		BuyerName:     p.BuyerName,
		BuyerEmail:    p.BuyerEmail,
		PayMethod:     p.PayMethod,
		Status:        string(p.Status),
		PaidOK:        p.PaidOK,
		CreatedAt:     p.CreatedAt,
	}
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:          o.ID,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
	}
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Status:      string(p.Status),
		PhotoURL:    p.PhotoURL,
	}
}
