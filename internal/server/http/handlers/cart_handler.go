package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/minseo-cho/gomall/internal/domain/errors"
	"github.com/minseo-cho/gomall/internal/domain/model"
	"github.com/minseo-cho/gomall/internal/server/http/dto"
)

// CartHandler manages cart endpoints.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// List handles GET /api/cart.
func (h *CartHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	items, err := h.facade.CartItems(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toCartResponse(items))
}

// Add handles POST /api/cart.
func (h *CartHandler) Add(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	item, err := h.facade.AddToCart(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidQuantity):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.CartItemResponse{
		ProductID: item.ProductID,
		Name:      item.ProductName,
		Price:     item.ProductPrice,
		Quantity:  item.Quantity,
		Amount:    item.Amount(),
	})
}

// SetQuantity handles PUT /api/cart/:productID.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	userID := CurrentUserID(c)
	productID, ok := paramID(c, "productID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.SetCartQuantity(c.Request.Context(), userID, productID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidQuantity):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusOK)
}

// Remove handles DELETE /api/cart/:productID.
func (h *CartHandler) Remove(c *gin.Context) {
	userID := CurrentUserID(c)
	productID, ok := paramID(c, "productID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.RemoveFromCart(c.Request.Context(), userID, productID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

func toCartResponse(items []model.CartItem) dto.CartResponse {
	response := dto.CartResponse{Items: make([]dto.CartItemResponse, 0, len(items))}
	for _, item := range items {
		response.Items = append(response.Items, dto.CartItemResponse{
			ProductID: item.ProductID,
			Name:      item.ProductName,
			Price:     item.ProductPrice,
			Quantity:  item.Quantity,
			Amount:    item.Amount(),
		})
		response.Total += item.Amount()
	}
	return response
}
