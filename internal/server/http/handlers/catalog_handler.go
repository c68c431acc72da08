package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/minseo-cho/gomall/internal/domain/errors"
	"github.com/minseo-cho/gomall/internal/domain/model"
	"github.com/minseo-cho/gomall/internal/server/http/dto"
)

// CatalogHandler serves product and category endpoints.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /api/products.
func (h *CatalogHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	query := c.Query("q")

	products, err := h.facade.Products(c.Request.Context(), query, page)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/products/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// Categories handles GET /api/categories.
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.facade.Categories(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		response = append(response, dto.CategoryResponse{ID: cat.ID, Name: cat.Name})
	}
	c.JSON(http.StatusOK, response)
}

// SetStatus handles POST /api/admin/products/status.
func (h *CatalogHandler) SetStatus(c *gin.Context) {
	var req dto.ProductsStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	updated, err := h.facade.SetProductsStatus(c.Request.Context(), req.IDs, model.ProductStatus(req.Status))
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidStatus) {
			c.Status(http.StatusUnprocessableEntity)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.ProductsStatusResponse{Updated: updated})
}
