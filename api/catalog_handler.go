package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eggmart/internal/catalog"
)

// catalogHandler implements HTTP handlers for menu management.
type catalogHandler struct {
	catalog *catalog.Service
	logger  *zap.Logger
}

func newCatalogHandler(svc *catalog.Service, logger *zap.Logger) *catalogHandler {
	return &catalogHandler{
		catalog: svc,
		logger:  logger,
	}
}

// handleListMenu handles GET /menu.
func (h *catalogHandler) handleListMenu(c *gin.Context) {
	items, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list menu", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list menu"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// handleAddMenuItem handles POST /menu.
func (h *catalogHandler) handleAddMenuItem(c *gin.Context) {
	var req struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Stock    int     `json:"stock"`
		Category string  `json:"category"`
		Image    string  `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	item, err := h.catalog.Add(c.Request.Context(), catalog.Item{
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidItem) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to add menu item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add menu item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// handleUpdateMenuItem handles PUT /menu/:id.
func (h *catalogHandler) handleUpdateMenuItem(c *gin.Context) {
	var req catalog.Item
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	item, err := h.catalog.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// handleUpdateStock handles PATCH /menu/:id/stock.
func (h *catalogHandler) handleUpdateStock(c *gin.Context) {
	var req struct {
		Stock int `json:"stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	item, err := h.catalog.UpdateStock(c.Request.Context(), c.Param("id"), req.Stock)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// handleUpdatePrice handles PATCH /menu/:id/price.
func (h *catalogHandler) handleUpdatePrice(c *gin.Context) {
	var req struct {
		Price float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	item, err := h.catalog.UpdatePrice(c.Request.Context(), c.Param("id"), req.Price)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// handleDeleteMenuItem handles DELETE /menu/:id.
func (h *catalogHandler) handleDeleteMenuItem(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *catalogHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
	case errors.Is(err, catalog.ErrInvalidItem):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("catalog operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
