package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eggmart/internal/cart"
	"eggmart/internal/catalog"
)

// cartHandler implements HTTP handlers for the shopping cart.
type cartHandler struct {
	cart   *cart.Service
	logger *zap.Logger
}

func newCartHandler(svc *cart.Service, logger *zap.Logger) *cartHandler {
	return &cartHandler{
		cart:   svc,
		logger: logger,
	}
}

// handleGetCart handles GET /cart.
func (h *cartHandler) handleGetCart(c *gin.Context) {
	lines, totals, err := h.cart.Get(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to read cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": lines, "totals": totals})
}

// handleAddToCart handles POST /cart/items.
func (h *cartHandler) handleAddToCart(c *gin.Context) {
	var req struct {
		ItemID string `json:"itemId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ItemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	line, err := h.cart.Add(c.Request.Context(), req.ItemID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

// handleChangeQuantity handles PATCH /cart/items/:id.
func (h *cartHandler) handleChangeQuantity(c *gin.Context) {
	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Delta == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	lines, err := h.cart.ChangeQuantity(c.Request.Context(), c.Param("id"), req.Delta)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": lines, "totals": cart.ComputeTotals(lines)})
}

// handleRemoveFromCart handles DELETE /cart/items/:id.
func (h *cartHandler) handleRemoveFromCart(c *gin.Context) {
	if err := h.cart.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleClearCart handles DELETE /cart.
func (h *cartHandler) handleClearCart(c *gin.Context) {
	if err := h.cart.Clear(c.Request.Context()); err != nil {
		h.logger.Error("failed to clear cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *cartHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
	case errors.Is(err, cart.ErrNotInCart):
		c.JSON(http.StatusNotFound, gin.H{"error": "item not in cart"})
	case errors.Is(err, cart.ErrOutOfStock):
		c.JSON(http.StatusConflict, gin.H{"error": "item is out of stock"})
	default:
		h.logger.Error("cart operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
