package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eggmart/internal/checkout"
)

// checkoutHandler implements HTTP handlers for payment recording and the
// shop's UPI settings.
type checkoutHandler struct {
	checkout *checkout.Service
	logger   *zap.Logger
}

func newCheckoutHandler(svc *checkout.Service, logger *zap.Logger) *checkoutHandler {
	return &checkoutHandler{
		checkout: svc,
		logger:   logger,
	}
}

type paymentRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// handleBeginCheckout handles POST /checkout. It returns the bill preview
// with the UPI payment URL; nothing is recorded yet.
func (h *checkoutHandler) handleBeginCheckout(c *gin.Context) {
	var req paymentRequest
	_ = c.ShouldBindJSON(&req) // empty body means default payment method

	bill, err := h.checkout.Begin(c.Request.Context(), req.PaymentMethod)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

// handleConfirm handles POST /checkout/confirm.
func (h *checkoutHandler) handleConfirm(c *gin.Context) {
	var req paymentRequest
	_ = c.ShouldBindJSON(&req)

	record, err := h.checkout.Confirm(c.Request.Context(), req.PaymentMethod)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// handleDecline handles POST /checkout/decline.
func (h *checkoutHandler) handleDecline(c *gin.Context) {
	var req paymentRequest
	_ = c.ShouldBindJSON(&req)

	record, err := h.checkout.Decline(c.Request.Context(), req.PaymentMethod)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// handleGetUPI handles GET /settings/upi.
func (h *checkoutHandler) handleGetUPI(c *gin.Context) {
	id, err := h.checkout.UPIID(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to read UPI ID", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"upiId": id})
}

// handleSetUPI handles PUT /settings/upi.
func (h *checkoutHandler) handleSetUPI(c *gin.Context) {
	var req struct {
		UPIID string `json:"upiId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UPIID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if err := h.checkout.SetUPIID(c.Request.Context(), req.UPIID); err != nil {
		h.logger.Error("failed to store UPI ID", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"upiId": req.UPIID})
}

func (h *checkoutHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, checkout.ErrEmptyCart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		return
	}
	h.logger.Error("checkout failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
