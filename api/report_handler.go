package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eggmart/internal/notify"
	"eggmart/internal/report"
)

// reportHandler implements HTTP handlers for the sales report views.
type reportHandler struct {
	report   *report.Service
	notifier *notify.Notifier
	logger   *zap.Logger
}

func newReportHandler(svc *report.Service, notifier *notify.Notifier, logger *zap.Logger) *reportHandler {
	return &reportHandler{
		report:   svc,
		notifier: notifier,
		logger:   logger,
	}
}

// handleSalesReport handles GET /reports/sales. Malformed selector inputs
// never fail; they resolve to sane defaults.
func (h *reportHandler) handleSalesReport(c *gin.Context) {
	var q report.Query
	_ = c.ShouldBindQuery(&q)

	rep, err := h.report.Build(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("failed to build sales report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}
	c.JSON(http.StatusOK, rep)
}

// handleExport handles GET /reports/sales/export, streaming the CSV as an
// attachment.
func (h *reportHandler) handleExport(c *gin.Context) {
	var q report.Query
	_ = c.ShouldBindQuery(&q)

	export, err := h.report.BuildCSV(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, report.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no sales data to export"})
			return
		}
		h.logger.Error("failed to export sales report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export report"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	c.Data(http.StatusOK, "text/csv", []byte(export.CSV))
}

// handleItemSales handles GET /reports/sales/items/:name, listing the
// bills in the period that contain the item.
func (h *reportHandler) handleItemSales(c *gin.Context) {
	var q report.Query
	_ = c.ShouldBindQuery(&q)

	bills, err := h.report.SalesForItem(c.Request.Context(), q, c.Param("name"))
	if err != nil {
		h.logger.Error("failed to list item sales", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list item sales"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

// handleNotify handles POST /reports/sales/notify, pushing the period
// summary to the owner's Telegram chat.
func (h *reportHandler) handleNotify(c *gin.Context) {
	var q report.Query
	_ = c.ShouldBindQuery(&q)

	rep, err := h.report.Build(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("failed to build sales report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	if err := h.notifier.SendReport(rep); err != nil {
		if errors.Is(err, notify.ErrDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "notifier not configured"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to send notification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}
