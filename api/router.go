package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eggmart/internal/cart"
	"eggmart/internal/catalog"
	"eggmart/internal/checkout"
	"eggmart/internal/notify"
	"eggmart/internal/report"
	"eggmart/internal/storage"
)

// InitRoutes wires every endpoint on the given Gin engine. It builds the
// services on top of the shared record store, then binds each HTTP method
// and path to the appropriate handler function.
func InitRoutes(e *gin.Engine, store storage.Store, notifier *notify.Notifier, defaultUPIID string, logger *zap.Logger) {
	catalogService := catalog.NewService(store, logger)
	cartService := cart.NewService(store, catalogService, logger)
	checkoutService := checkout.NewService(store, catalogService, cartService, defaultUPIID, logger)
	reportService := report.NewService(store, logger)

	catalogHandler := newCatalogHandler(catalogService, logger)
	cartHandler := newCartHandler(cartService, logger)
	checkoutHandler := newCheckoutHandler(checkoutService, logger)
	reportHandler := newReportHandler(reportService, notifier, logger)

	e.GET("/menu", catalogHandler.handleListMenu)
	e.POST("/menu", catalogHandler.handleAddMenuItem)
	e.PUT("/menu/:id", catalogHandler.handleUpdateMenuItem)
	e.PATCH("/menu/:id/stock", catalogHandler.handleUpdateStock)
	e.PATCH("/menu/:id/price", catalogHandler.handleUpdatePrice)
	e.DELETE("/menu/:id", catalogHandler.handleDeleteMenuItem)

	e.GET("/cart", cartHandler.handleGetCart)
	e.POST("/cart/items", cartHandler.handleAddToCart)
	e.PATCH("/cart/items/:id", cartHandler.handleChangeQuantity)
	e.DELETE("/cart/items/:id", cartHandler.handleRemoveFromCart)
	e.DELETE("/cart", cartHandler.handleClearCart)

	e.POST("/checkout", checkoutHandler.handleBeginCheckout)
	e.POST("/checkout/confirm", checkoutHandler.handleConfirm)
	e.POST("/checkout/decline", checkoutHandler.handleDecline)

	e.GET("/settings/upi", checkoutHandler.handleGetUPI)
	e.PUT("/settings/upi", checkoutHandler.handleSetUPI)

	e.GET("/reports/sales", reportHandler.handleSalesReport)
	e.GET("/reports/sales/export", reportHandler.handleExport)
	e.GET("/reports/sales/items/:name", reportHandler.handleItemSales)
	e.POST("/reports/sales/notify", reportHandler.handleNotify)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}
