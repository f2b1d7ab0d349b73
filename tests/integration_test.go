package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eggmart/api"
	"eggmart/internal/cart"
	"eggmart/internal/catalog"
	"eggmart/internal/report"
	"eggmart/internal/sale"
	"eggmart/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func initRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	store := storage.NewMemoryStore()
	logger := zaptest.NewLogger(t)

	err := catalog.NewService(store, logger).Seed(context.Background())
	assert.NoError(t, err, "Expected default menu seed to succeed")

	api.InitRoutes(router, store, nil, "shop@upi", logger)
	return router
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestPOSHappyPath_FullFlow walks the whole counter flow: browse the menu,
// fill the cart, take a cash payment and read it back from the report.
func TestPOSHappyPath_FullFlow(t *testing.T) {
	router := initRouter(t)

	var eggs catalog.Item

	t.Run("GET_Menu", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/menu", nil)
		assert.Equal(t, http.StatusOK, w.Code, "Expected HTTP 200 OK listing the menu")

		var resp struct {
			Items []catalog.Item `json:"items"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Items, 7, "Expected the 7 seeded default items")

		for _, it := range resp.Items {
			if it.Name == "White Eggs" {
				eggs = it
			}
		}
		assert.NotEmpty(t, eggs.ID, "Expected White Eggs in the default menu")
		assert.Equal(t, 100, eggs.Stock, "Expected seeded stock for White Eggs")
	})

	t.Run("POST_AddToCart", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/cart/items", map[string]string{"itemId": eggs.ID})
		assert.Equal(t, http.StatusOK, w.Code, "Expected HTTP 200 OK adding to cart")

		// Bump quantity to 2.
		w = doJSON(router, http.MethodPatch, "/cart/items/"+eggs.ID, map[string]int{"delta": 1})
		assert.Equal(t, http.StatusOK, w.Code, "Expected HTTP 200 OK changing quantity")

		var resp struct {
			Items  []sale.LineItem `json:"items"`
			Totals cart.Totals     `json:"totals"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Items, 1, "Expected a single cart line")
		assert.Equal(t, 2, resp.Items[0].Quantity, "Expected quantity 2")
		assert.Equal(t, 100.0, resp.Totals.Total, "Expected running total of 100")
	})

	t.Run("POST_BeginCheckout", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/checkout", map[string]string{"paymentMethod": "UPI"})
		assert.Equal(t, http.StatusOK, w.Code, "Expected HTTP 200 OK for checkout preview")

		var bill struct {
			Total  float64 `json:"total"`
			UPIURL string  `json:"upiUrl"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &bill))
		assert.Equal(t, 100.0, bill.Total, "Expected bill total 100")
		assert.Contains(t, bill.UPIURL, "upi://pay?pa=shop%40upi", "Expected UPI payment URL in preview")
	})

	t.Run("POST_ConfirmPayment", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/checkout/confirm", map[string]string{"paymentMethod": "Cash"})
		assert.Equal(t, http.StatusCreated, w.Code, "Expected HTTP 201 Created recording the sale")

		var record sale.Record
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
		assert.NotEmpty(t, record.ID, "Expected sale ID to be generated")
		assert.Equal(t, sale.StatusPaid, record.Status, "Expected status paid")
		assert.Equal(t, time.Now().Format(sale.DateLayout), record.Date, "Expected today's date on the record")

		// Stock went down, cart is empty again.
		w = doJSON(router, http.MethodGet, "/menu", nil)
		var menu struct {
			Items []catalog.Item `json:"items"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
		for _, it := range menu.Items {
			if it.ID == eggs.ID {
				assert.Equal(t, 98, it.Stock, "Expected stock decremented by 2")
			}
		}

		w = doJSON(router, http.MethodGet, "/cart", nil)
		var cartResp struct {
			Items []sale.LineItem `json:"items"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &cartResp))
		assert.Empty(t, cartResp.Items, "Expected cart cleared after payment")
	})

	t.Run("GET_SalesReport", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/reports/sales?period=daily", nil)
		assert.Equal(t, http.StatusOK, w.Code, "Expected HTTP 200 OK for the daily report")

		var rep report.Report
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
		assert.Equal(t, report.Daily, rep.PeriodType)
		assert.Equal(t, 1, rep.Stats.TotalTransactions, "Expected one transaction today")
		assert.Equal(t, 100.0, rep.Stats.TotalSales, "Expected total sales of 100")
		assert.Equal(t, 100.0, rep.Stats.AverageOrderValue, "Expected AOV of 100")
		assert.Equal(t, 2, rep.Stats.TotalItemsSold, "Expected 2 items sold")
		assert.Len(t, rep.Bills, 1, "Expected the sale in the bill history")

		cash, ok := rep.Stats.PaymentBreakdown["Cash"]
		assert.True(t, ok, "Expected a Cash payment bucket")
		assert.Equal(t, 1, cash.Count)
	})

	t.Run("GET_ExportCSV", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/reports/sales/export?period=daily", nil)
		assert.Equal(t, http.StatusOK, w.Code, "Expected HTTP 200 OK for the CSV export")
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))

		today := time.Now().Format("2006-01-02")
		assert.Contains(t, w.Header().Get("Content-Disposition"),
			fmt.Sprintf("sales-report-daily-%s.csv", today), "Expected spec filename pattern")

		lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
		assert.Equal(t, "Date,Item Name,Quantity,Unit Price,Total Price,Sale Total,Payment Method", lines[0])
		assert.Len(t, lines, 2, "Expected header plus one row for the single line item")
		assert.Contains(t, lines[1], `"White Eggs","2","50","100","100","Cash"`)
	})
}

// TestDeclinedSale verifies declined checkouts keep stock and still show in
// the report.
func TestDeclinedSale(t *testing.T) {
	router := initRouter(t)

	w := doJSON(router, http.MethodGet, "/menu", nil)
	var menu struct {
		Items []catalog.Item `json:"items"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
	item := menu.Items[0]

	w = doJSON(router, http.MethodPost, "/cart/items", map[string]string{"itemId": item.ID})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/checkout/decline", map[string]string{"paymentMethod": "UPI"})
	assert.Equal(t, http.StatusCreated, w.Code, "Expected HTTP 201 recording the declined sale")

	var record sale.Record
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, sale.StatusDeclined, record.Status)

	// Stock untouched.
	w = doJSON(router, http.MethodGet, "/menu", nil)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
	assert.Equal(t, item.Stock, menu.Items[0].Stock, "Expected declined sale to leave stock alone")

	// The aggregator counts declined records too.
	w = doJSON(router, http.MethodGet, "/reports/sales?period=daily", nil)
	var rep report.Report
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, 1, rep.Stats.TotalTransactions)
}

// TestCheckoutEmptyCart verifies the empty-cart guard on every checkout
// endpoint.
func TestCheckoutEmptyCart(t *testing.T) {
	router := initRouter(t)

	for _, path := range []string{"/checkout", "/checkout/confirm", "/checkout/decline"} {
		w := doJSON(router, http.MethodPost, path, map[string]string{"paymentMethod": "Cash"})
		assert.Equal(t, http.StatusBadRequest, w.Code, "Expected HTTP 400 for %s with empty cart", path)
	}
}

// TestExportNoData verifies the soft failure when a period has no sales.
func TestExportNoData(t *testing.T) {
	router := initRouter(t)

	w := doJSON(router, http.MethodGet, "/reports/sales/export?period=custom&start=2001-01-01&end=2001-01-07", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "Expected HTTP 404 when there is nothing to export")
	assert.Contains(t, w.Body.String(), "no sales data to export")
}

// TestReportDefensiveQuery verifies malformed selector inputs fall back to
// defaults instead of failing.
func TestReportDefensiveQuery(t *testing.T) {
	router := initRouter(t)

	for _, path := range []string{
		"/reports/sales?period=hourly",
		"/reports/sales?period=daily&date=garbage",
		"/reports/sales?period=custom&start=2024-05-10&end=2024-05-01",
	} {
		w := doJSON(router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, "Expected HTTP 200 for %s", path)
	}
}

// TestUPISettings verifies the owner can store their UPI ID.
func TestUPISettings(t *testing.T) {
	router := initRouter(t)

	w := doJSON(router, http.MethodGet, "/settings/upi", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shop@upi", "Expected the configured default")

	w = doJSON(router, http.MethodPut, "/settings/upi", map[string]string{"upiId": "owner@bank"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/settings/upi", nil)
	assert.Contains(t, w.Body.String(), "owner@bank", "Expected the stored UPI ID")
}
