package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"eggmart/internal/cart"
	"eggmart/internal/catalog"
	"eggmart/internal/sale"
	"eggmart/internal/storage"
)

func newTestCheckout(t *testing.T) (*Service, *catalog.Service, *cart.Service, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	logger := zaptest.NewLogger(t)
	cat := catalog.NewService(store, logger)
	crt := cart.NewService(store, cat, logger)
	svc := NewService(store, cat, crt, "shop@upi", logger)
	return svc, cat, crt, store
}

func storedSales(t *testing.T, store storage.Store) []sale.Record {
	t.Helper()
	records := []sale.Record{}
	if _, err := store.Get(context.Background(), storage.KeySales, &records); err != nil {
		t.Fatalf("failed to read sales: %v", err)
	}
	return records
}

func TestConfirmRecordsSale(t *testing.T) {
	svc, cat, crt, store := newTestCheckout(t)
	ctx := context.Background()

	item, _ := cat.Add(ctx, catalog.Item{Name: "Eggs", Price: 50, Stock: 10})
	crt.Add(ctx, item.ID)
	crt.ChangeQuantity(ctx, item.ID, 1)

	record, err := svc.Confirm(ctx, sale.PaymentCash)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	if record.Status != sale.StatusPaid {
		t.Errorf("expected status paid, got %q", record.Status)
	}
	if record.Total != 100 || record.Subtotal != 100 || record.Tax != 0 {
		t.Errorf("unexpected totals: %+v", record)
	}
	if record.PaymentMethod != sale.PaymentCash {
		t.Errorf("expected cash payment, got %q", record.PaymentMethod)
	}
	if record.Date != time.Now().Format(sale.DateLayout) {
		t.Errorf("expected today's date, got %q", record.Date)
	}

	// Appended to the sales log.
	records := storedSales(t, store)
	if len(records) != 1 || records[0].ID != record.ID {
		t.Fatalf("expected one stored sale, got %+v", records)
	}

	// Stock deducted, cart cleared.
	got, _ := cat.Get(ctx, item.ID)
	if got.Stock != 8 {
		t.Errorf("expected stock 8 after selling 2, got %d", got.Stock)
	}
	lines, _, _ := crt.Get(ctx)
	if len(lines) != 0 {
		t.Errorf("expected cleared cart, got %+v", lines)
	}
}

func TestDeclineKeepsStock(t *testing.T) {
	svc, cat, crt, store := newTestCheckout(t)
	ctx := context.Background()

	item, _ := cat.Add(ctx, catalog.Item{Name: "Milk", Price: 30, Stock: 5})
	crt.Add(ctx, item.ID)

	record, err := svc.Decline(ctx, "")
	if err != nil {
		t.Fatalf("decline failed: %v", err)
	}
	if record.Status != sale.StatusDeclined {
		t.Errorf("expected status declined, got %q", record.Status)
	}
	if record.PaymentMethod != sale.PaymentUPI {
		t.Errorf("expected default UPI payment method, got %q", record.PaymentMethod)
	}

	// Declined checkouts are still recorded, but stock is untouched.
	if records := storedSales(t, store); len(records) != 1 {
		t.Fatalf("expected declined sale recorded, got %d", len(records))
	}
	got, _ := cat.Get(ctx, item.ID)
	if got.Stock != 5 {
		t.Errorf("expected untouched stock, got %d", got.Stock)
	}
	lines, _, _ := crt.Get(ctx)
	if len(lines) != 0 {
		t.Errorf("expected cleared cart after decline, got %+v", lines)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _, _, _ := newTestCheckout(t)
	ctx := context.Background()

	if _, err := svc.Confirm(ctx, sale.PaymentUPI); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}
	if _, err := svc.Begin(ctx, sale.PaymentUPI); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart from begin, got %v", err)
	}
}

func TestBeginCarriesUPIURL(t *testing.T) {
	svc, cat, crt, _ := newTestCheckout(t)
	ctx := context.Background()

	item, _ := cat.Add(ctx, catalog.Item{Name: "Bread", Price: 25, Stock: 4})
	crt.Add(ctx, item.ID)

	bill, err := svc.Begin(ctx, sale.PaymentUPI)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if bill.UPIURL != "upi://pay?pa=shop%40upi&am=25&cu=INR" {
		t.Errorf("unexpected UPI URL: %s", bill.UPIURL)
	}
	if bill.Status != "" {
		t.Errorf("expected preview without status, got %q", bill.Status)
	}

	// Cash previews carry no payment URL.
	bill, err = svc.Begin(ctx, sale.PaymentCash)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if bill.UPIURL != "" {
		t.Errorf("expected no UPI URL for cash, got %s", bill.UPIURL)
	}
}

func TestUPIIDSetting(t *testing.T) {
	svc, _, _, _ := newTestCheckout(t)
	ctx := context.Background()

	id, err := svc.UPIID(ctx)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if id != "shop@upi" {
		t.Errorf("expected default UPI ID, got %q", id)
	}

	if err := svc.SetUPIID(ctx, "owner@bank"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	id, _ = svc.UPIID(ctx)
	if id != "owner@bank" {
		t.Errorf("expected stored UPI ID, got %q", id)
	}

	if err := svc.SetUPIID(ctx, ""); err == nil {
		t.Error("expected error for empty UPI ID")
	}
}

func TestUPIURLEscaping(t *testing.T) {
	got := UPIURL("a b&c@bank", 99.5)
	if got != "upi://pay?pa=a+b%26c%40bank&am=99.5&cu=INR" {
		t.Errorf("unexpected URL: %s", got)
	}
}
