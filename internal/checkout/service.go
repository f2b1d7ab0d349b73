package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"eggmart/internal/cart"
	"eggmart/internal/catalog"
	"eggmart/internal/sale"
	"eggmart/internal/storage"
)

// ErrEmptyCart is returned when checking out with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// Bill is the checkout preview handed to the payment surface: the would-be
// sale record plus the UPI payment URL when paying by UPI.
type Bill struct {
	sale.Record
	UPIURL string `json:"upiUrl,omitempty"`
}

// Service turns the cart into sale records. There is no server-side
// pending-bill state: the record is built from the cart again at
// confirmation time, so nothing hidden couples Begin to Confirm.
type Service struct {
	store   storage.Store
	catalog *catalog.Service
	cart    *cart.Service
	logger  *zap.Logger

	defaultUPIID string
}

// NewService creates a new checkout Service. defaultUPIID is used until
// the owner stores their own.
func NewService(store storage.Store, cat *catalog.Service, crt *cart.Service, defaultUPIID string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:        store,
		catalog:      cat,
		cart:         crt,
		logger:       logger,
		defaultUPIID: defaultUPIID,
	}
}

// Begin builds a bill preview for the current cart without recording
// anything. For UPI payments the bill carries the payment URL to encode as
// a QR code.
func (s *Service) Begin(ctx context.Context, method string) (*Bill, error) {
	record, err := s.buildRecord(ctx, method)
	if err != nil {
		return nil, err
	}
	bill := &Bill{Record: *record}
	if record.PaymentMethod == sale.PaymentUPI {
		upiID, err := s.UPIID(ctx)
		if err != nil {
			return nil, err
		}
		bill.UPIURL = UPIURL(upiID, record.Total)
	}
	return bill, nil
}

// Confirm records the current cart as a paid sale, deducts stock and
// clears the cart.
func (s *Service) Confirm(ctx context.Context, method string) (*sale.Record, error) {
	record, err := s.buildRecord(ctx, method)
	if err != nil {
		return nil, err
	}
	record.Status = sale.StatusPaid

	if err := s.append(ctx, record); err != nil {
		return nil, err
	}
	if err := s.catalog.DecrementStock(ctx, record.Items); err != nil {
		// The sale is already recorded; stock drift is preferable to a
		// missing sale.
		s.logger.Error("stock update failed after sale", zap.String("sale_id", record.ID), zap.Error(err))
	}
	if err := s.cart.Clear(ctx); err != nil {
		s.logger.Error("failed to clear cart after sale", zap.String("sale_id", record.ID), zap.Error(err))
	}

	s.logger.Info("sale recorded",
		zap.String("sale_id", record.ID),
		zap.Float64("total", record.Total),
		zap.String("payment_method", record.PaymentMethod),
	)
	return record, nil
}

// Decline records the current cart as a declined sale and clears the cart.
// Stock is untouched.
func (s *Service) Decline(ctx context.Context, method string) (*sale.Record, error) {
	record, err := s.buildRecord(ctx, method)
	if err != nil {
		return nil, err
	}
	record.Status = sale.StatusDeclined

	if err := s.append(ctx, record); err != nil {
		return nil, err
	}
	if err := s.cart.Clear(ctx); err != nil {
		s.logger.Error("failed to clear cart after decline", zap.String("sale_id", record.ID), zap.Error(err))
	}

	s.logger.Info("sale declined", zap.String("sale_id", record.ID), zap.Float64("total", record.Total))
	return record, nil
}

// UPIID returns the configured UPI ID, falling back to the default.
func (s *Service) UPIID(ctx context.Context) (string, error) {
	id := ""
	ok, err := s.store.Get(ctx, storage.KeyUPIID, &id)
	if err != nil {
		return "", fmt.Errorf("failed to read UPI ID: %w", err)
	}
	if !ok || id == "" {
		return s.defaultUPIID, nil
	}
	return id, nil
}

// SetUPIID stores the owner's UPI ID.
func (s *Service) SetUPIID(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("empty UPI ID")
	}
	return s.store.Put(ctx, storage.KeyUPIID, id)
}

func (s *Service) buildRecord(ctx context.Context, method string) (*sale.Record, error) {
	lines, totals, err := s.cart.Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if method == "" {
		method = sale.PaymentUPI
	}
	return &sale.Record{
		ID:            uuid.NewString(),
		Date:          time.Now().Format(sale.DateLayout),
		Items:         lines,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: method,
	}, nil
}

func (s *Service) append(ctx context.Context, record *sale.Record) error {
	records := []sale.Record{}
	if _, err := s.store.Get(ctx, storage.KeySales, &records); err != nil {
		return fmt.Errorf("failed to read sales: %w", err)
	}
	records = append(records, *record)
	if err := s.store.Put(ctx, storage.KeySales, records); err != nil {
		s.logger.Error("failed to save sale", zap.String("sale_id", record.ID), zap.Error(err))
		return fmt.Errorf("failed to save sale: %w", err)
	}
	return nil
}
