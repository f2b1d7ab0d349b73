package cart

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"eggmart/internal/catalog"
	"eggmart/internal/sale"
	"eggmart/internal/storage"
)

// ErrNotInCart is returned when changing or removing a line that is not in
// the cart.
var ErrNotInCart = errors.New("item not in cart")

// ErrOutOfStock is returned when adding an item with no available stock.
var ErrOutOfStock = errors.New("item is out of stock")

// Totals is the running bill for the current cart. Tax is reserved and
// always zero for now.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Service mutates the shopping cart. Cart lines snapshot the item's name
// and price at add time.
type Service struct {
	store   storage.Store
	catalog *catalog.Service
	logger  *zap.Logger
}

// NewService creates a new cart Service.
func NewService(store storage.Store, cat *catalog.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:   store,
		catalog: cat,
		logger:  logger,
	}
}

// Get returns the current cart lines and their totals.
func (s *Service) Get(ctx context.Context) ([]sale.LineItem, Totals, error) {
	lines, err := s.lines(ctx)
	if err != nil {
		return nil, Totals{}, err
	}
	return lines, ComputeTotals(lines), nil
}

// Add puts one unit of the given menu item into the cart, incrementing the
// existing line if there is one. Returns the affected line.
func (s *Service) Add(ctx context.Context, itemID string) (*sale.LineItem, error) {
	item, err := s.catalog.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.InStock() {
		return nil, ErrOutOfStock
	}

	lines, err := s.lines(ctx)
	if err != nil {
		return nil, err
	}

	var line *sale.LineItem
	for i := range lines {
		if lines[i].ItemID == itemID {
			line = &lines[i]
			break
		}
	}
	if line != nil {
		if line.Quantity+1 > item.Stock {
			return nil, ErrOutOfStock
		}
		line.Quantity++
	} else {
		lines = append(lines, sale.LineItem{
			ItemID:   item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: 1,
		})
		line = &lines[len(lines)-1]
	}

	if err := s.save(ctx, lines); err != nil {
		return nil, err
	}
	s.logger.Info("item added to cart", zap.String("item_id", itemID), zap.Int("quantity", line.Quantity))
	result := *line
	return &result, nil
}

// ChangeQuantity adjusts a cart line by delta. Quantities are clamped to
// the available stock; a line dropping to zero or below is removed.
func (s *Service) ChangeQuantity(ctx context.Context, itemID string, delta int) ([]sale.LineItem, error) {
	lines, err := s.lines(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range lines {
		if lines[i].ItemID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		if delta > 0 {
			if _, err := s.Add(ctx, itemID); err != nil {
				return nil, err
			}
			return s.lines(ctx)
		}
		return nil, ErrNotInCart
	}

	lines[idx].Quantity += delta

	if item, err := s.catalog.Get(ctx, itemID); err == nil && lines[idx].Quantity > item.Stock {
		lines[idx].Quantity = item.Stock
	}

	if lines[idx].Quantity <= 0 {
		lines = append(lines[:idx], lines[idx+1:]...)
	}

	if err := s.save(ctx, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Remove drops a line from the cart entirely.
func (s *Service) Remove(ctx context.Context, itemID string) error {
	lines, err := s.lines(ctx)
	if err != nil {
		return err
	}
	kept := lines[:0]
	found := false
	for _, l := range lines {
		if l.ItemID == itemID {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return ErrNotInCart
	}
	return s.save(ctx, kept)
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) error {
	return s.save(ctx, []sale.LineItem{})
}

// ComputeTotals sums the cart lines into a bill.
func ComputeTotals(lines []sale.LineItem) Totals {
	t := Totals{}
	for _, l := range lines {
		t.Subtotal += l.Price * float64(l.Quantity)
	}
	t.Total = t.Subtotal + t.Tax
	return t
}

func (s *Service) lines(ctx context.Context) ([]sale.LineItem, error) {
	lines := []sale.LineItem{}
	if _, err := s.store.Get(ctx, storage.KeyCart, &lines); err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	return lines, nil
}

func (s *Service) save(ctx context.Context, lines []sale.LineItem) error {
	if err := s.store.Put(ctx, storage.KeyCart, lines); err != nil {
		s.logger.Error("failed to save cart", zap.Error(err))
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
