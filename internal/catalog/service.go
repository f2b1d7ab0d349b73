package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"eggmart/internal/sale"
	"eggmart/internal/storage"
)

// ErrNotFound is returned when no menu item has the given ID.
var ErrNotFound = errors.New("menu item not found")

// ErrInvalidItem is returned when an item fails validation.
var ErrInvalidItem = errors.New("invalid menu item")

// Service provides menu management operations on a record store.
type Service struct {
	store  storage.Store
	logger *zap.Logger
}

// NewService creates a new catalog Service.
func NewService(store storage.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
	}
}

// List returns all menu items in stored order.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	items := []Item{}
	if _, err := s.store.Get(ctx, storage.KeyMenuItems, &items); err != nil {
		return nil, fmt.Errorf("failed to read menu: %w", err)
	}
	return items, nil
}

// Get returns one menu item by ID.
func (s *Service) Get(ctx context.Context, id string) (*Item, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, ErrNotFound
}

// Add validates and appends a new menu item.
func (s *Service) Add(ctx context.Context, item Item) (*Item, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidItem)
	}
	if item.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be greater than zero", ErrInvalidItem)
	}
	if item.Stock < 0 {
		return nil, fmt.Errorf("%w: negative stock", ErrInvalidItem)
	}
	if item.Category == "" {
		item.Category = "other"
	}

	item.ID = uuid.NewString()
	item.StockDate = today()

	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	items = append(items, item)
	if err := s.store.Put(ctx, storage.KeyMenuItems, items); err != nil {
		s.logger.Error("failed to save menu item", zap.String("item_id", item.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to save menu item: %w", err)
	}

	s.logger.Info("menu item added", zap.String("item_id", item.ID), zap.String("name", item.Name))
	return &item, nil
}

// Update replaces the mutable fields of an existing item. Zero-valued
// fields in upd are left untouched.
func (s *Service) Update(ctx context.Context, id string, upd Item) (*Item, error) {
	return s.mutate(ctx, id, func(it *Item) error {
		if name := strings.TrimSpace(upd.Name); name != "" {
			it.Name = name
		}
		if upd.Price != 0 {
			if upd.Price < 0 {
				return fmt.Errorf("%w: negative price", ErrInvalidItem)
			}
			it.Price = upd.Price
		}
		if upd.Category != "" {
			it.Category = upd.Category
		}
		if upd.Image != "" {
			it.Image = upd.Image
		}
		return nil
	})
}

// UpdatePrice sets a new unit price for an item.
func (s *Service) UpdatePrice(ctx context.Context, id string, price float64) (*Item, error) {
	if price <= 0 {
		return nil, fmt.Errorf("%w: price must be greater than zero", ErrInvalidItem)
	}
	return s.mutate(ctx, id, func(it *Item) error {
		it.Price = price
		return nil
	})
}

// UpdateStock sets the absolute stock count for an item and stamps the
// stock date.
func (s *Service) UpdateStock(ctx context.Context, id string, stock int) (*Item, error) {
	if stock < 0 {
		return nil, fmt.Errorf("%w: negative stock", ErrInvalidItem)
	}
	return s.mutate(ctx, id, func(it *Item) error {
		it.Stock = stock
		it.StockDate = today()
		return nil
	})
}

// Delete removes an item from the menu. Past sales referencing it are
// unaffected; they carry their own price/name snapshots.
func (s *Service) Delete(ctx context.Context, id string) error {
	items, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	found := false
	for _, it := range items {
		if it.ID == id {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return ErrNotFound
	}
	if err := s.store.Put(ctx, storage.KeyMenuItems, kept); err != nil {
		return fmt.Errorf("failed to save menu: %w", err)
	}
	s.logger.Info("menu item deleted", zap.String("item_id", id))
	return nil
}

// DecrementStock deducts sold quantities from stock, flooring at zero.
// Lines whose item no longer exists are skipped.
func (s *Service) DecrementStock(ctx context.Context, lines []sale.LineItem) error {
	items, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, line := range lines {
		for i := range items {
			if items[i].ID != line.ItemID {
				continue
			}
			items[i].Stock -= line.Quantity
			if items[i].Stock < 0 {
				items[i].Stock = 0
			}
			items[i].StockDate = today()
			break
		}
	}
	if err := s.store.Put(ctx, storage.KeyMenuItems, items); err != nil {
		s.logger.Error("stock update failed", zap.Error(err))
		return fmt.Errorf("failed to save stock: %w", err)
	}
	return nil
}

func (s *Service) mutate(ctx context.Context, id string, fn func(*Item) error) (*Item, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		if err := fn(&items[i]); err != nil {
			return nil, err
		}
		if err := s.store.Put(ctx, storage.KeyMenuItems, items); err != nil {
			s.logger.Error("failed to update menu item", zap.String("item_id", id), zap.Error(err))
			return nil, fmt.Errorf("failed to update menu item: %w", err)
		}
		return &items[i], nil
	}
	return nil, ErrNotFound
}
