package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"eggmart/internal/storage"
)

// Seed writes the default menu when no menu has ever been stored. Calling
// it again is a no-op, even after the owner deletes every item.
func (s *Service) Seed(ctx context.Context) error {
	var existing []Item
	ok, err := s.store.Get(ctx, storage.KeyMenuItems, &existing)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	defaults := []Item{
		{Name: "White Eggs", Price: 50, Stock: 100, Category: "eggs"},
		{Name: "Country Eggs", Price: 60, Stock: 80, Category: "eggs"},
		{Name: "Quail Eggs", Price: 80, Stock: 50, Category: "eggs"},
		{Name: "Milk", Price: 30, Stock: 200, Category: "dairy"},
		{Name: "Refined Oil", Price: 120, Stock: 60, Category: "grocery"},
		{Name: "Bread", Price: 25, Stock: 120, Category: "bakery"},
		{Name: "Biscuit", Price: 20, Stock: 160, Category: "bakery"},
	}
	now := today()
	for i := range defaults {
		defaults[i].ID = uuid.NewString()
		defaults[i].StockDate = now
	}

	if err := s.store.Put(ctx, storage.KeyMenuItems, defaults); err != nil {
		return err
	}
	s.logger.Info("seeded default menu", zap.Int("items", len(defaults)))
	return nil
}
