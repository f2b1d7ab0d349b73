package report

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"eggmart/internal/sale"
	"eggmart/internal/storage"
)

// Report is everything the presentation layer needs for one period view:
// the resolved window, aggregates for it and the preceding window of equal
// length, their comparison, and the matching bills.
type Report struct {
	PeriodType    PeriodType    `json:"periodType"`
	Range         Range         `json:"range"`
	PreviousRange Range         `json:"previousRange"`
	Stats         Stats         `json:"stats"`
	Previous      Stats         `json:"previous"`
	Comparison    Comparison    `json:"comparison"`
	Bills         []sale.Record `json:"bills"`
}

// Export is a serialized CSV download.
type Export struct {
	Filename string
	CSV      string
}

// Service builds reports from the sale records in the store. Reports are
// recomputed from scratch on every call; nothing is cached.
type Service struct {
	store  storage.Store
	logger *zap.Logger
}

// NewService creates a new report Service.
func NewService(store storage.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Build resolves the query into a range and aggregates the matching sales
// against the previous period. Zero matching records is not an error; the
// result carries well-formed empty stats.
func (s *Service) Build(ctx context.Context, q Query) (*Report, error) {
	return s.build(ctx, q, time.Now())
}

func (s *Service) build(ctx context.Context, q Query, now time.Time) (*Report, error) {
	records, err := s.records(ctx)
	if err != nil {
		return nil, err
	}

	pt, rng := q.Resolve(now)
	prev := PreviousRange(rng)

	current := filterRange(records, rng)
	previous := filterRange(records, prev)

	stats := Aggregate(current)
	prevStats := Aggregate(previous)

	s.logger.Info("sales report built",
		zap.String("period", string(pt)),
		zap.Time("start", rng.Start),
		zap.Time("end", rng.End),
		zap.Int("transactions", stats.TotalTransactions),
	)

	return &Report{
		PeriodType:    pt,
		Range:         rng,
		PreviousRange: prev,
		Stats:         stats,
		Previous:      prevStats,
		Comparison:    Compare(stats, prevStats),
		Bills:         current,
	}, nil
}

// BuildCSV exports the sales matching the query as CSV. Returns ErrNoData
// when the period holds no sales.
func (s *Service) BuildCSV(ctx context.Context, q Query) (*Export, error) {
	records, err := s.records(ctx)
	if err != nil {
		return nil, err
	}

	pt, rng := q.Resolve(time.Now())
	matched := filterRange(records, rng)

	csv, err := SerializeCSV(ExportRows(matched))
	if err != nil {
		return nil, err
	}
	return &Export{
		Filename: Filename(pt, rng.Start),
		CSV:      csv,
	}, nil
}

// SalesForItem returns the bills inside the query's range that contain a
// line item with the given name, for the per-item bill view.
func (s *Service) SalesForItem(ctx context.Context, q Query, itemName string) ([]sale.Record, error) {
	records, err := s.records(ctx)
	if err != nil {
		return nil, err
	}

	_, rng := q.Resolve(time.Now())
	matched := []sale.Record{}
	for _, r := range filterRange(records, rng) {
		for _, it := range r.Items {
			if it.Name == itemName {
				matched = append(matched, r)
				break
			}
		}
	}
	return matched, nil
}

// filterRange keeps the records whose date falls inside the range, bounds
// inclusive. Records with unparseable dates are dropped.
func filterRange(records []sale.Record, rng Range) []sale.Record {
	matched := []sale.Record{}
	for _, r := range records {
		t, err := r.Time()
		if err != nil {
			continue
		}
		if rng.Contains(t) {
			matched = append(matched, r)
		}
	}
	return matched
}

func (s *Service) records(ctx context.Context) ([]sale.Record, error) {
	records := []sale.Record{}
	if _, err := s.store.Get(ctx, storage.KeySales, &records); err != nil {
		return nil, fmt.Errorf("failed to read sales: %w", err)
	}
	return records, nil
}
