package report

import "eggmart/internal/sale"

// ItemStat is the rollup for one item name across a period.
type ItemStat struct {
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// BucketStat is the rollup for one calendar day.
type BucketStat struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// PaymentStat is the rollup for one payment method.
type PaymentStat struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// Stats is the aggregate view of a list of sale records. It is derived on
// demand and never persisted. The *Order slices record first-occurrence
// order of each map's keys, since Go maps iterate randomly and the
// presentation layer wants stable rows.
type Stats struct {
	TotalSales        float64                 `json:"totalSales"`
	TotalTransactions int                     `json:"totalTransactions"`
	AverageOrderValue float64                 `json:"averageOrderValue"`
	TotalItemsSold    int                     `json:"totalItemsSold"`
	ItemsSold         map[string]*ItemStat    `json:"itemsSold"`
	ItemOrder         []string                `json:"itemOrder"`
	DailyBreakdown    map[string]*BucketStat  `json:"dailyBreakdown"`
	BucketOrder       []string                `json:"bucketOrder"`
	PaymentBreakdown  map[string]*PaymentStat `json:"paymentBreakdown"`
	PaymentOrder      []string                `json:"paymentOrder"`
}

// Aggregate reduces sale records into summary statistics. It does no
// filtering of its own: the caller pre-filters by range, and records of
// every status are counted. An empty input yields zeroes and empty maps.
//
// Items roll up by display name, not item ID, so two catalog entries that
// share a name merge into one row. Kept for compatibility with stored data.
func Aggregate(sales []sale.Record) Stats {
	stats := Stats{
		TotalTransactions: len(sales),
		ItemsSold:         map[string]*ItemStat{},
		ItemOrder:         []string{},
		DailyBreakdown:    map[string]*BucketStat{},
		BucketOrder:       []string{},
		PaymentBreakdown:  map[string]*PaymentStat{},
		PaymentOrder:      []string{},
	}

	for _, s := range sales {
		stats.TotalSales += s.Total

		method := s.PaymentMethod
		if method == "" {
			method = "Unknown"
		}
		pay, ok := stats.PaymentBreakdown[method]
		if !ok {
			pay = &PaymentStat{}
			stats.PaymentBreakdown[method] = pay
			stats.PaymentOrder = append(stats.PaymentOrder, method)
		}
		pay.Total += s.Total
		pay.Count++

		for _, it := range s.Items {
			stats.TotalItemsSold += it.Quantity
			item, ok := stats.ItemsSold[it.Name]
			if !ok {
				item = &ItemStat{}
				stats.ItemsSold[it.Name] = item
				stats.ItemOrder = append(stats.ItemOrder, it.Name)
			}
			item.Quantity += it.Quantity
			item.Revenue += it.Price * float64(it.Quantity)
		}

		bucket, ok := stats.DailyBreakdown[s.Date]
		if !ok {
			bucket = &BucketStat{}
			stats.DailyBreakdown[s.Date] = bucket
			stats.BucketOrder = append(stats.BucketOrder, s.Date)
		}
		bucket.Count++
		bucket.Total += s.Total
	}

	if stats.TotalTransactions > 0 {
		stats.AverageOrderValue = stats.TotalSales / float64(stats.TotalTransactions)
	}
	return stats
}
