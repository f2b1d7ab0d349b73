package report

import "math"

// Delta is the signed change of one metric against the previous period.
// Percent is nil when the previous value was zero, since no meaningful
// percentage exists against an empty baseline.
type Delta struct {
	Diff    float64  `json:"diff"`
	Percent *float64 `json:"percent,omitempty"`
}

// Comparison holds period-over-period deltas for the headline metrics.
type Comparison struct {
	TotalSales        Delta `json:"totalSales"`
	TotalTransactions Delta `json:"totalTransactions"`
	AverageOrderValue Delta `json:"averageOrderValue"`
}

// Compare computes current-vs-previous deltas. Purely informational, no
// side effects.
func Compare(current, previous Stats) Comparison {
	return Comparison{
		TotalSales:        delta(current.TotalSales, previous.TotalSales),
		TotalTransactions: delta(float64(current.TotalTransactions), float64(previous.TotalTransactions)),
		AverageOrderValue: delta(current.AverageOrderValue, previous.AverageOrderValue),
	}
}

func delta(current, previous float64) Delta {
	d := Delta{Diff: current - previous}
	if previous != 0 {
		pct := math.Round(d.Diff/previous*1000) / 10
		d.Percent = &pct
	}
	return d
}
