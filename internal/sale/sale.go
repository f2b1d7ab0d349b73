// Package sale holds the record shape shared by checkout (which writes
// records) and report (which reads them).
package sale

import "time"

// DateLayout is the calendar-date format records are stored with. Sale
// timestamps carry day-level granularity only; time of day is not captured.
const DateLayout = "2006-01-02"

// Statuses a record can carry. Set once at confirmation or cancellation,
// never reverted.
const (
	StatusPaid     = "paid"
	StatusDeclined = "declined"
)

// Payment methods. Treated as an open enum: anything else found in stored
// data is reported as-is.
const (
	PaymentUPI  = "UPI"
	PaymentCash = "Cash"
)

// LineItem is one cart line frozen into a sale. Price is the unit price at
// the time of sale, independent of later catalog changes.
type LineItem struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Record is one confirmed or declined checkout. Records are append-only.
type Record struct {
	ID            string     `json:"id"`
	Date          string     `json:"date"`
	Items         []LineItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	Tax           float64    `json:"tax"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"paymentMethod"`
	Status        string     `json:"status,omitempty"`
}

// Time parses the record's date in local time, at midnight.
func (r Record) Time() (time.Time, error) {
	return time.ParseInLocation(DateLayout, r.Date, time.Local)
}

// ItemCount is the number of units across all line items.
func (r Record) ItemCount() int {
	n := 0
	for _, it := range r.Items {
		n += it.Quantity
	}
	return n
}
