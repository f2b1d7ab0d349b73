package catalog

import "time"

// Item is one entry of the shop menu. Stock is in units; StockDate records
// when the stock count last changed.
type Item struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	StockDate string  `json:"stockDate,omitempty"`
	Image     string  `json:"image,omitempty"`
	Category  string  `json:"category,omitempty"`
}

// InStock reports whether at least one unit is available.
func (i Item) InStock() bool {
	return i.Stock > 0
}

func today() string {
	return time.Now().Format("2006-01-02")
}
