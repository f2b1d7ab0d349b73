package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"eggmart/internal/sale"
)

// ErrNoData signals an export with nothing to export. Callers show a
// message instead of producing an empty file.
var ErrNoData = errors.New("no sales data to export")

// Header is the fixed CSV column order.
var Header = []string{"Date", "Item Name", "Quantity", "Unit Price", "Total Price", "Sale Total", "Payment Method"}

// ExportRows flattens sale records into tabular rows, one row per line
// item. Sale-level fields (date, total, payment method) repeat on every
// row of the same sale.
func ExportRows(sales []sale.Record) [][]string {
	rows := [][]string{}
	for _, s := range sales {
		for _, it := range s.Items {
			rows = append(rows, []string{
				s.Date,
				it.Name,
				strconv.Itoa(it.Quantity),
				formatNumber(it.Price),
				formatNumber(it.Price * float64(it.Quantity)),
				formatNumber(s.Total),
				s.PaymentMethod,
			})
		}
	}
	return rows
}

// SerializeCSV renders rows as CSV text under the fixed header. Every
// value is wrapped in double quotes with internal quotes doubled, which
// makes any value safe regardless of commas or newlines inside it.
// Returns ErrNoData for an empty row list.
func SerializeCSV(rows [][]string) (string, error) {
	if len(rows) == 0 {
		return "", ErrNoData
	}
	var b strings.Builder
	b.WriteString(strings.Join(Header, ","))
	b.WriteByte('\n')
	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(v, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// Filename names the downloaded file after the period type and the start
// of the exported window.
func Filename(pt PeriodType, start time.Time) string {
	return fmt.Sprintf("sales-report-%s-%s.csv", pt, start.Format("2006-01-02"))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
