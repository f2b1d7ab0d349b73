package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"eggmart/internal/sale"
)

func TestExportRowsOnePerLineItem(t *testing.T) {
	sales := sampleSales()
	// Second sale gets a second line item: two rows for one sale.
	sales[1].Items = append(sales[1].Items, sale.LineItem{ItemID: "i3", Name: "Bread", Price: 25, Quantity: 1})

	rows := ExportRows(sales)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	want := []string{"2024-05-01", "Eggs", "2", "50", "100", "100", "UPI"}
	for i, v := range want {
		if rows[0][i] != v {
			t.Errorf("row 0 col %d: expected %q, got %q", i, v, rows[0][i])
		}
	}

	// Sale-level fields repeat on every row of the same sale.
	if rows[1][5] != rows[2][5] || rows[1][6] != rows[2][6] {
		t.Errorf("expected sale total and payment method repeated: %v vs %v", rows[1], rows[2])
	}
}

func TestSerializeCSV(t *testing.T) {
	csv, err := SerializeCSV(ExportRows(sampleSales()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Date,Item Name,Quantity,Unit Price,Total Price,Sale Total,Payment Method" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if lines[1] != `"2024-05-01","Eggs","2","50","100","100","UPI"` {
		t.Errorf("unexpected first row: %s", lines[1])
	}
}

func TestSerializeCSVEscapesQuotes(t *testing.T) {
	csv, err := SerializeCSV([][]string{{`Jumbo "XL" Eggs`, `a,b`}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(csv, `"Jumbo ""XL"" Eggs","a,b"`) {
		t.Errorf("expected doubled quotes and safe comma, got %s", csv)
	}
}

func TestSerializeCSVEmpty(t *testing.T) {
	if _, err := SerializeCSV(nil); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestFilename(t *testing.T) {
	start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.Local)
	if got := Filename(Monthly, start); got != "sales-report-monthly-2024-05-01.csv" {
		t.Errorf("unexpected filename: %s", got)
	}
}
