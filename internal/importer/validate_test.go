package importer

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func testValidator() *rowValidator {
	return &rowValidator{
		categories: &CategoryIndex{byName: map[string]uuid.UUID{
			"brakes":  uuid.New(),
			"filters": uuid.New(),
		}},
	}
}

func validRow() ParsedRow {
	return parseRow(RawRow{
		"name":     "Brake Pad Set",
		"sku":      "BP-1042",
		"category": "Brakes",
		"price":    "49.90",
		"stock":    "120",
	})
}

func TestValidateRow_Valid(t *testing.T) {
	v := testValidator()

	if errs := v.validateRow(validRow(), 2); len(errs) != 0 {
		t.Fatalf("validateRow() = %v, want no errors", errs)
	}
}

func TestValidateRow_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(RawRow)
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing name",
			mutate:    func(r RawRow) { r["name"] = "" },
			wantField: "name",
			wantMsg:   "required",
		},
		{
			name:      "missing sku",
			mutate:    func(r RawRow) { r["sku"] = "" },
			wantField: "sku",
			wantMsg:   "required",
		},
		{
			name:      "sku with spaces",
			mutate:    func(r RawRow) { r["sku"] = "BP 1042" },
			wantField: "sku",
			wantMsg:   "invalid SKU format",
		},
		{
			name:      "sku too long",
			mutate:    func(r RawRow) { r["sku"] = strings.Repeat("X", 65) },
			wantField: "sku",
			wantMsg:   "at most 64",
		},
		{
			name:      "unknown category",
			mutate:    func(r RawRow) { r["category"] = "Exhaust" },
			wantField: "category",
			wantMsg:   `unknown category "Exhaust"`,
		},
		{
			name:      "missing price",
			mutate:    func(r RawRow) { r["price"] = "" },
			wantField: "price",
			wantMsg:   "required",
		},
		{
			name:      "unparsable price",
			mutate:    func(r RawRow) { r["price"] = "cheap" },
			wantField: "price",
			wantMsg:   "invalid number",
		},
		{
			name:      "negative price",
			mutate:    func(r RawRow) { r["price"] = "-5.00" },
			wantField: "price",
			wantMsg:   "negative",
		},
		{
			name:      "unparsable stock",
			mutate:    func(r RawRow) { r["stock"] = "many" },
			wantField: "stock",
			wantMsg:   "invalid integer",
		},
		{
			name:      "negative stock",
			mutate:    func(r RawRow) { r["stock"] = "-1" },
			wantField: "stock",
			wantMsg:   "negative",
		},
		{
			name:      "bad status",
			mutate:    func(r RawRow) { r["status"] = "discontinued" },
			wantField: "status",
			wantMsg:   "must be one of",
		},
	}

	v := testValidator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawRow{
				"name":     "Brake Pad Set",
				"sku":      "BP-1042",
				"category": "Brakes",
				"price":    "49.90",
				"stock":    "120",
			}
			tt.mutate(raw)

			errs := v.validateRow(parseRow(raw), 5)
			if len(errs) != 1 {
				t.Fatalf("validateRow() = %v, want exactly one error", errs)
			}
			if errs[0].Row != 5 {
				t.Errorf("Row = %d, want 5", errs[0].Row)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.wantField)
			}
			if !strings.Contains(errs[0].Message, tt.wantMsg) {
				t.Errorf("Message = %q, want it to contain %q", errs[0].Message, tt.wantMsg)
			}
		})
	}
}

func TestValidateRow_ReportsAllErrors(t *testing.T) {
	v := testValidator()

	errs := v.validateRow(parseRow(RawRow{
		"name":     "",
		"sku":      "",
		"category": "Nowhere",
		"price":    "free",
		"stock":    "",
	}), 2)

	if len(errs) != 5 {
		t.Fatalf("validateRow() reported %d errors, want 5: %v", len(errs), errs)
	}

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, f := range []string{"name", "sku", "category", "price", "stock"} {
		if !fields[f] {
			t.Errorf("no error reported for field %q", f)
		}
	}
}

func TestValidateRow_CategoryCaseInsensitive(t *testing.T) {
	v := testValidator()

	row := validRow()
	row.Category = "bRaKeS"
	if errs := v.validateRow(row, 2); len(errs) != 0 {
		t.Fatalf("validateRow() = %v, want no errors for case-variant category", errs)
	}
}
