package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

const testHeader = "name,sku,category,price,stock,description,status,tags,images"

func TestParseTable_CSV(t *testing.T) {
	data := testHeader + "\n" +
		"Brake Pad Set,BP-1042,Brakes,49.90,120,Ceramic pads,active,brakes;ceramic,\n" +
		"Oil Filter,OF-220,Filters,9.99,300,,,,\n"

	rows, err := parseTable([]byte(data), "products.csv")
	if err != nil {
		t.Fatalf("parseTable() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("parseTable() = %d rows, want 2", len(rows))
	}

	if rows[0]["sku"] != "BP-1042" {
		t.Errorf("rows[0][sku] = %q, want BP-1042", rows[0]["sku"])
	}
	if rows[1]["name"] != "Oil Filter" {
		t.Errorf("rows[1][name] = %q, want Oil Filter", rows[1]["name"])
	}
	if rows[1]["description"] != "" {
		t.Errorf("rows[1][description] = %q, want empty", rows[1]["description"])
	}
}

func TestParseTable_BOM(t *testing.T) {
	data := "\xEF\xBB\xBF" + testHeader + "\nWidget,W-1,Brakes,1.00,1,,,,\n"

	rows, err := parseTable([]byte(data), "products.csv")
	if err != nil {
		t.Fatalf("parseTable() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("parseTable() = %d rows, want 1", len(rows))
	}
	if rows[0]["name"] != "Widget" {
		t.Errorf("rows[0][name] = %q, want Widget", rows[0]["name"])
	}
}

func TestParseTable_HeaderCaseInsensitive(t *testing.T) {
	data := "Name,SKU,Category,Price,Stock\nWidget,W-1,Brakes,1.00,1\n"

	rows, err := parseTable([]byte(data), "products.csv")
	if err != nil {
		t.Fatalf("parseTable() error = %v", err)
	}
	if rows[0]["sku"] != "W-1" {
		t.Errorf("rows[0][sku] = %q, want W-1", rows[0]["sku"])
	}
}

func TestParseTable_SkipsBlankLines(t *testing.T) {
	data := testHeader + "\n" +
		"Widget,W-1,Brakes,1.00,1,,,,\n" +
		",,,,,,,,\n" +
		"Gadget,G-1,Brakes,2.00,2,,,,\n"

	rows, err := parseTable([]byte(data), "products.csv")
	if err != nil {
		t.Fatalf("parseTable() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("parseTable() = %d rows, want 2 (blank line skipped)", len(rows))
	}
}

func TestParseTable_EmptyFile(t *testing.T) {
	if _, err := parseTable([]byte(""), "products.csv"); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("empty input: err = %v, want ErrEmptyFile", err)
	}

	// Header only, no data rows
	if _, err := parseTable([]byte(testHeader+"\n"), "products.csv"); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("header-only input: err = %v, want ErrEmptyFile", err)
	}
}

func TestParseTable_MissingColumns(t *testing.T) {
	data := "name,sku\nWidget,W-1\n"

	_, err := parseTable([]byte(data), "products.csv")
	if err == nil {
		t.Fatal("parseTable() succeeded with missing required columns")
	}

	var ferr *FileError
	if !errors.As(err, &ferr) {
		t.Fatalf("err = %T, want *FileError", err)
	}
	for _, col := range []string{"category", "price", "stock"} {
		if !strings.Contains(err.Error(), col) {
			t.Errorf("error %q does not name missing column %q", err, col)
		}
	}
}

func TestParseTable_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	header := ColumnNames()
	for i, name := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			t.Fatalf("SetCellValue: %v", err)
		}
	}
	values := []string{"Brake Pad Set", "BP-1042", "Brakes", "49.90", "120", "", "active", "", ""}
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatalf("SetCellValue: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	rows, err := parseTable(buf.Bytes(), "products.xlsx")
	if err != nil {
		t.Fatalf("parseTable() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("parseTable() = %d rows, want 1", len(rows))
	}
	if rows[0]["sku"] != "BP-1042" {
		t.Errorf("rows[0][sku] = %q, want BP-1042", rows[0]["sku"])
	}
	if rows[0]["status"] != "active" {
		t.Errorf("rows[0][status] = %q, want active", rows[0]["status"])
	}
}

func TestParseTable_BadXLSX(t *testing.T) {
	_, err := parseTable([]byte("not a zip archive"), "products.xlsx")
	if err == nil {
		t.Fatal("parseTable() accepted garbage XLSX")
	}
	var ferr *FileError
	if !errors.As(err, &ferr) {
		t.Errorf("err = %T, want *FileError", err)
	}
}

func TestParseRow(t *testing.T) {
	p := parseRow(RawRow{
		"name":     "Brake Pad Set",
		"sku":      "BP-1042",
		"category": "Brakes",
		"price":    "$49.90",
		"stock":    "120",
		"status":   "ACTIVE",
		"tags":     "brakes;ceramic",
		"images":   "https://cdn.example.com/a.jpg, https://cdn.example.com/b.jpg",
	})

	if !p.Price.Valid {
		t.Error("price not parsed")
	}
	if p.Stock != 120 || !p.StockOK {
		t.Errorf("stock = (%d, %v), want (120, true)", p.Stock, p.StockOK)
	}
	if p.Status != "active" {
		t.Errorf("status = %q, want active (normalized)", p.Status)
	}
	if len(p.Tags) != 2 {
		t.Errorf("tags = %v, want 2 elements", p.Tags)
	}
	if len(p.Images) != 2 {
		t.Errorf("images = %v, want 2 elements", p.Images)
	}
}

func TestParseRow_NeverFails(t *testing.T) {
	p := parseRow(RawRow{
		"name":  "Widget",
		"price": "free",
		"stock": "many",
	})

	if p.Price.Valid {
		t.Error("garbage price parsed as valid")
	}
	if p.PriceRaw != "free" {
		t.Errorf("PriceRaw = %q, want original value preserved", p.PriceRaw)
	}
	if p.StockOK {
		t.Error("garbage stock parsed as valid")
	}
}

func TestTemplate(t *testing.T) {
	data := Template()
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("Template() has %d lines, want header + sample", len(lines))
	}
	if lines[0] != testHeader {
		t.Errorf("header = %q, want %q", lines[0], testHeader)
	}
}
