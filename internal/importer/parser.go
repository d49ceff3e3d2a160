package importer

// parser.go turns an uploaded file into RawRows and RawRows into ParsedRows.
// Structural problems (unreadable file, missing header columns, zero data
// rows) fail the whole import here, before any transaction is opened.
// Per-row parsing never fails: bad cells are left for the validator.

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// parseTable reads the full input and returns one RawRow per non-empty data
// line. The file format is chosen by extension: .xlsx uses the first sheet,
// everything else is treated as CSV.
func parseTable(data []byte, fileName string) ([]RawRow, error) {
	var records [][]string
	var err error

	if strings.HasSuffix(strings.ToLower(fileName), ".xlsx") {
		records, err = readXLSX(data)
	} else {
		records, err = readCSV(data)
	}
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	headerIdx := makeHeaderIndex(records[0])
	if missing := missingRequiredColumns(headerIdx); len(missing) > 0 {
		return nil, fileErrorf("missing required columns: "+strings.Join(missing, ", "), nil)
	}

	var rows []RawRow
	for _, record := range records[1:] {
		if isEmptyRecord(record) {
			continue
		}
		row := make(RawRow, len(headerIdx))
		for name, pos := range headerIdx {
			if pos < len(record) {
				row[name] = CleanCell(record[pos])
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	data = sanitizeUTF8(data)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fileErrorf("parse CSV", err)
	}
	return records, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fileErrorf("open XLSX", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fileErrorf("no sheets found in XLSX file", nil)
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fileErrorf(fmt.Sprintf("read sheet %q", sheets[0]), err)
	}
	return records, nil
}

func isEmptyRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseRow projects a RawRow into typed fields. Unparsable numeric cells keep
// their raw value with an invalid converted value; the validator turns those
// into field-level errors.
func parseRow(raw RawRow) ParsedRow {
	p := ParsedRow{
		Name:        raw["name"],
		SKU:         raw["sku"],
		Category:    raw["category"],
		Description: raw["description"],
		Status:      strings.ToLower(strings.TrimSpace(raw["status"])),
		PriceRaw:    raw["price"],
		StockRaw:    raw["stock"],
		Tags:        SplitList(raw["tags"]),
		Images:      SplitList(raw["images"]),
	}

	p.Price = ToNumeric(p.PriceRaw)
	p.Stock, p.StockOK = ToInt32(p.StockRaw)

	return p
}
