package importer

import (
	"bytes"
	"encoding/csv"
)

// Template returns the downloadable CSV import template: the expected header
// plus one sample row.
func Template() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, record := range TemplateRows() {
		_ = w.Write(record)
	}
	w.Flush()
	return buf.Bytes()
}
