package importer

import "strings"

// column describes one expected input column.
type column struct {
	Name     string
	Required bool
	Example  string
}

// productColumns defines the expected header for a product import file.
// Order matters only for template generation; header matching is by name,
// case-insensitive.
var productColumns = []column{
	{Name: "name", Required: true, Example: "Brake Pad Set"},
	{Name: "sku", Required: true, Example: "BP-1042"},
	{Name: "category", Required: true, Example: "Brakes"},
	{Name: "price", Required: true, Example: "49.90"},
	{Name: "stock", Required: true, Example: "120"},
	{Name: "description", Required: false, Example: "Ceramic pads, front axle"},
	{Name: "status", Required: false, Example: "active"},
	{Name: "tags", Required: false, Example: "brakes;ceramic"},
	{Name: "images", Required: false, Example: "https://cdn.example.com/bp-1042.jpg"},
}

// ColumnNames returns the expected header in template order.
func ColumnNames() []string {
	names := make([]string, len(productColumns))
	for i, c := range productColumns {
		names[i] = c.Name
	}
	return names
}

// TemplateRows returns the header row and one sample data row for the
// downloadable import template.
func TemplateRows() [][]string {
	header := ColumnNames()
	sample := make([]string, len(productColumns))
	for i, c := range productColumns {
		sample[i] = c.Example
	}
	return [][]string{header, sample}
}

// missingRequiredColumns returns the required column names absent from a
// lowercased header set.
func missingRequiredColumns(header map[string]int) []string {
	var missing []string
	for _, c := range productColumns {
		if !c.Required {
			continue
		}
		if _, ok := header[c.Name]; !ok {
			missing = append(missing, c.Name)
		}
	}
	return missing
}

// makeHeaderIndex maps cleaned, lowercased header names to their position.
func makeHeaderIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if key == "" {
			continue
		}
		if _, exists := idx[key]; !exists {
			idx[key] = i
		}
	}
	return idx
}
