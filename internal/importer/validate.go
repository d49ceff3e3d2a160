package importer

// validate.go checks a parsed row for required fields, format constraints,
// and category existence. All checks run; every violation is reported, not
// just the first. A row with any error is excluded from persistence but never
// aborts the batch.

import (
	"fmt"
	"regexp"
)

// skuRegex permits the identifier characters commonly seen in supplier feeds.
var skuRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._/-]*$`)

const maxSKULength = 64

// rowValidator validates parsed rows against the category index snapshot.
type rowValidator struct {
	categories *CategoryIndex
}

// validateRow returns every validation error for one row, stamped with its
// 1-based, header-adjusted row number. An empty slice means the row may be
// persisted.
func (v *rowValidator) validateRow(p ParsedRow, rowNum int) []ValidationError {
	var errs []ValidationError
	add := func(field, message string) {
		errs = append(errs, ValidationError{Row: rowNum, Field: field, Message: message})
	}

	if p.Name == "" {
		add("name", "required field is empty")
	}

	switch {
	case p.SKU == "":
		add("sku", "required field is empty")
	case len(p.SKU) > maxSKULength:
		add("sku", fmt.Sprintf("must be at most %d characters", maxSKULength))
	case !skuRegex.MatchString(p.SKU):
		add("sku", "invalid SKU format")
	}

	if p.Category == "" {
		add("category", "required field is empty")
	} else if _, ok := v.categories.Resolve(p.Category); !ok {
		add("category", fmt.Sprintf("unknown category %q", p.Category))
	}

	switch {
	case p.PriceRaw == "":
		add("price", "required field is empty")
	case !p.Price.Valid:
		add("price", fmt.Sprintf("invalid number %q", p.PriceRaw))
	case NumericIsNegative(p.Price):
		add("price", "must not be negative")
	}

	switch {
	case p.StockRaw == "":
		add("stock", "required field is empty")
	case !p.StockOK:
		add("stock", fmt.Sprintf("invalid integer %q", p.StockRaw))
	case p.Stock < 0:
		add("stock", "must not be negative")
	}

	if p.Status != "" {
		switch p.Status {
		case StatusActive, StatusDraft, StatusArchived:
		default:
			add("status", fmt.Sprintf("must be one of: %s, %s, %s",
				StatusActive, StatusDraft, StatusArchived))
		}
	}

	return errs
}
