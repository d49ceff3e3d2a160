// Package importer implements the catalog synchronization engine: it
// reconciles a tabular file of product attributes against the live catalog in
// one of three conflict-resolution modes (create, update, upsert), inside a
// single transaction with row-level failure isolation.
package importer

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
)

// Mode selects the conflict-resolution policy for a whole import.
// It is decided once, before any row is processed.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
	ModeUpsert
)

// ParseMode converts the transport-level mode string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "create":
		return ModeCreate, nil
	case "update":
		return ModeUpdate, nil
	case "upsert":
		return ModeUpsert, nil
	default:
		return 0, fmt.Errorf("invalid import mode %q (expected create, update, or upsert)", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeUpdate:
		return "update"
	case ModeUpsert:
		return "upsert"
	default:
		return "unknown"
	}
}

// Product statuses accepted in the status column.
const (
	StatusActive   = "active"
	StatusDraft    = "draft"
	StatusArchived = "archived"
)

// RawRow maps a lowercased column name to the cleaned cell value for one
// input line. Rows are built by the file parser and consumed immediately.
type RawRow map[string]string

// ParsedRow is the typed projection of a RawRow. Parsing never fails:
// malformed numeric cells keep their raw string and an invalid converted
// value, so the validator can report field-level errors precisely.
type ParsedRow struct {
	Name        string
	SKU         string
	Category    string
	Description string
	Status      string // normalized lowercase, empty means default

	PriceRaw string
	Price    pgtype.Numeric

	StockRaw string
	Stock    int32
	StockOK  bool

	Tags   []string
	Images []string
}

// ValidationError describes one problem with one input row.
// Row numbers are 1-based and header-adjusted: the first data row is row 2.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("row %d, %s: %s", e.Row, e.Field, e.Message)
}

// Result is the final tally of one import. It is returned exactly once and
// only when the transaction committed (or was deliberately rolled back in
// dry-run mode); a systemic failure returns an error instead.
type Result struct {
	Total   int               `json:"total"`
	Created int               `json:"created"`
	Updated int               `json:"updated"`
	Failed  int               `json:"failed"`
	DryRun  bool              `json:"dryRun,omitempty"`
	Errors  []ValidationError `json:"errors"`
}

func (r *Result) addError(row int, field, message string) {
	r.Errors = append(r.Errors, ValidationError{Row: row, Field: field, Message: message})
}

// Structural failures: the whole input is unusable, no transaction is opened.
var (
	ErrEmptyFile    = errors.New("file contains no data rows")
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
)

// FileError marks a structural problem with the uploaded file itself, as
// opposed to a systemic failure during processing. Transport layers use it to
// pick a client-error status.
type FileError struct {
	msg string
	err error
}

func (e *FileError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *FileError) Unwrap() error { return e.err }

func fileErrorf(msg string, err error) *FileError {
	return &FileError{msg: msg, err: err}
}
