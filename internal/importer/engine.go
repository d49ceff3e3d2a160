package importer

// engine.go orchestrates one import: parse the file, snapshot the reference
// indexes, then walk every row inside a single transaction. Row-scoped
// failures (bad data, mode conflicts, per-row store errors) degrade to
// entries in the result; anything that escapes the per-row path rolls the
// whole transaction back and surfaces as a top-level error.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/storefront-tools/catalog-sync/internal/catalog"
)

// MaxFileSize is the maximum accepted input size (25MB). Imports are held in
// memory for the duration of one transaction; streaming is a non-goal.
var MaxFileSize int64 = 25 * 1024 * 1024

// TxRunner provides the transaction boundary for an import.
// Implemented by *catalog.Catalog.
type TxRunner interface {
	// RunInTx commits when fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(catalog.Store) error) error

	// RunInTxRollback always rolls back; used for dry runs.
	RunInTxRollback(ctx context.Context, fn func(catalog.Store) error) error
}

// Options configures one import invocation.
type Options struct {
	Mode     Mode
	FileName string
	DryRun   bool
}

// Engine runs catalog imports. Safe for reuse across invocations; every Run
// builds fresh indexes and shares nothing with other runs.
type Engine struct {
	db TxRunner
}

// NewEngine creates an Engine on top of the given transaction runner.
func NewEngine(db TxRunner) *Engine {
	return &Engine{db: db}
}

// Run executes one import. It returns (result, nil) when the batch committed
// (possibly with many row errors), or (nil, err) when the input was unusable
// or a systemic failure rolled the whole transaction back. Callers can rely
// on this distinction: a non-nil result always means no partial state beyond
// what the result reports.
func (e *Engine) Run(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	start := time.Now()

	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if int64(len(data)) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	rows, err := parseTable(data, opts.FileName)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Total:  len(rows),
		DryRun: opts.DryRun,
		Errors: []ValidationError{},
	}

	run := e.db.RunInTx
	if opts.DryRun {
		run = e.db.RunInTxRollback
	}

	err = run(ctx, func(store catalog.Store) error {
		categories, err := buildCategoryIndex(ctx, store)
		if err != nil {
			return err
		}
		products, err := buildProductIndex(ctx, store)
		if err != nil {
			return err
		}
		validator := &rowValidator{categories: categories}

		for i, raw := range rows {
			rowNum := i + 2 // 1-based, after the header row

			parsed := parseRow(raw)

			if errs := validator.validateRow(parsed, rowNum); len(errs) > 0 {
				result.Errors = append(result.Errors, errs...)
				result.Failed++
				continue
			}

			categoryID, ok := categories.Resolve(parsed.Category)
			if !ok {
				result.addError(rowNum, "category", fmt.Sprintf("unknown category %q", parsed.Category))
				result.Failed++
				continue
			}

			ref, skuKnown := products.Lookup(parsed.SKU)
			action, reason := resolveConflict(opts.Mode, skuKnown)

			switch action {
			case actionReject:
				result.addError(rowNum, "sku", reason)
				result.Failed++

			case actionCreate:
				if err := createProduct(ctx, store, parsed, categoryID); err != nil {
					recordRowError(result, rowNum, err)
					continue
				}
				result.Created++

			case actionUpdate:
				if err := updateProduct(ctx, store, ref.ID, parsed, categoryID); err != nil {
					recordRowError(result, rowNum, err)
					continue
				}
				result.Updated++
			}
		}

		if !opts.DryRun {
			audit := catalog.ImportRun{
				ID:         uuid.New(),
				Mode:       opts.Mode.String(),
				FileName:   opts.FileName,
				TotalRows:  result.Total,
				Created:    result.Created,
				Updated:    result.Updated,
				Failed:     result.Failed,
				DurationMs: time.Since(start).Milliseconds(),
			}
			if err := store.RecordImportRun(ctx, audit); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("import finished",
		"mode", opts.Mode.String(),
		"file", opts.FileName,
		"dry_run", opts.DryRun,
		"total", result.Total,
		"created", result.Created,
		"updated", result.Updated,
		"failed", result.Failed,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return result, nil
}

// createProduct generates a unique slug and inserts the row. The store runs
// the insert inside a savepoint, so a failure here is row-scoped.
func createProduct(ctx context.Context, store catalog.Store, p ParsedRow, categoryID uuid.UUID) error {
	slug, err := uniqueSlug(ctx, store, p.Name)
	if err != nil {
		return err
	}

	return store.InsertProduct(ctx, catalog.NewProductParams{
		ID:          uuid.New(),
		SKU:         p.SKU,
		Name:        p.Name,
		Slug:        slug,
		CategoryID:  categoryID,
		Price:       p.Price,
		Stock:       p.Stock,
		Description: ToText(p.Description),
		Status:      statusOrDefault(p.Status),
		Tags:        orEmpty(p.Tags),
		ImageURLs:   orEmpty(p.Images),
	})
}

// updateProduct overwrites the mutable attributes of an existing product.
// The slug is untouched: it stays whatever the SKU's record already carries.
func updateProduct(ctx context.Context, store catalog.Store, id uuid.UUID, p ParsedRow, categoryID uuid.UUID) error {
	return store.UpdateProduct(ctx, catalog.UpdateProductParams{
		ID:          id,
		Name:        p.Name,
		CategoryID:  categoryID,
		Price:       p.Price,
		Stock:       p.Stock,
		Description: ToText(p.Description),
		Status:      statusOrDefault(p.Status),
		Tags:        orEmpty(p.Tags),
		ImageURLs:   orEmpty(p.Images),
	})
}

// recordRowError classifies a per-row persistence failure. A duplicate SKU
// (two rows in one file carrying the same new SKU) is reported against the
// sku field; anything else is a generic row failure. Neither aborts the
// batch: the savepoint already rolled the statement back.
func recordRowError(result *Result, rowNum int, err error) {
	switch {
	case errors.Is(err, catalog.ErrDuplicateSKU):
		result.addError(rowNum, "sku", "SKU already exists")
	case errors.Is(err, catalog.ErrDuplicateSlug):
		result.addError(rowNum, "general", "slug conflict while inserting")
	default:
		result.addError(rowNum, "general", err.Error())
	}
	result.Failed++
}

func statusOrDefault(s string) string {
	if s == "" {
		return StatusActive
	}
	return s
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
