// Package catalog provides the transactional product catalog store backed by
// PostgreSQL. All write paths used by the import engine run inside a single
// pgx transaction obtained from RunInTx; per-row statements are guarded by
// savepoints so one failed row never poisons the surrounding transaction.
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is the subset of pgx operations the store needs.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// Category is a product category row.
type Category struct {
	ID   uuid.UUID
	Name string
}

// ProductRef identifies an existing product by its import-relevant keys.
type ProductRef struct {
	ID   uuid.UUID
	SKU  string
	Slug string
}

// Product is a full catalog row, used by the read endpoints.
type Product struct {
	ID          uuid.UUID      `json:"id"`
	SKU         string         `json:"sku"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	CategoryID  uuid.UUID      `json:"categoryId"`
	Price       pgtype.Numeric `json:"price"`
	Stock       int32          `json:"stock"`
	Description pgtype.Text    `json:"description"`
	Status      string         `json:"status"`
	Tags        []string       `json:"tags"`
	ImageURLs   []string       `json:"imageUrls"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// NewProductParams holds the values for a product insert.
type NewProductParams struct {
	ID          uuid.UUID
	SKU         string
	Name        string
	Slug        string
	CategoryID  uuid.UUID
	Price       pgtype.Numeric
	Stock       int32
	Description pgtype.Text
	Status      string
	Tags        []string
	ImageURLs   []string
}

// UpdateProductParams holds the values for an update by id.
// The slug is deliberately absent: slugs are stable once assigned.
type UpdateProductParams struct {
	ID          uuid.UUID
	Name        string
	CategoryID  uuid.UUID
	Price       pgtype.Numeric
	Stock       int32
	Description pgtype.Text
	Status      string
	Tags        []string
	ImageURLs   []string
}

// ImportRun is the audit record written for each committed import.
type ImportRun struct {
	ID         uuid.UUID
	Mode       string
	FileName   string
	TotalRows  int
	Created    int
	Updated    int
	Failed     int
	DurationMs int64
}
