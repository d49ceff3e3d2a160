package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// txStore implements Store on top of a single pgx transaction.
type txStore struct {
	tx pgx.Tx
}

func (s *txStore) ListCategories(ctx context.Context) ([]Category, error) {
	return listCategories(ctx, s.tx)
}

func (s *txStore) ListProductRefs(ctx context.Context) ([]ProductRef, error) {
	rows, err := s.tx.Query(ctx, "SELECT id, sku, slug FROM products")
	if err != nil {
		return nil, fmt.Errorf("query product refs: %w", err)
	}
	defer rows.Close()

	var refs []ProductRef
	for rows.Next() {
		var ref ProductRef
		if err := rows.Scan(&ref.ID, &ref.SKU, &ref.Slug); err != nil {
			return nil, fmt.Errorf("scan product ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return refs, nil
}

func (s *txStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.tx.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM products WHERE slug = $1)", slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("slug lookup: %w", err)
	}
	return exists, nil
}

// InsertProduct runs the insert inside a savepoint (nested transaction).
// On failure the savepoint is rolled back, leaving the outer transaction
// usable, and unique violations come back as sentinel errors.
func (s *txStore) InsertProduct(ctx context.Context, p NewProductParams) error {
	sp, err := s.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("create savepoint: %w", err)
	}

	_, err = sp.Exec(ctx, `
		INSERT INTO products
			(id, sku, name, slug, category_id, price, stock, description,
			 status, tags, image_urls, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())`,
		p.ID, p.SKU, p.Name, p.Slug, p.CategoryID, p.Price, p.Stock,
		p.Description, p.Status, p.Tags, p.ImageURLs)
	if err != nil {
		_ = sp.Rollback(ctx)
		return mapUniqueViolation(err)
	}

	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}

// UpdateProduct runs the update inside a savepoint. The slug column is never
// touched: slugs are stable identifiers once assigned.
func (s *txStore) UpdateProduct(ctx context.Context, p UpdateProductParams) error {
	sp, err := s.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("create savepoint: %w", err)
	}

	_, err = sp.Exec(ctx, `
		UPDATE products SET
			name = $2, category_id = $3, price = $4, stock = $5,
			description = $6, status = $7, tags = $8, image_urls = $9,
			updated_at = now()
		WHERE id = $1`,
		p.ID, p.Name, p.CategoryID, p.Price, p.Stock,
		p.Description, p.Status, p.Tags, p.ImageURLs)
	if err != nil {
		_ = sp.Rollback(ctx)
		return mapUniqueViolation(err)
	}

	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}

func (s *txStore) RecordImportRun(ctx context.Context, run ImportRun) error {
	_, err := s.tx.Exec(ctx, `
		INSERT INTO import_runs
			(id, mode, file_name, total_rows, created, updated, failed, duration_ms, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`,
		run.ID, run.Mode, run.FileName, run.TotalRows, run.Created,
		run.Updated, run.Failed, run.DurationMs)
	if err != nil {
		return fmt.Errorf("record import run: %w", err)
	}
	return nil
}
