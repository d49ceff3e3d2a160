package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the transaction-scoped view of the catalog consumed by the import
// engine. Every method operates within the transaction that produced it.
type Store interface {
	// ListCategories returns every category, for the pre-import name index.
	ListCategories(ctx context.Context) ([]Category, error)

	// ListProductRefs returns {id, sku, slug} for every product, for the
	// pre-import SKU index.
	ListProductRefs(ctx context.Context) ([]ProductRef, error)

	// SlugExists is a point lookup used by slug collision probing. It sees
	// rows inserted earlier in the same transaction.
	SlugExists(ctx context.Context, slug string) (bool, error)

	// InsertProduct inserts one product inside a savepoint. A unique
	// violation surfaces as ErrDuplicateSKU or ErrDuplicateSlug and leaves
	// the enclosing transaction usable.
	InsertProduct(ctx context.Context, p NewProductParams) error

	// UpdateProduct updates one product by id inside a savepoint.
	UpdateProduct(ctx context.Context, p UpdateProductParams) error

	// RecordImportRun writes the audit row for a finished import.
	RecordImportRun(ctx context.Context, run ImportRun) error
}

// Catalog wraps a pgx pool and provides transactional access to the store.
type Catalog struct {
	pool *pgxpool.Pool
}

// New creates a Catalog backed by the given pool.
func New(pool *pgxpool.Pool) *Catalog {
	return &Catalog{pool: pool}
}

// Ping verifies database connectivity.
func (c *Catalog) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

// RunInTx runs fn inside a single transaction. The transaction commits when
// fn returns nil and rolls back otherwise, so an error escaping fn discards
// every row written during the import.
func (c *Catalog) RunInTx(ctx context.Context, fn func(Store) error) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&txStore{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// RunInTxRollback runs fn inside a transaction that is always rolled back.
// Used for dry-run imports: the full pipeline executes, nothing persists.
func (c *Catalog) RunInTxRollback(ctx context.Context, fn func(Store) error) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	return fn(&txStore{tx: tx})
}

// ListProducts returns a page of products ordered by SKU, plus the total count.
func (c *Catalog) ListProducts(ctx context.Context, limit, offset int) ([]Product, int64, error) {
	var total int64
	if err := c.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	rows, err := c.pool.Query(ctx, `
		SELECT id, sku, name, slug, category_id, price, stock, description,
		       status, tags, image_urls, created_at, updated_at
		FROM products
		ORDER BY sku
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0, limit)
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Name, &p.Slug, &p.CategoryID, &p.Price, &p.Stock,
			&p.Description, &p.Status, &p.Tags, &p.ImageURLs, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return products, total, nil
}

// ListCategories returns every category ordered by name.
func (c *Catalog) ListCategories(ctx context.Context) ([]Category, error) {
	return listCategories(ctx, c.pool)
}

// GetProductBySKU returns a single product, or pgx.ErrNoRows.
func (c *Catalog) GetProductBySKU(ctx context.Context, sku string) (Product, error) {
	var p Product
	err := c.pool.QueryRow(ctx, `
		SELECT id, sku, name, slug, category_id, price, stock, description,
		       status, tags, image_urls, created_at, updated_at
		FROM products WHERE sku = $1`, sku).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Slug, &p.CategoryID, &p.Price, &p.Stock,
		&p.Description, &p.Status, &p.Tags, &p.ImageURLs, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func listCategories(ctx context.Context, db DBTX) ([]Category, error) {
	rows, err := db.Query(ctx, "SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return categories, nil
}
