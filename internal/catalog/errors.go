package catalog

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// ErrDuplicateSKU is returned when an insert collides with the products_sku_key
// constraint. The import engine treats this as a row-scoped failure rather than
// aborting the batch: two rows in one file can carry the same new SKU, and only
// the store can detect the second one.
var ErrDuplicateSKU = errors.New("sku already exists")

// ErrDuplicateSlug is returned when an insert collides with products_slug_key.
// The slug generator probes before inserting, so hitting this indicates a
// concurrent writer outside the import transaction.
var ErrDuplicateSlug = errors.New("slug already exists")

// mapUniqueViolation converts a pg unique violation into a sentinel error the
// engine can match with errors.Is. Other errors pass through unchanged.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "products_sku_key":
		return ErrDuplicateSKU
	case "products_slug_key":
		return ErrDuplicateSlug
	}
	return err
}
