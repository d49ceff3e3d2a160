package importer

// indexes.go builds the two read-only lookup structures used for one import:
// category name to id (case-insensitive) and existing SKU to {id, slug}.
// Both are snapshots of the catalog at import start; they are never mutated
// while the batch runs.

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront-tools/catalog-sync/internal/catalog"
)

// CategoryIndex resolves category names case-insensitively.
type CategoryIndex struct {
	byName map[string]uuid.UUID
}

func buildCategoryIndex(ctx context.Context, store catalog.Store) (*CategoryIndex, error) {
	categories, err := store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	idx := &CategoryIndex{byName: make(map[string]uuid.UUID, len(categories))}
	for _, c := range categories {
		idx.byName[strings.ToLower(c.Name)] = c.ID
	}
	return idx, nil
}

// Resolve returns the id for a category name, matching case-insensitively.
func (idx *CategoryIndex) Resolve(name string) (uuid.UUID, bool) {
	id, ok := idx.byName[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// ProductIndex maps SKUs (case-sensitive, matching the unique constraint) to
// the products that existed before the import began.
type ProductIndex struct {
	bySKU map[string]catalog.ProductRef
}

func buildProductIndex(ctx context.Context, store catalog.Store) (*ProductIndex, error) {
	refs, err := store.ListProductRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load product refs: %w", err)
	}

	idx := &ProductIndex{bySKU: make(map[string]catalog.ProductRef, len(refs))}
	for _, ref := range refs {
		idx.bySKU[ref.SKU] = ref
	}
	return idx, nil
}

// Lookup returns the pre-import product for a SKU, if any.
func (idx *ProductIndex) Lookup(sku string) (catalog.ProductRef, bool) {
	ref, ok := idx.bySKU[sku]
	return ref, ok
}
