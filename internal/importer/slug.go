package importer

import (
	"context"
	"fmt"

	gslug "github.com/gosimple/slug"
	"github.com/storefront-tools/catalog-sync/internal/catalog"
)

// maxSlugProbes bounds the collision probe so a pathological catalog cannot
// spin the import forever.
const maxSlugProbes = 1000

// Slugify derives the URL-safe base identifier from a product name:
// lowercase, non-alphanumeric runs collapsed to single hyphens, trimmed.
func Slugify(name string) string {
	return gslug.Make(name)
}

// uniqueSlug returns the first free slug for name, probing the live store
// per candidate: the base slug first, then -2, -3, and so on. Each probe is
// a point lookup inside the import transaction, so products created earlier
// in the same batch are visible and two same-named new products get distinct
// slugs. Slugs are only generated on create; updates keep the slug the row's
// SKU already owns.
func uniqueSlug(ctx context.Context, store catalog.Store, name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "product"
	}

	candidate := base
	for i := 2; i <= maxSlugProbes+1; i++ {
		exists, err := store.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("probe slug %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}

	return "", fmt.Errorf("no free slug found for %q after %d probes", base, maxSlugProbes)
}
