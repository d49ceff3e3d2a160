package importer

import (
	"context"
	"strconv"
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Brake Pad Set", "brake-pad-set"},
		{"Café au Lait", "cafe-au-lait"},
		{"  spaced   out  ", "spaced-out"},
		{"100% Cotton T-Shirt", "100-percent-cotton-t-shirt"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUniqueSlug(t *testing.T) {
	ctx := context.Background()

	t.Run("no collision", func(t *testing.T) {
		store := newFakeStore()

		slug, err := uniqueSlug(ctx, store, "Brake Pad Set")
		if err != nil {
			t.Fatalf("uniqueSlug() error = %v", err)
		}
		if slug != "brake-pad-set" {
			t.Errorf("slug = %q, want brake-pad-set", slug)
		}
	})

	t.Run("incremental probing", func(t *testing.T) {
		store := newFakeStore()
		store.seedProduct("A-1", "brake-pad-set")
		store.seedProduct("A-2", "brake-pad-set-2")

		slug, err := uniqueSlug(ctx, store, "Brake Pad Set")
		if err != nil {
			t.Fatalf("uniqueSlug() error = %v", err)
		}
		if slug != "brake-pad-set-3" {
			t.Errorf("slug = %q, want brake-pad-set-3", slug)
		}
	})

	t.Run("empty name falls back", func(t *testing.T) {
		store := newFakeStore()

		slug, err := uniqueSlug(ctx, store, "???")
		if err != nil {
			t.Fatalf("uniqueSlug() error = %v", err)
		}
		if slug != "product" {
			t.Errorf("slug = %q, want product", slug)
		}
	})

	t.Run("probe limit exhausted", func(t *testing.T) {
		store := newFakeStore()
		store.seedProduct("B-0", "widget")
		for i := 2; i <= maxSlugProbes+1; i++ {
			store.slugs["widget-"+strconv.Itoa(i)] = true
		}

		_, err := uniqueSlug(ctx, store, "Widget")
		if err == nil {
			t.Fatal("uniqueSlug() succeeded with every candidate taken")
		}
		if !strings.Contains(err.Error(), "no free slug") {
			t.Errorf("err = %v", err)
		}
	})
}
