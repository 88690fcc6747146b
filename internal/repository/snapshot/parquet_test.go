package snapshot

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/antopucung/GodotTeko-sub003/internal/domain/product"
)

func TestParquet_RoundTripThroughLoad(t *testing.T) {
	dir := t.TempDir()
	sale := 9.5
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	in := []product.Product{
		{
			ID:         "p1",
			Title:      "City Icons",
			Price:      19,
			SalePrice:  &sale,
			Categories: []product.Ref{{Name: "Icons", Slug: "icons"}},
			Tags:       []product.Ref{{Name: "Urban", Slug: "urban"}},
			Author:     product.Author{Name: "Jane Doe", Slug: "jane"},
			FileTypes:  []string{"SVG", "PNG"},
			Stats:      product.Stats{Rating: 4.5, Downloads: 120, Reviews: 8},
			Featured:   true,
			CreatedAt:  created,
		},
		{ID: "p2", Title: "Mono Font", Freebie: true},
	}

	path := filepath.Join(dir, "catalog.parquet")
	if err := WriteParquet(path, in); err != nil {
		t.Fatalf("WriteParquet: %v", err)
	}

	c := New([]string{path})
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, err := c.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("loaded %d products, want 2", len(got))
	}

	p := got[0]
	if p.ID != "p1" || p.Title != "City Icons" || p.EffectivePrice() != 9.5 {
		t.Errorf("product = %+v", p)
	}
	if len(p.Categories) != 1 || p.Categories[0] != (product.Ref{Name: "Icons", Slug: "icons"}) {
		t.Errorf("categories = %+v", p.Categories)
	}
	if p.Author.Name != "Jane Doe" || p.Stats.Downloads != 120 || !p.Featured {
		t.Errorf("author/stats/featured = %+v %+v %v", p.Author, p.Stats, p.Featured)
	}
	if !p.CreatedAt.Equal(created) {
		t.Errorf("createdAt = %v, want %v", p.CreatedAt, created)
	}
	if !got[1].Freebie || got[1].SalePrice != nil || !got[1].CreatedAt.IsZero() {
		t.Errorf("second product = %+v", got[1])
	}
}

func TestZipRefs(t *testing.T) {
	refs := zipRefs([]string{"icons", "fonts"}, []string{"Icons"})
	want := []product.Ref{{Name: "Icons", Slug: "icons"}, {Name: "fonts", Slug: "fonts"}}
	if len(refs) != 2 || refs[0] != want[0] || refs[1] != want[1] {
		t.Errorf("zipRefs = %+v, want %+v", refs, want)
	}
	if zipRefs(nil, []string{"x"}) != nil {
		t.Error("no slugs should give nil")
	}
}

func TestIsParquet(t *testing.T) {
	for path, want := range map[string]bool{
		"a.parquet":     true,
		"dir/B.PARQUET": true,
		"products.json": false,
		"parquet":       false,
	} {
		if got := isParquet(path); got != want {
			t.Errorf("isParquet(%q) = %v, want %v", path, got, want)
		}
	}
}
