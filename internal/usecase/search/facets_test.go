package search

import (
	"context"
	"testing"

	"github.com/antopucung/GodotTeko-sub003/internal/domain/product"
)

func TestFacets(t *testing.T) {
	sale := 5.0
	local := &mockLocal{products: []product.Product{
		{
			ID: "1", Price: 20, SalePrice: &sale,
			Categories: []product.Ref{{Name: "Icons", Slug: "icons"}},
			FileTypes:  []string{"SVG", "png"},
		},
		{
			ID: "2", Price: 49,
			Categories:     []product.Ref{{Name: "Icons", Slug: "icons"}, {Name: "UI Kits", Slug: "ui-kits"}},
			FileTypes:      []string{"svg"},
			CompatibleWith: []string{"Figma"},
		},
		{ID: "3", Price: 12},
	}}

	f, err := New(nil, local).Facets(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Total != 3 {
		t.Errorf("total = %d, want 3", f.Total)
	}
	if f.PriceRange != [2]float64{5, 49} {
		t.Errorf("price range = %v, want [5 49]", f.PriceRange)
	}

	if len(f.Categories) != 2 || f.Categories[0].Value != "icons" || f.Categories[0].Count != 2 {
		t.Fatalf("categories = %+v", f.Categories)
	}
	if f.Categories[0].Label != "Icons" {
		t.Errorf("label = %q, want Icons", f.Categories[0].Label)
	}

	if len(f.FileTypes) != 2 || f.FileTypes[0].Value != "svg" || f.FileTypes[0].Count != 2 {
		t.Errorf("file types should fold case: %+v", f.FileTypes)
	}
	if len(f.CompatibleWith) != 1 || f.CompatibleWith[0].Label != "Figma" {
		t.Errorf("compatible = %+v", f.CompatibleWith)
	}
}

func TestFacets_EmptyCatalog(t *testing.T) {
	f, err := New(nil, &mockLocal{products: []product.Product{}}).Facets(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.PriceRange != [2]float64{} || f.Total != 0 || len(f.Categories) != 0 {
		t.Errorf("unexpected facets: %+v", f)
	}
}
