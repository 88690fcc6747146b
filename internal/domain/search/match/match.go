// Package match applies structural search filters to a product set.
package match

import (
	"strings"

	"github.com/antopucung/GodotTeko-sub003/internal/domain/product"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/rank"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/request"
)

// Dimension selects which filter dimensions Apply evaluates.
type Dimension uint16

// Filter dimensions.
const (
	Text Dimension = 1 << iota
	Categories
	Featured
	Freebie
	Price
	Author
	FileTypes
	Compatibility
	Rating
	Date

	// All evaluates every dimension.
	All = Text | Categories | Featured | Freebie | Price | Author | FileTypes | Compatibility | Rating | Date
	// ClientSide are the dimensions the remote store cannot express natively.
	ClientSide = FileTypes | Compatibility | Date
)

// Active reports which of dims are present in f.
func Active(f *request.Filters, dims Dimension) Dimension {
	var out Dimension
	set := func(d Dimension, present bool) {
		if present && dims&d != 0 {
			out |= d
		}
	}
	set(Text, f.Query != "")
	set(Categories, len(f.Categories) > 0)
	set(Featured, f.Featured != nil)
	set(Freebie, f.Freebie != nil)
	set(Price, f.PriceRange != nil)
	set(Author, f.Author != "")
	set(FileTypes, len(f.FileTypes) > 0)
	set(Compatibility, len(f.CompatibleWith) > 0)
	set(Rating, f.MinRating != nil)
	set(Date, f.DateRange != nil)
	return out
}

// Apply returns the products satisfying every present filter among dims.
// Dimensions are combined with AND; multi-valued dimensions match any value.
// When Text is evaluated it runs first: survivors carry their relevance score
// and products scoring 0 are dropped. The input slice is never modified.
func Apply(products []product.Product, f request.Filters, dims Dimension) []product.Product {
	active := Active(&f, dims)

	candidates := products
	if active&Text != 0 {
		candidates = rank.Annotate(products, f.Query)
	}

	out := make([]product.Product, 0, len(candidates))
	for i := range candidates {
		p := &candidates[i]
		if active&Text != 0 && p.Score() <= 0 {
			continue
		}
		if !matches(p, &f, active) {
			continue
		}
		out = append(out, *p)
	}
	return out
}

func matches(p *product.Product, f *request.Filters, active Dimension) bool {
	if active&Categories != 0 && !anyIn(p.CategorySlugs(), f.Categories, false) {
		return false
	}
	if active&Featured != 0 && p.Featured != *f.Featured {
		return false
	}
	if active&Freebie != 0 && p.Freebie != *f.Freebie {
		return false
	}
	if active&Price != 0 && !f.PriceRange.Contains(p.EffectivePrice()) {
		return false
	}
	if active&Author != 0 && !matchAuthor(&p.Author, f.Author) {
		return false
	}
	if active&FileTypes != 0 && !anyIn(p.FileTypes, f.FileTypes, true) {
		return false
	}
	if active&Compatibility != 0 && !anyIn(p.CompatibleWith, f.CompatibleWith, true) {
		return false
	}
	if active&Rating != 0 && p.Stats.Rating < *f.MinRating {
		return false
	}
	if active&Date != 0 && !f.DateRange.Contains(p.EffectiveTime()) {
		return false
	}
	return true
}

// matchAuthor accepts an exact slug or a case-insensitive substring of the name.
func matchAuthor(a *product.Author, want string) bool {
	if a.Slug != "" && a.Slug == want {
		return true
	}
	return a.Name != "" && strings.Contains(strings.ToLower(a.Name), strings.ToLower(want))
}

// anyIn reports whether any of have is in want.
func anyIn(have, want []string, fold bool) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w || (fold && strings.EqualFold(h, w)) {
				return true
			}
		}
	}
	return false
}
