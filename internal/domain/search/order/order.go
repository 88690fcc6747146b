// Package order sorts product sets by a named strategy.
package order

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/antopucung/GodotTeko-sub003/internal/domain/product"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/sortby"
)

// Comparator orders two products; negative means a sorts before b.
type Comparator func(a, b *product.Product) int

// Sort returns a new slice ordered by strategy. The sort is stable, so ties keep
// their input order. textActive selects the relevance ordering by search score.
func Sort(products []product.Product, strategy sortby.Strategy, textActive bool) []product.Product {
	out := slices.Clone(products)
	if out == nil {
		out = []product.Product{}
	}
	cmpFn := For(strategy, textActive)
	slices.SortStableFunc(out, func(a, b product.Product) int { return cmpFn(&a, &b) })
	return out
}

// For returns the comparator of a strategy. Unknown strategies order
// featured products first, then newest first.
func For(strategy sortby.Strategy, textActive bool) Comparator {
	switch strategy {
	case sortby.Relevance:
		if textActive {
			return byScore
		}
		return chain(byFeatured, byRatingDesc, byDownloadsDesc)
	case sortby.Newest:
		return byNewest
	case sortby.Oldest:
		return func(a, b *product.Product) int { return a.EffectiveTime().Compare(b.EffectiveTime()) }
	case sortby.PriceLow:
		return func(a, b *product.Product) int { return cmp.Compare(a.EffectivePrice(), b.EffectivePrice()) }
	case sortby.PriceHigh:
		return func(a, b *product.Product) int { return cmp.Compare(b.EffectivePrice(), a.EffectivePrice()) }
	case sortby.Popular, sortby.Downloads:
		return byDownloadsDesc
	case sortby.Rating:
		return chain(byRatingDesc, func(a, b *product.Product) int {
			return cmp.Compare(b.Stats.Reviews, a.Stats.Reviews)
		})
	case sortby.Trending:
		return func(a, b *product.Product) int { return cmp.Compare(b.TrendScore(), a.TrendScore()) }
	case sortby.Alphabetical:
		// collate.Collator keeps internal buffers; one per comparator.
		c := collate.New(language.English, collate.IgnoreCase)
		return func(a, b *product.Product) int { return c.CompareString(a.Title, b.Title) }
	default:
		return chain(byFeatured, byNewest)
	}
}

func chain(cmps ...Comparator) Comparator {
	return func(a, b *product.Product) int {
		for _, c := range cmps {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}

func byScore(a, b *product.Product) int { return cmp.Compare(b.Score(), a.Score()) }

func byFeatured(a, b *product.Product) int { return cmp.Compare(boolRank(b.Featured), boolRank(a.Featured)) }

func byRatingDesc(a, b *product.Product) int { return cmp.Compare(b.Stats.Rating, a.Stats.Rating) }

func byDownloadsDesc(a, b *product.Product) int { return cmp.Compare(b.Stats.Downloads, a.Stats.Downloads) }

func byNewest(a, b *product.Product) int { return b.EffectiveTime().Compare(a.EffectiveTime()) }

func boolRank(v bool) int {
	if v {
		return 1
	}
	return 0
}
