package catalog

import (
	"github.com/antopucung/GodotTeko-sub003/internal/domain/product"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/request"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/result"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/sortby"
)

// Wire types shared with the server.
type (
	Product     = product.Product
	Filters     = request.Filters
	PriceRange  = request.PriceRange
	DateRange   = request.DateRange
	SortBy      = sortby.Strategy
	Envelope    = result.Envelope
	Meta        = result.Meta
	Facets      = result.Facets
	FacetCount  = result.FacetCount
	Suggestion  = result.Suggestion
	Performance = result.Performance
)

// Sort strategies.
const (
	SortRelevance    = sortby.Relevance
	SortNewest       = sortby.Newest
	SortOldest       = sortby.Oldest
	SortPriceLow     = sortby.PriceLow
	SortPriceHigh    = sortby.PriceHigh
	SortPopular      = sortby.Popular
	SortDownloads    = sortby.Downloads
	SortRating       = sortby.Rating
	SortTrending     = sortby.Trending
	SortAlphabetical = sortby.Alphabetical
)
