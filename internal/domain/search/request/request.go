package request

import (
	"math"
	"unicode/utf8"

	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/sortby"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum number of runes kept from a free-text query.
	MaxQueryLength = 256
	DefaultPage    = 1
	DefaultLimit   = 20
	MaxLimit       = 100
)

// Request is a validated search: filters plus the requested page.
type Request struct {
	filters Filters
	page    int
	limit   int
}

// New normalizes search parameters.
// Defaults: sortBy=relevance, page=1, limit=DefaultLimit. Limit is clamped to maxLimit
// (MaxLimit when maxLimit <= 0). Page is capped so the offset cannot overflow.
// Overlong queries are truncated rather than rejected.
func New(filters Filters, page, limit, maxLimit int) Request {
	if filters.SortBy == "" {
		filters.SortBy = sortby.Default
	}
	if utf8.RuneCountInString(filters.Query) > MaxQueryLength {
		filters.Query = string([]rune(filters.Query)[:MaxQueryLength])
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if page < 1 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	// Keep (page-1)*limit representable.
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}

	return Request{filters: filters, page: page, limit: limit}
}

// Filters returns the search filters.
func (r *Request) Filters() Filters { return r.filters }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// Offset returns the number of results to skip.
func (r *Request) Offset() int { return (r.page - 1) * r.limit }
