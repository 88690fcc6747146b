package db

import "github.com/antopucung/GodotTeko-sub003/internal/domain/search/filter"

// Query is the input for a structured FT.SEARCH: filters, sort key and page window.
// Drivers render it to their dialect; callers never build query strings.
type Query struct {
	IndexName string
	Filters   filter.Expression
	// SortBy is a SORTABLE field alias. Empty keeps the engine's relevance order.
	SortBy       string
	SortDesc     bool
	Offset       int
	Limit        int
	ReturnFields []string
	WithScores   bool
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
