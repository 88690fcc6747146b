package result

// Facets summarize the filterable values of the catalog for building filter UIs.
type Facets struct {
	Categories     []FacetCount `json:"categories"`
	FileTypes      []FacetCount `json:"fileTypes"`
	CompatibleWith []FacetCount `json:"compatibleWith"`
	PriceRange     [2]float64   `json:"priceRange"`
	Total          int          `json:"total"`
}

// FacetCount is one facet value with the number of products carrying it.
type FacetCount struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
	Count int    `json:"count"`
}

// Suggestion is one autocomplete hit.
type Suggestion struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Slug    string `json:"slug,omitempty"`
	Score   int    `json:"score"`
	Matched []int  `json:"matched,omitempty"`
}
