package sortby

// Strategy names an ordering of search results.
type Strategy string

// Sort strategy constants.
const (
	// Relevance orders by search score when a text query is active,
	// otherwise featured first, then rating, then downloads.
	Relevance Strategy = "relevance"
	Newest    Strategy = "newest"
	Oldest    Strategy = "oldest"
	PriceLow  Strategy = "price_low"
	PriceHigh Strategy = "price_high"
	// Popular and Downloads are two names for the same ordering.
	Popular      Strategy = "popular"
	Downloads    Strategy = "downloads"
	Rating       Strategy = "rating"
	Trending     Strategy = "trending"
	Alphabetical Strategy = "alphabetical"
)

// Default is used when the request names no strategy.
const Default = Relevance

// All lists the known strategies.
var All = []Strategy{
	Relevance, Newest, Oldest, PriceLow, PriceHigh,
	Popular, Downloads, Rating, Trending, Alphabetical,
}

// IsKnown reports whether s is one of the named strategies.
// Unknown strategies are accepted and ordered with the fallback rule.
func (s Strategy) IsKnown() bool {
	for _, k := range All {
		if s == k {
			return true
		}
	}
	return false
}
