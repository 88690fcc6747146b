package product

import (
	"encoding/json"
	"fmt"
	"math"

	domprod "github.com/antopucung/GodotTeko-sub003/internal/domain/product"
)

// Derived sort keys pack several orderings into one sortable number.
// Layout: featured flag above 1e13, rating (two decimals) above 1e8 or 1e9,
// and a tie-breaker in the low digits.
const (
	featuredWeight = 1e13
	ratingShift    = 1e8
	reviewShift    = 1e9
)

// jsonDoc is the stored JSON shape: the product as served plus index-only keys.
type jsonDoc struct {
	domprod.Product
	Index indexFields `json:"_idx"`
}

// indexFields are computed at write time so FT.SEARCH can filter and sort
// on values that are derived from several product fields.
type indexFields struct {
	Featured       string  `json:"featured"`
	Freebie        string  `json:"freebie"`
	EffectivePrice float64 `json:"effective_price"`
	Created        int64   `json:"created"`
	Trend          float64 `json:"trend"`
	RatingRank     float64 `json:"rating_rank"`
	FeaturedRank   float64 `json:"featured_rank"`
	RecencyRank    float64 `json:"recency_rank"`
}

func buildJSONDoc(p *domprod.Product) jsonDoc {
	stored := *p
	stored.SearchScore = nil

	created := p.EffectiveTime().Unix()
	rating := math.Round(p.Stats.Rating * 100)
	featured := 0.0
	if p.Featured {
		featured = featuredWeight
	}

	return jsonDoc{
		Product: stored,
		Index: indexFields{
			Featured:       boolTag(p.Featured),
			Freebie:        boolTag(p.Freebie),
			EffectivePrice: p.EffectivePrice(),
			Created:        created,
			Trend:          p.TrendScore(),
			RatingRank:     rating*reviewShift + float64(clamp(p.Stats.Reviews, reviewShift-1)),
			FeaturedRank:   featured + rating*ratingShift + float64(clamp(p.Stats.Downloads, ratingShift-1)),
			RecencyRank:    featured + float64(max(created, 0)),
		},
	}
}

// parseJSONDoc decodes a stored document. FT.SEARCH RETURN "$" and
// JSON.GET "$" both wrap the root in a single-element array.
func parseJSONDoc(raw string) (domprod.Product, error) {
	var docs []jsonDoc
	if err := json.Unmarshal([]byte(raw), &docs); err == nil {
		if len(docs) == 0 {
			return domprod.Product{}, fmt.Errorf("empty document")
		}
		return docs[0].Product, nil
	}

	var doc jsonDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return domprod.Product{}, fmt.Errorf("unmarshal product: %w", err)
	}
	return doc.Product, nil
}

func boolTag(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func clamp(v int64, limit float64) int64 {
	if v < 0 {
		return 0
	}
	if float64(v) > limit {
		return int64(limit)
	}
	return v
}
