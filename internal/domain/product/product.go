// Package product holds the catalog record searched, filtered and ranked by the API.
package product

import "time"

// Product is one catalog item. Records are read-only for search; the only
// request-scoped mutation is SearchScore, which is set on a copy.
type Product struct {
	ID               string    `json:"_id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug,omitempty"`
	Description      string    `json:"description,omitempty"`
	ShortDescription string    `json:"shortDescription,omitempty"`
	Price            float64   `json:"price"`
	SalePrice        *float64  `json:"salePrice,omitempty"`
	Categories       []Ref     `json:"categories,omitempty"`
	Tags             []Ref     `json:"tags,omitempty"`
	Author           Author    `json:"author"`
	CompatibleWith   []string  `json:"compatibleWith,omitempty"`
	FileTypes        []string  `json:"fileTypes,omitempty"`
	Stats            Stats     `json:"stats"`
	Featured         bool      `json:"featured"`
	Freebie          bool      `json:"freebie"`
	CreatedAt        time.Time `json:"_createdAt"`
	UpdatedAt        time.Time `json:"_updatedAt"`
	SearchScore      *float64  `json:"searchScore,omitempty"`
}

// Ref is a named, slugged reference such as a category or a tag.
type Ref struct {
	Name string `json:"title"`
	Slug string `json:"slug"`
}

// Author identifies the creator of a product.
type Author struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// Stats are the engagement counters of a product. Missing values decode as 0.
type Stats struct {
	Rating    float64 `json:"rating"`
	Downloads int64   `json:"downloads"`
	Reviews   int64   `json:"reviews"`
	Likes     int64   `json:"likes"`
}

// EffectivePrice is the sale price when present, else the list price.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// EffectiveTime is the creation timestamp, falling back to the update timestamp.
func (p *Product) EffectiveTime() time.Time {
	if !p.CreatedAt.IsZero() {
		return p.CreatedAt
	}
	return p.UpdatedAt
}

// Score returns the attached relevance score, or 0 when the product was not scored.
func (p *Product) Score() float64 {
	if p.SearchScore == nil {
		return 0
	}
	return *p.SearchScore
}

// TrendScore is the composite used by the trending ordering.
func (p *Product) TrendScore() float64 {
	return float64(p.Stats.Downloads)*0.3 + p.Stats.Rating*2
}

// WithScore returns a copy carrying the given relevance score.
func (p *Product) WithScore(score float64) Product {
	out := *p
	out.SearchScore = &score
	return out
}

// CategoryNames returns the display names of the product categories.
func (p *Product) CategoryNames() []string { return refNames(p.Categories) }

// TagNames returns the display names of the product tags.
func (p *Product) TagNames() []string { return refNames(p.Tags) }

// CategorySlugs returns the slugs of the product categories.
func (p *Product) CategorySlugs() []string {
	out := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		if c.Slug != "" {
			out = append(out, c.Slug)
		}
	}
	return out
}

func refNames(refs []Ref) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if r.Name != "" {
			out = append(out, r.Name)
		}
	}
	return out
}
