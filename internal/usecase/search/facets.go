package search

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/result"
)

// Facets summarizes the local catalog for building filter controls.
func (s *Service) Facets(ctx context.Context) (result.Facets, error) {
	if s.local == nil {
		return result.Facets{}, fmt.Errorf("facets: no local catalog configured")
	}
	all, err := s.local.All(ctx)
	if err != nil {
		return result.Facets{}, fmt.Errorf("facets: %w", err)
	}

	categories := newCounter()
	fileTypes := newCounter()
	compatible := newCounter()
	lo, hi := math.Inf(1), math.Inf(-1)

	for i := range all {
		p := &all[i]
		for _, c := range p.Categories {
			categories.add(c.Slug, c.Name)
		}
		for _, ft := range p.FileTypes {
			fileTypes.add(strings.ToLower(ft), ft)
		}
		for _, cw := range p.CompatibleWith {
			compatible.add(strings.ToLower(cw), cw)
		}
		price := p.EffectivePrice()
		lo, hi = math.Min(lo, price), math.Max(hi, price)
	}

	f := result.Facets{
		Categories:     categories.sorted(),
		FileTypes:      fileTypes.sorted(),
		CompatibleWith: compatible.sorted(),
		Total:          len(all),
	}
	if len(all) > 0 {
		f.PriceRange = [2]float64{lo, hi}
	}
	return f, nil
}

// counter tallies facet values, keeping the first label seen for each.
type counter struct {
	counts map[string]*result.FacetCount
}

func newCounter() *counter {
	return &counter{counts: make(map[string]*result.FacetCount)}
}

func (c *counter) add(value, label string) {
	if value == "" {
		return
	}
	if fc, ok := c.counts[value]; ok {
		fc.Count++
		return
	}
	c.counts[value] = &result.FacetCount{Value: value, Label: label, Count: 1}
}

// sorted orders by count descending, then value.
func (c *counter) sorted() []result.FacetCount {
	out := make([]result.FacetCount, 0, len(c.counts))
	for _, fc := range c.counts {
		out = append(out, *fc)
	}
	slices.SortFunc(out, func(a, b result.FacetCount) int {
		if r := cmp.Compare(b.Count, a.Count); r != 0 {
			return r
		}
		return strings.Compare(a.Value, b.Value)
	})
	return out
}
