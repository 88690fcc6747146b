package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/antopucung/GodotTeko-sub003/internal/domain/product"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/result"
)

// DefaultSuggestLimit caps suggestions when the caller does not.
const DefaultSuggestLimit = 8

// titles adapts a product list to fuzzy.Source.
type titles []product.Product

func (t titles) String(i int) string { return strings.ToLower(t[i].Title) }

func (t titles) Len() int { return len(t) }

// Suggest returns up to limit products whose titles fuzzy-match q, best first.
// Matched holds the byte offsets of the matched characters in the title.
func (s *Service) Suggest(ctx context.Context, q string, limit int) ([]result.Suggestion, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return []result.Suggestion{}, nil
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	if s.local == nil {
		return nil, fmt.Errorf("suggest: no local catalog configured")
	}

	all, err := s.local.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	matches := fuzzy.FindFrom(q, titles(all))
	out := make([]result.Suggestion, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		p := &all[m.Index]
		out = append(out, result.Suggestion{
			ID:      p.ID,
			Title:   p.Title,
			Slug:    p.Slug,
			Score:   m.Score,
			Matched: m.MatchedIndexes,
		})
	}
	return out, nil
}
