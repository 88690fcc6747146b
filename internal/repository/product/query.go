package product

import (
	"fmt"
	"strings"

	"github.com/antopucung/GodotTeko-sub003/internal/db"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/filter"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/request"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/sortby"
)

// returnRoot fetches the whole JSON document for each hit.
var returnRoot = []string{"$"}

// BuildQuery translates a filter set into a structured store query.
// File types, compatibility and the date window are left to the caller:
// they are applied in process after the remote page arrives.
func BuildQuery(f request.Filters, index string, offset, limit int) (*db.Query, error) {
	must, err := buildConditions(&f)
	if err != nil {
		return nil, err
	}
	expr, err := filter.NewExpression(must, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("build expression: %w", err)
	}

	q := &db.Query{
		IndexName:    index,
		Filters:      expr,
		Offset:       offset,
		Limit:        limit,
		ReturnFields: returnRoot,
	}
	applySort(q, f.SortBy, f.HasQuery())
	return q, nil
}

func buildConditions(f *request.Filters) ([]filter.Condition, error) {
	var must []filter.Condition

	if term := strings.ToLower(strings.TrimSpace(f.Query)); term != "" {
		texts := make([]filter.Condition, 0, len(textFields))
		for _, tf := range textFields {
			c, err := filter.NewText(tf.alias, term, tf.weight)
			if err != nil {
				return nil, fmt.Errorf("text condition: %w", err)
			}
			texts = append(texts, c)
		}
		c, err := filter.NewAnyOf(texts...)
		if err != nil {
			return nil, fmt.Errorf("text condition: %w", err)
		}
		must = append(must, c)
	}

	if len(f.Categories) > 0 {
		c, err := anyTag(fieldCategorySlug, f.Categories)
		if err != nil {
			return nil, err
		}
		must = append(must, c)
	}

	if f.Featured != nil {
		c, err := filter.NewMatch(fieldFeatured, boolTag(*f.Featured))
		if err != nil {
			return nil, fmt.Errorf("featured condition: %w", err)
		}
		must = append(must, c)
	}

	if f.Freebie != nil {
		c, err := filter.NewMatch(fieldFreebie, boolTag(*f.Freebie))
		if err != nil {
			return nil, fmt.Errorf("freebie condition: %w", err)
		}
		must = append(must, c)
	}

	if f.PriceRange != nil {
		lo, hi := f.PriceRange.Min, f.PriceRange.Max
		rng, err := filter.NewRangeFilter(nil, &lo, nil, &hi)
		if err != nil {
			return nil, fmt.Errorf("price range: %w", err)
		}
		c, err := filter.NewRange(fieldEffectivePrice, rng)
		if err != nil {
			return nil, fmt.Errorf("price condition: %w", err)
		}
		must = append(must, c)
	}

	if author := strings.TrimSpace(f.Author); author != "" {
		bySlug, err := filter.NewMatch(fieldAuthorSlug, author)
		if err != nil {
			return nil, fmt.Errorf("author condition: %w", err)
		}
		byName, err := filter.NewText(fieldAuthorName, strings.ToLower(author), 0)
		if err != nil {
			return nil, fmt.Errorf("author condition: %w", err)
		}
		c, err := filter.NewAnyOf(bySlug, byName)
		if err != nil {
			return nil, fmt.Errorf("author condition: %w", err)
		}
		must = append(must, c)
	}

	if f.MinRating != nil {
		lo := *f.MinRating
		rng, err := filter.NewRangeFilter(nil, &lo, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("rating range: %w", err)
		}
		c, err := filter.NewRange(fieldRating, rng)
		if err != nil {
			return nil, fmt.Errorf("rating condition: %w", err)
		}
		must = append(must, c)
	}

	return must, nil
}

func anyTag(key string, values []string) (filter.Condition, error) {
	conds := make([]filter.Condition, 0, len(values))
	for _, v := range values {
		c, err := filter.NewMatch(key, v)
		if err != nil {
			return filter.Condition{}, fmt.Errorf("%s condition: %w", key, err)
		}
		conds = append(conds, c)
	}
	c, err := filter.NewAnyOf(conds...)
	if err != nil {
		return filter.Condition{}, fmt.Errorf("%s condition: %w", key, err)
	}
	return c, nil
}

// applySort maps a strategy onto a sortable index field.
// Relevance with a text query keeps the store's own scoring order.
func applySort(q *db.Query, strategy sortby.Strategy, textActive bool) {
	switch strategy {
	case sortby.Relevance:
		if textActive {
			q.WithScores = true
			return
		}
		q.SortBy, q.SortDesc = fieldFeaturedRank, true
	case sortby.Newest:
		q.SortBy, q.SortDesc = fieldCreated, true
	case sortby.Oldest:
		q.SortBy = fieldCreated
	case sortby.PriceLow:
		q.SortBy = fieldEffectivePrice
	case sortby.PriceHigh:
		q.SortBy, q.SortDesc = fieldEffectivePrice, true
	case sortby.Popular, sortby.Downloads:
		q.SortBy, q.SortDesc = fieldDownloads, true
	case sortby.Rating:
		q.SortBy, q.SortDesc = fieldRatingRank, true
	case sortby.Trending:
		q.SortBy, q.SortDesc = fieldTrend, true
	case sortby.Alphabetical:
		q.SortBy = fieldTitle
	default:
		q.SortBy, q.SortDesc = fieldRecencyRank, true
	}
}
