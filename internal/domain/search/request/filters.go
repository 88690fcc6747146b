package request

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/sortby"
)

// Filters is the structured intent of one search. Every field is optional;
// an absent field places no constraint on its dimension. Only SortBy has a
// default, applied by New.
type Filters struct {
	Query          string          `json:"query,omitempty"`
	Categories     []string        `json:"categories,omitempty"`
	SortBy         sortby.Strategy `json:"sortBy"`
	Featured       *bool           `json:"featured,omitempty"`
	Freebie        *bool           `json:"freebie,omitempty"`
	Author         string          `json:"author,omitempty"`
	PriceRange     *PriceRange     `json:"priceRange,omitempty"`
	FileTypes      []string        `json:"fileTypes,omitempty"`
	CompatibleWith []string        `json:"compatibleWith,omitempty"`
	MinRating      *float64        `json:"minRating,omitempty"`
	DateRange      *DateRange      `json:"dateRange,omitempty"`
}

// HasQuery reports whether free-text search is requested.
func (f *Filters) HasQuery() bool { return f.Query != "" }

// ActiveDimensions counts the filter dimensions that constrain the result.
// The sort strategy is not a filter and is not counted.
func (f *Filters) ActiveDimensions() int {
	n := 0
	for _, present := range []bool{
		f.Query != "",
		len(f.Categories) > 0,
		f.Featured != nil,
		f.Freebie != nil,
		f.Author != "",
		f.PriceRange != nil,
		len(f.FileTypes) > 0,
		len(f.CompatibleWith) > 0,
		f.MinRating != nil,
		f.DateRange != nil,
	} {
		if present {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (f Filters) Clone() Filters {
	out := f
	out.Categories = cloneStrings(f.Categories)
	out.FileTypes = cloneStrings(f.FileTypes)
	out.CompatibleWith = cloneStrings(f.CompatibleWith)
	if f.Featured != nil {
		v := *f.Featured
		out.Featured = &v
	}
	if f.Freebie != nil {
		v := *f.Freebie
		out.Freebie = &v
	}
	if f.MinRating != nil {
		v := *f.MinRating
		out.MinRating = &v
	}
	if f.PriceRange != nil {
		v := *f.PriceRange
		out.PriceRange = &v
	}
	if f.DateRange != nil {
		v := *f.DateRange
		out.DateRange = &v
	}
	return out
}

// PriceRange is an inclusive effective-price window. Min <= Max is not enforced.
type PriceRange struct {
	Min float64
	Max float64
}

// Contains reports whether price lies within the inclusive range.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// MarshalJSON encodes the range as a [min, max] tuple.
func (r PriceRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{r.Min, r.Max})
}

// UnmarshalJSON decodes a [min, max] tuple.
func (r *PriceRange) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("price range: %w", err)
	}
	r.Min, r.Max = pair[0], pair[1]
	return nil
}

// DateRange is an inclusive timestamp window.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t lies within the inclusive range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// MarshalJSON encodes the range as a [from, to] tuple of RFC 3339 strings.
func (r DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{r.From.Format(time.RFC3339), r.To.Format(time.RFC3339)})
}

// UnmarshalJSON decodes a [from, to] tuple of RFC 3339 strings.
func (r *DateRange) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("date range: %w", err)
	}
	from, err := time.Parse(time.RFC3339, pair[0])
	if err != nil {
		return fmt.Errorf("date range from: %w", err)
	}
	to, err := time.Parse(time.RFC3339, pair[1])
	if err != nil {
		return fmt.Errorf("date range to: %w", err)
	}
	r.From, r.To = from, to
	return nil
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
