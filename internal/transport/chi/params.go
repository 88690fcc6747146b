package chi

import (
	"net/url"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"

	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/request"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/sortby"
)

// dateOnly is the calendar-date layout accepted by dateFrom/dateTo.
const dateOnly = "2006-01-02"

// searchParams are the query-string parameters of GET /api/products.
type searchParams struct {
	Query          *string
	Categories     *[]string
	SortBy         *string
	Featured       *bool
	Freebie        *bool
	Author         *string
	PriceMin       *float64
	PriceMax       *float64
	FileTypes      *[]string
	CompatibleWith *[]string
	MinRating      *float64
	DateFrom       *string
	DateTo         *string
	Page           *int
	Limit          *int
}

// bindSearchParams binds every known parameter independently. A malformed
// value leaves its field nil, so the dimension is simply not constrained.
func bindSearchParams(q url.Values) searchParams {
	return searchParams{
		Query:          scalar[string](q, "query"),
		Categories:     csv(q, "categories"),
		SortBy:         scalar[string](q, "sortBy"),
		Featured:       scalar[bool](q, "featured"),
		Freebie:        scalar[bool](q, "freebie"),
		Author:         scalar[string](q, "author"),
		PriceMin:       scalar[float64](q, "priceMin"),
		PriceMax:       scalar[float64](q, "priceMax"),
		FileTypes:      csv(q, "fileTypes"),
		CompatibleWith: csv(q, "compatibleWith"),
		MinRating:      scalar[float64](q, "minRating"),
		DateFrom:       scalar[string](q, "dateFrom"),
		DateTo:         scalar[string](q, "dateTo"),
		Page:           scalar[int](q, "page"),
		Limit:          scalar[int](q, "limit"),
	}
}

// scalar binds a single-valued parameter. Exploded form style keeps commas
// inside the value, so free-text queries are not split.
func scalar[T any](q url.Values, name string) *T {
	var v *T
	if err := runtime.BindQueryParameter("form", true, false, name, q, &v); err != nil {
		return nil
	}
	return v
}

// csv binds a comma-separated list parameter.
func csv(q url.Values, name string) *[]string {
	var v *[]string
	if err := runtime.BindQueryParameter("form", false, false, name, q, &v); err != nil {
		return nil
	}
	return v
}

// filters converts bound parameters into a filter set. Paired bounds
// (priceMin/priceMax, dateFrom/dateTo) apply only when both are valid.
func (p *searchParams) filters() request.Filters {
	var f request.Filters

	if p.Query != nil {
		f.Query = strings.TrimSpace(*p.Query)
	}
	f.Categories = list(p.Categories)
	if p.SortBy != nil {
		f.SortBy = sortby.Strategy(strings.TrimSpace(*p.SortBy))
	}
	f.Featured = p.Featured
	f.Freebie = p.Freebie
	if p.Author != nil {
		f.Author = strings.TrimSpace(*p.Author)
	}
	if p.PriceMin != nil && p.PriceMax != nil {
		f.PriceRange = &request.PriceRange{Min: *p.PriceMin, Max: *p.PriceMax}
	}
	f.FileTypes = list(p.FileTypes)
	f.CompatibleWith = list(p.CompatibleWith)
	f.MinRating = p.MinRating
	if p.DateFrom != nil && p.DateTo != nil {
		from, errFrom := parseDate(*p.DateFrom)
		to, errTo := parseDate(*p.DateTo)
		if errFrom == nil && errTo == nil {
			f.DateRange = &request.DateRange{From: from, To: to}
		}
	}
	return f
}

func (p *searchParams) page() int  { return deref(p.Page) }
func (p *searchParams) limit() int { return deref(p.Limit) }

// parseDate accepts RFC 3339 timestamps and calendar dates; a bare date
// means midnight UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(dateOnly, s) //nolint:wrapcheck // caller only checks for failure
}

// list trims entries and drops empty ones; nil when nothing remains.
func list(p *[]string) []string {
	if p == nil {
		return nil
	}
	var out []string
	for _, v := range *p {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
