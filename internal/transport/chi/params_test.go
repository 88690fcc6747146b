package chi

import (
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/request"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/sortby"
)

func bind(t *testing.T, raw string) request.Filters {
	t.Helper()
	q, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("parse query %q: %v", raw, err)
	}
	p := bindSearchParams(q)
	return p.filters()
}

func TestBindSearchParams_Empty(t *testing.T) {
	f := bind(t, "")
	if f.ActiveDimensions() != 0 {
		t.Errorf("ActiveDimensions() = %d, want 0", f.ActiveDimensions())
	}
	if f.SortBy != "" {
		t.Errorf("SortBy = %q, want empty before normalization", f.SortBy)
	}
}

func TestBindSearchParams_AllDimensions(t *testing.T) {
	f := bind(t, "query=+City+Icons+&categories=icons,fonts&sortBy=price_low"+
		"&featured=true&freebie=false&author=jane&priceMin=5&priceMax=50"+
		"&fileTypes=SVG,%20PNG&compatibleWith=figma&minRating=4.5"+
		"&dateFrom=2024-01-01&dateTo=2024-12-31T23:59:59Z")

	if f.Query != "City Icons" {
		t.Errorf("Query = %q, want trimmed", f.Query)
	}
	if !reflect.DeepEqual(f.Categories, []string{"icons", "fonts"}) {
		t.Errorf("Categories = %v", f.Categories)
	}
	if f.SortBy != sortby.PriceLow {
		t.Errorf("SortBy = %q, want %q", f.SortBy, sortby.PriceLow)
	}
	if f.Featured == nil || !*f.Featured {
		t.Errorf("Featured = %v, want true", f.Featured)
	}
	if f.Freebie == nil || *f.Freebie {
		t.Errorf("Freebie = %v, want false", f.Freebie)
	}
	if f.Author != "jane" {
		t.Errorf("Author = %q", f.Author)
	}
	if f.PriceRange == nil || f.PriceRange.Min != 5 || f.PriceRange.Max != 50 {
		t.Errorf("PriceRange = %+v, want [5, 50]", f.PriceRange)
	}
	if !reflect.DeepEqual(f.FileTypes, []string{"SVG", "PNG"}) {
		t.Errorf("FileTypes = %v", f.FileTypes)
	}
	if !reflect.DeepEqual(f.CompatibleWith, []string{"figma"}) {
		t.Errorf("CompatibleWith = %v", f.CompatibleWith)
	}
	if f.MinRating == nil || *f.MinRating != 4.5 {
		t.Errorf("MinRating = %v, want 4.5", f.MinRating)
	}
	if f.DateRange == nil {
		t.Fatal("DateRange = nil")
	}
	wantFrom := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !f.DateRange.From.Equal(wantFrom) {
		t.Errorf("DateRange.From = %v, want %v", f.DateRange.From, wantFrom)
	}
	wantTo := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	if !f.DateRange.To.Equal(wantTo) {
		t.Errorf("DateRange.To = %v, want %v", f.DateRange.To, wantTo)
	}
	if got := f.ActiveDimensions(); got != 10 {
		t.Errorf("ActiveDimensions() = %d, want 10", got)
	}
}

func TestBindSearchParams_QueryKeepsCommas(t *testing.T) {
	f := bind(t, "query=icons,+fonts")
	if f.Query != "icons, fonts" {
		t.Errorf("Query = %q, want %q", f.Query, "icons, fonts")
	}
}

func TestBindSearchParams_MalformedValuesIgnored(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		check func(request.Filters) bool
	}{
		{"bad bool", "featured=maybe", func(f request.Filters) bool { return f.Featured == nil }},
		{"bad rating", "minRating=high", func(f request.Filters) bool { return f.MinRating == nil }},
		{"price min only", "priceMin=10", func(f request.Filters) bool { return f.PriceRange == nil }},
		{"price max bad", "priceMin=10&priceMax=lots", func(f request.Filters) bool { return f.PriceRange == nil }},
		{"date from only", "dateFrom=2024-01-01", func(f request.Filters) bool { return f.DateRange == nil }},
		{"date bad", "dateFrom=yesterday&dateTo=2024-01-01", func(f request.Filters) bool { return f.DateRange == nil }},
		{"empty list items", "categories=,+,", func(f request.Filters) bool { return f.Categories == nil }},
		{"blank query", "query=+++", func(f request.Filters) bool { return f.Query == "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if f := bind(t, tt.raw); !tt.check(f) {
				t.Errorf("%s: dimension should be absent, got %+v", tt.raw, f)
			}
		})
	}
}

func TestBindSearchParams_Paging(t *testing.T) {
	q, _ := url.ParseQuery("page=3&limit=50")
	p := bindSearchParams(q)
	if p.page() != 3 || p.limit() != 50 {
		t.Errorf("page/limit = %d/%d, want 3/50", p.page(), p.limit())
	}

	q, _ = url.ParseQuery("page=x&limit=")
	p = bindSearchParams(q)
	if p.page() != 0 || p.limit() != 0 {
		t.Errorf("malformed page/limit = %d/%d, want 0/0", p.page(), p.limit())
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), false},
		{" 2024-06-01 ", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), false},
		{"2024-06-01T12:30:00Z", time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC), false},
		{"06/01/2024", time.Time{}, true},
		{"", time.Time{}, true},
	}
	for _, tt := range tests {
		got, err := parseDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDate(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !got.Equal(tt.want) {
			t.Errorf("parseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
