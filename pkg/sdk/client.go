package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const productsPath = "/api/products"

// Client talks to the catalog search API.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	apiKey   string
	pageSize int
	cache    *ResultCache
	obs      *observer
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		pageSize:      DefaultPageSize,
		cacheCapacity: DefaultCacheCapacity,
		cacheTTL:      DefaultCacheTTL,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("catalog: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("catalog: base url %q must be absolute", baseURL)
	}
	if cfg.pageSize <= 0 {
		return nil, errors.New("catalog: page size must be positive")
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}

	var cache *ResultCache
	if !cfg.cacheDisabled {
		cache, err = NewResultCache(cfg.cacheCapacity, cfg.cacheTTL)
		if err != nil {
			return nil, err
		}
		if cfg.now != nil {
			cache.now = cfg.now
		}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:  u,
		http:     hc,
		apiKey:   cfg.apiKey,
		pageSize: cfg.pageSize,
		cache:    cache,
		obs:      obs,
	}, nil
}

// PageSize is the limit sent with every search.
func (c *Client) PageSize() int { return c.pageSize }

// Cache returns the result cache, nil when caching is disabled.
func (c *Client) Cache() *ResultCache { return c.cache }

// Search fetches one page of results. Pages served by the server's local
// fallback are returned but not cached.
func (c *Client) Search(ctx context.Context, f Filters, page int) (env Envelope, err error) {
	if page < 1 {
		page = 1
	}
	if c.cache != nil {
		if cached, ok := c.cache.Get(f, page); ok {
			c.obs.cacheLookup(true)
			return cached, nil
		}
		c.obs.cacheLookup(false)
	}

	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	q := EncodeFilters(&f)
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(c.pageSize))

	if err = c.get(ctx, productsPath, q, &env); err != nil {
		return Envelope{}, err
	}
	if c.cache != nil && !env.Meta.Fallback {
		c.cache.Set(f, page, &env)
	}
	return env, nil
}

// Product fetches one product by ID. A missing product yields an error
// matching ErrNotFound.
func (c *Client) Product(ctx context.Context, id string) (out Product, err error) {
	start := time.Now()
	defer func() { c.obs.observe("product", start, err) }()

	var body struct {
		Data Product `json:"data"`
	}
	if err = c.get(ctx, productsPath+"/"+url.PathEscape(id), nil, &body); err != nil {
		return Product{}, err
	}
	return body.Data, nil
}

// Suggest returns title suggestions for a partial query.
func (c *Client) Suggest(ctx context.Context, q string, limit int) (out []Suggestion, err error) {
	start := time.Now()
	defer func() { c.obs.observe("suggest", start, err) }()

	v := url.Values{"q": {q}}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var body struct {
		Data []Suggestion `json:"data"`
	}
	if err = c.get(ctx, productsPath+"/suggest", v, &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

// Facets returns the values available for filtering.
func (c *Client) Facets(ctx context.Context) (out Facets, err error) {
	start := time.Now()
	defer func() { c.obs.observe("facets", start, err) }()

	if err = c.get(ctx, productsPath+"/filters", nil, &out); err != nil {
		return Facets{}, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := *c.baseURL
	u.Path += path
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog: decode %s: %w", path, err)
	}
	return nil
}

// decodeAPIError reads both error shapes: {code, message} and the search
// envelope {error, message}.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Code    string `json:"code"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(data, &body) == nil {
		apiErr.Code = body.Code
		if apiErr.Code == "" {
			apiErr.Code = body.Error
		}
		apiErr.Message = body.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// EncodeFilters renders filters as GET /api/products query parameters.
// Lists are comma-joined; paired bounds are sent as both ends.
func EncodeFilters(f *Filters) url.Values {
	v := url.Values{}
	if q := strings.TrimSpace(f.Query); q != "" {
		v.Set("query", q)
	}
	if len(f.Categories) > 0 {
		v.Set("categories", strings.Join(f.Categories, ","))
	}
	if f.SortBy != "" {
		v.Set("sortBy", string(f.SortBy))
	}
	if f.Featured != nil {
		v.Set("featured", strconv.FormatBool(*f.Featured))
	}
	if f.Freebie != nil {
		v.Set("freebie", strconv.FormatBool(*f.Freebie))
	}
	if a := strings.TrimSpace(f.Author); a != "" {
		v.Set("author", a)
	}
	if f.PriceRange != nil {
		v.Set("priceMin", formatFloat(f.PriceRange.Min))
		v.Set("priceMax", formatFloat(f.PriceRange.Max))
	}
	if len(f.FileTypes) > 0 {
		v.Set("fileTypes", strings.Join(f.FileTypes, ","))
	}
	if len(f.CompatibleWith) > 0 {
		v.Set("compatibleWith", strings.Join(f.CompatibleWith, ","))
	}
	if f.MinRating != nil {
		v.Set("minRating", formatFloat(*f.MinRating))
	}
	if f.DateRange != nil {
		v.Set("dateFrom", f.DateRange.From.UTC().Format(time.RFC3339))
		v.Set("dateTo", f.DateRange.To.UTC().Format(time.RFC3339))
	}
	return v
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
