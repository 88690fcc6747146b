package catalog

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Defaults for a new Client.
const (
	DefaultPageSize      = 20
	DefaultCacheCapacity = 100
	DefaultCacheTTL      = 5 * time.Minute
	defaultTimeout       = 10 * time.Second
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	httpClient *http.Client
	apiKey     string
	pageSize   int

	cacheDisabled bool
	cacheCapacity int
	cacheTTL      time.Duration
	now           func() time.Time

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithHTTPClient replaces the default HTTP client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithAPIKey sends the key as a Bearer token.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = key
	})
}

// WithPageSize sets the limit sent with every search. Default: 20.
func WithPageSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.pageSize = n
	})
}

// WithCache sizes the result cache. Defaults: 100 entries, 5 minutes.
func WithCache(capacity int, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheCapacity = capacity
		c.cacheTTL = ttl
	})
}

// WithoutCache disables result caching.
func WithoutCache() Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheDisabled = true
	})
}

// WithClock overrides the time source used for cache expiry.
func WithClock(now func() time.Time) Option {
	return optionFunc(func(c *clientConfig) {
		c.now = now
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts, durations and
// cache lookups) on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
