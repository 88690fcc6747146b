package catalog

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheEntry struct {
	env      Envelope
	storedAt time.Time
}

// ResultCache keeps recent search pages keyed by normalized filters and page.
// Capacity is enforced with LRU eviction; entries older than the TTL are misses.
// Safe for concurrent use.
type ResultCache struct {
	entries *lru.Cache[string, cacheEntry]
	ttl     time.Duration
	now     func() time.Time
}

// NewResultCache creates a cache holding at most capacity pages for ttl.
// A zero ttl never expires entries.
func NewResultCache(capacity int, ttl time.Duration) (*ResultCache, error) {
	entries, err := lru.New[string, cacheEntry](capacity)
	if err != nil {
		return nil, fmt.Errorf("catalog: result cache: %w", err)
	}
	return &ResultCache{entries: entries, ttl: ttl, now: time.Now}, nil
}

// Get returns a copy of the cached page. Expired entries are removed.
func (c *ResultCache) Get(f Filters, page int) (Envelope, bool) {
	key := CacheKey(f, page)
	e, ok := c.entries.Get(key)
	if !ok {
		return Envelope{}, false
	}
	if c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl {
		c.entries.Remove(key)
		return Envelope{}, false
	}
	return cloneEnvelope(&e.env), true
}

// Set stores a copy of env.
func (c *ResultCache) Set(f Filters, page int, env *Envelope) {
	c.entries.Add(CacheKey(f, page), cacheEntry{env: cloneEnvelope(env), storedAt: c.now()})
}

// Len reports the number of entries, expired ones included.
func (c *ResultCache) Len() int { return c.entries.Len() }

// Purge drops every entry.
func (c *ResultCache) Purge() { c.entries.Purge() }

// CacheKey encodes filters and page with sorted keys and sorted list values,
// so equivalent requests share one entry.
func CacheKey(f Filters, page int) string {
	n := f.Clone()
	if n.SortBy == "" {
		n.SortBy = SortRelevance
	}
	slices.Sort(n.Categories)
	slices.Sort(n.FileTypes)
	slices.Sort(n.CompatibleWith)
	v := EncodeFilters(&n)
	v.Set("page", strconv.Itoa(page))
	return v.Encode()
}

func cloneEnvelope(env *Envelope) Envelope {
	out := *env
	if env.Data != nil {
		out.Data = make([]Product, len(env.Data))
		for i := range env.Data {
			out.Data[i] = cloneProduct(&env.Data[i])
		}
	}
	out.Meta.Filters = env.Meta.Filters.Clone()
	if env.Meta.Performance != nil {
		perf := *env.Meta.Performance
		out.Meta.Performance = &perf
	}
	return out
}

func cloneProduct(p *Product) Product {
	out := *p
	out.Categories = slices.Clone(p.Categories)
	out.Tags = slices.Clone(p.Tags)
	out.CompatibleWith = slices.Clone(p.CompatibleWith)
	out.FileTypes = slices.Clone(p.FileTypes)
	if p.SalePrice != nil {
		v := *p.SalePrice
		out.SalePrice = &v
	}
	if p.SearchScore != nil {
		v := *p.SearchScore
		out.SearchScore = &v
	}
	return out
}
