// Package snapshot holds the in-process copy of the catalog used when the
// remote store cannot answer, and for suggestions and facets.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/antopucung/GodotTeko-sub003/internal/domain"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/product"
	"github.com/antopucung/GodotTeko-sub003/internal/logger"
)

// maxParallelReads bounds concurrent snapshot file reads.
const maxParallelReads = 4

// Catalog is a read-mostly product list loaded from JSON snapshot files.
// Safe for concurrent use; Load swaps the whole list at once.
type Catalog struct {
	paths []string

	mu       sync.RWMutex
	products []product.Product
	loaded   bool
}

// New creates a catalog that loads from paths.
func New(paths []string) *Catalog {
	return &Catalog{paths: slices.Clone(paths)}
}

// FromProducts creates an already loaded catalog.
func FromProducts(products []product.Product) *Catalog {
	return &Catalog{products: slices.Clone(products), loaded: true}
}

// Load reads every snapshot file concurrently and replaces the catalog.
// Files keep their configured order; a product ID seen twice keeps its first record.
func (c *Catalog) Load(ctx context.Context) error {
	parts := make([][]product.Product, len(c.paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)
	for i, path := range c.paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			products, err := readFile(path)
			if err != nil {
				return err
			}
			parts[i] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	merged := merge(parts)

	c.mu.Lock()
	c.products = merged
	c.loaded = true
	c.mu.Unlock()

	logger.FromContext(ctx).Info("catalog snapshot loaded",
		zap.Int("files", len(c.paths)),
		zap.Int("products", len(merged)),
	)
	return nil
}

// All returns the full catalog. The slice is a copy; the products must be
// treated as read-only.
func (c *Catalog) All(_ context.Context) ([]product.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return nil, domain.ErrCatalogNotLoaded
	}
	return slices.Clone(c.products), nil
}

// Loaded reports whether a snapshot has been loaded.
func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Len returns the number of loaded products.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// envelope is the alternative file layout: {"products": [...]}.
type envelope struct {
	Products []product.Product `json:"products"`
}

// readFile decodes a snapshot file: a Parquet export, a JSON array of
// products or an object with a "products" array.
func readFile(path string) ([]product.Product, error) {
	if isParquet(path) {
		return readParquet(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	products, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return products, nil
}

// Decode parses snapshot bytes in either supported layout.
func Decode(data []byte) ([]product.Product, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty snapshot")
	}

	if trimmed[0] == '[' {
		var products []product.Product
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return nil, err
		}
		return products, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	return env.Products, nil
}

func merge(parts [][]product.Product) []product.Product {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]product.Product, 0, n)
	seen := make(map[string]struct{}, n)
	for _, part := range parts {
		for _, p := range part {
			if p.ID != "" {
				if _, dup := seen[p.ID]; dup {
					continue
				}
				seen[p.ID] = struct{}{}
			}
			p.SearchScore = nil
			out = append(out, p)
		}
	}
	return out
}
