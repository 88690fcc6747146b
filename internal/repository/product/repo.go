// Package product stores catalog products as JSON documents and queries them
// through the FT index built by BuildIndex.
package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/antopucung/GodotTeko-sub003/internal/db"
	"github.com/antopucung/GodotTeko-sub003/internal/domain"
	domprod "github.com/antopucung/GodotTeko-sub003/internal/domain/product"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/request"
	"github.com/antopucung/GodotTeko-sub003/internal/logger"
)

// store is the consumer interface for product reads and writes (ISP).
type store interface {
	JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Search(ctx context.Context, q *db.Query) (*db.SearchResult, error)
	Count(ctx context.Context, q *db.Query) (int, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements usecase/search.RemoteCatalog over a RediSearch index.
type Repo struct {
	store     store
	indexName string
	keyPrefix string
}

// New creates a product repository bound to an index and key prefix.
func New(s store, indexName, keyPrefix string) *Repo {
	return &Repo{store: s, indexName: indexName, keyPrefix: keyPrefix}
}

// Find runs the structured query for f and returns one page plus the
// store-reported total. Free-text hits carry the store score.
func (r *Repo) Find(ctx context.Context, f request.Filters, offset, limit int) ([]domprod.Product, int, error) {
	q, err := BuildQuery(f, r.indexName, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("build query: %w", err)
	}

	sr, err := r.store.Search(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("search %s: %w", r.indexName, err)
	}
	if sr == nil {
		return []domprod.Product{}, 0, nil
	}

	products := make([]domprod.Product, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		raw := entry.Fields["$"]
		if raw == "" {
			// The page would come back short of its reported total.
			return nil, 0, fmt.Errorf("entry %s: missing document body", entry.Key)
		}
		p, err := parseJSONDoc(raw)
		if err != nil {
			return nil, 0, fmt.Errorf("decode %s: %w", entry.Key, err)
		}
		if p.ID == "" {
			p.ID = strings.TrimPrefix(entry.Key, r.keyPrefix)
		}
		if q.WithScores {
			p = p.WithScore(entry.Score)
		}
		products = append(products, p)
	}

	return products, sr.Total, nil
}

// Get returns a product by ID.
func (r *Repo) Get(ctx context.Context, id string) (domprod.Product, error) {
	key := r.key(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domprod.Product{}, domain.ErrNotFound
		}
		return domprod.Product{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	return parseJSONDoc(string(raw))
}

// Count returns the number of products in the index.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.Count(ctx, &db.Query{IndexName: r.indexName})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.indexName, err)
	}
	return n, nil
}

// EnsureIndex creates the product index unless it exists. With recreate the
// existing index is dropped first; documents are kept and reindexed by the store.
func (r *Repo) EnsureIndex(ctx context.Context, recreate bool) error {
	def, err := BuildIndex(r.indexName, r.keyPrefix)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	if recreate {
		if err := r.store.DropIndex(ctx, r.indexName); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
			return fmt.Errorf("drop index %s: %w", r.indexName, err)
		}
	} else {
		exists, err := r.store.IndexExists(ctx, r.indexName)
		if err != nil {
			return fmt.Errorf("check index %s: %w", r.indexName, err)
		}
		if exists {
			return nil
		}
	}

	logger.FromContext(ctx).Info("Creating search index", zap.Stringer("definition", def))
	if err := r.store.CreateIndex(ctx, def); err != nil {
		// Lost a race with another creator.
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", r.indexName, err)
	}
	return nil
}

// Put writes products in batches of batchSize. Products without an ID are rejected.
func (r *Repo) Put(ctx context.Context, products []domprod.Product, batchSize int) error {
	if batchSize <= 0 {
		batchSize = len(products)
	}

	items := make([]db.JSONSetItem, 0, min(batchSize, len(products)))
	flush := func() error {
		if len(items) == 0 {
			return nil
		}
		if err := r.store.JSONSetMulti(ctx, items); err != nil {
			return fmt.Errorf("json.set batch: %w", err)
		}
		items = items[:0]
		return nil
	}

	for i := range products {
		p := &products[i]
		if p.ID == "" {
			return fmt.Errorf("product %d (%q): %w: missing id", i, p.Title, domain.ErrInvalidProduct)
		}
		data, err := json.Marshal(buildJSONDoc(p))
		if err != nil {
			return fmt.Errorf("marshal product %s: %w", p.ID, err)
		}
		items = append(items, db.JSONSetItem{Key: r.key(p.ID), Path: "$", Data: data})
		if len(items) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

func (r *Repo) key(id string) string {
	return r.keyPrefix + id
}
