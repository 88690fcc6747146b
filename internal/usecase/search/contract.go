package search

import (
	"context"

	"github.com/antopucung/GodotTeko-sub003/internal/domain/product"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/request"
)

// RemoteCatalog runs structured queries against the content store.
// Free-text and relevance ordering are evaluated server-side; file types,
// compatibility and the date window are not.
type RemoteCatalog interface {
	Find(ctx context.Context, f request.Filters, offset, limit int) ([]product.Product, int, error)
	Get(ctx context.Context, id string) (product.Product, error)
}

// LocalCatalog provides the complete in-process product list.
type LocalCatalog interface {
	All(ctx context.Context) ([]product.Product, error)
}
