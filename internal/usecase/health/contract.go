package health

import "context"

// DBPinger checks content store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogChecker reports whether the local catalog snapshot is ready.
type CatalogChecker interface {
	Loaded() bool
}
