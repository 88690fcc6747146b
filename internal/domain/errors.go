package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery signals search parameters that cannot be served.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidProduct signals a catalog record that cannot be stored.
	ErrInvalidProduct = errors.New("invalid product")
	// ErrRemoteUnavailable signals that the remote content store failed or is not configured.
	ErrRemoteUnavailable = errors.New("remote catalog unavailable")
	// ErrCatalogUnavailable signals that neither the remote store nor the local catalog could answer.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrCatalogNotLoaded signals that the local catalog snapshot has not been loaded yet.
	ErrCatalogNotLoaded = errors.New("local catalog not loaded")
)
