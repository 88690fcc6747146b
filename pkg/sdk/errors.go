package catalog

import (
	"errors"
	"fmt"

	"github.com/antopucung/GodotTeko-sub003/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound           = domain.ErrNotFound
	ErrInvalidQuery       = domain.ErrInvalidQuery
	ErrCatalogUnavailable = domain.ErrCatalogUnavailable
	ErrUnauthorized       = errors.New("unauthorized")
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap maps the error code to a sentinel so errors.Is works across the wire.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "not_found":
		return ErrNotFound
	case "bad_request":
		return ErrInvalidQuery
	case "catalog_unavailable":
		return ErrCatalogUnavailable
	case "unauthorized":
		return ErrUnauthorized
	}
	return nil
}
