package result

import (
	"github.com/antopucung/GodotTeko-sub003/internal/domain/product"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/request"
)

// Envelope is the response of one search: the page of products plus metadata.
type Envelope struct {
	Data []product.Product `json:"data"`
	Meta Meta              `json:"meta"`
}

// Meta describes the page and how it was produced.
type Meta struct {
	Page            int             `json:"page"`
	Limit           int             `json:"limit"`
	Total           int             `json:"total"`
	TotalPages      int             `json:"totalPages"`
	HasNextPage     bool            `json:"hasNextPage"`
	HasPreviousPage bool            `json:"hasPreviousPage"`
	Filters         request.Filters `json:"filters"`
	SearchPerformed bool            `json:"searchPerformed"`
	Performance     *Performance    `json:"performance,omitempty"`
	// Fallback marks results served from the local catalog after the remote store failed.
	Fallback bool   `json:"fallback,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Performance carries request diagnostics.
type Performance struct {
	ResultCount int    `json:"resultCount"`
	Query       string `json:"query,omitempty"`
	FilterCount int    `json:"filterCount"`
	TookMs      int64  `json:"tookMs"`
}

// Pagination computes the page metadata for a total match count.
// totalPages = ceil(total/limit), hasNext = page < totalPages, hasPrevious = page > 1.
func Pagination(page, limit, total int) Meta {
	m := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		m.TotalPages = (total + limit - 1) / limit
	}
	m.HasNextPage = page < m.TotalPages
	m.HasPreviousPage = page > 1
	return m
}

// Page slices the window [offset, offset+limit) out of items, clamped to bounds.
func Page[T any](items []T, offset, limit int) []T {
	if offset < 0 || offset >= len(items) || limit <= 0 {
		return []T{}
	}
	end := offset + min(limit, len(items)-offset)
	out := make([]T, end-offset)
	copy(out, items[offset:end])
	return out
}

// ErrorEnvelope is returned with HTTP 5xx when no data source could answer.
type ErrorEnvelope struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Data    []product.Product `json:"data"`
	Meta    ErrorMeta         `json:"meta"`
}

// ErrorMeta is the fixed, empty pagination block of an ErrorEnvelope.
type ErrorMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewErrorEnvelope builds the last-resort error response.
func NewErrorEnvelope(code, message string) ErrorEnvelope {
	return ErrorEnvelope{
		Error:   code,
		Message: message,
		Data:    []product.Product{},
		Meta:    ErrorMeta{Page: 1},
	}
}
