package product

import (
	"context"
	"testing"
	"time"

	"github.com/antopucung/GodotTeko-sub003/internal/db"
	domprod "github.com/antopucung/GodotTeko-sub003/internal/domain/product"
)

const (
	testIndex  = "catalog:products"
	testPrefix = "catalog:product:"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetMultiFn func(ctx context.Context, items []db.JSONSetItem) error
	jsonGetFn      func(ctx context.Context, key string, paths ...string) ([]byte, error)
	searchFn       func(ctx context.Context, q *db.Query) (*db.SearchResult, error)
	countFn        func(ctx context.Context, q *db.Query) (int, error)
	createIndexFn  func(ctx context.Context, def *db.IndexDefinition) error
	dropIndexFn    func(ctx context.Context, name string) error
	indexExistsFn  func(ctx context.Context, name string) (bool, error)
}

func (m *mockStore) JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error {
	if m.jsonSetMultiFn != nil {
		return m.jsonSetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Search(ctx context.Context, q *db.Query) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) Count(ctx context.Context, q *db.Query) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, q)
	}
	return 0, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) DropIndex(ctx context.Context, name string) error {
	if m.dropIndexFn != nil {
		return m.dropIndexFn(ctx, name)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, testIndex, testPrefix), ms
}

func testProduct(id, title string) domprod.Product {
	return domprod.Product{
		ID:         id,
		Title:      title,
		Price:      29,
		Categories: []domprod.Ref{{Name: "UI Kits", Slug: "ui-kits"}},
		Author:     domprod.Author{Name: "Jane Doe", Slug: "jane-doe"},
		Stats:      domprod.Stats{Rating: 4.5, Downloads: 120, Reviews: 9},
		CreatedAt:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func ptr[T any](v T) *T { return &v }

func domStats(rating float64, downloads, reviews int64) domprod.Stats {
	return domprod.Stats{Rating: rating, Downloads: downloads, Reviews: reviews}
}
