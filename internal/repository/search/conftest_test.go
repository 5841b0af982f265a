package search

import (
	"context"
	"testing"

	"github.com/atelier-cloud/catalog/internal/db"
	"github.com/atelier-cloud/catalog/internal/domain/search/result"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchKNNFn  func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	searchTextFn func(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

func (m *mockStore) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if m.searchKNNFn != nil {
		return m.searchKNNFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if m.searchTextFn != nil {
		return m.searchTextFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms)
	return repo, ms
}

// The product getters have pointer receivers, so the matched product must
// land in a local before its fields can be read.
func productID(r result.Result) string {
	p := r.Product()
	return p.ID()
}

func productName(r result.Result) string {
	p := r.Product()
	return p.Name()
}

func productFields(name, category, status, price string) map[string]string {
	return map[string]string{
		"name":        name,
		"description": "test description",
		"category":    category,
		"status":      status,
		"price":       price,
		"stock":       "5",
		"created_at":  "1700000000",
		"updated_at":  "1700000000",
	}
}
