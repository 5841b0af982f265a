package search

import (
	"context"
	"testing"
	"time"

	"github.com/atelier-cloud/catalog/internal/domain"
	domprod "github.com/atelier-cloud/catalog/internal/domain/product"
	"github.com/atelier-cloud/catalog/internal/domain/search/filter"
	"github.com/atelier-cloud/catalog/internal/domain/search/result"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	knnFn       func(ctx context.Context, vector []float32, topK int, scoreFloor float64) ([]result.Result, error)
	substringFn func(ctx context.Context, term string, f filter.Filters, topK int) ([]result.Result, error)
}

func (m *mockRepo) KNN(ctx context.Context, vector []float32, topK int, scoreFloor float64) ([]result.Result, error) {
	if m.knnFn != nil {
		return m.knnFn(ctx, vector, topK, scoreFloor)
	}
	return nil, nil
}

func (m *mockRepo) Substring(ctx context.Context, term string, f filter.Filters, topK int) ([]result.Result, error) {
	if m.substringFn != nil {
		return m.substringFn(ctx, term, f, topK)
	}
	return nil, nil
}

// mockEmbedder implements Embedder for tests.
type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}, nil
}

func newTestService(t *testing.T) (*Service, *mockRepo, *mockEmbedder) {
	t.Helper()
	repo := &mockRepo{}
	embed := &mockEmbedder{}
	return New(repo, embed), repo, embed
}

func resultWith(t *testing.T, id, category string, status domprod.Status, price, score float64) result.Result {
	t.Helper()
	now := time.Unix(1700000000, 0).UTC()
	p, err := domprod.New(id, domprod.Attrs{
		Name:        "Product " + id,
		Description: "test description",
		Category:    category,
		Price:       price,
		Stock:       3,
		Status:      status,
	}, now)
	if err != nil {
		t.Fatalf("build test product: %v", err)
	}
	return result.New(p, score)
}

// productID unwraps the matched product's id; the product getters have
// pointer receivers, so the result must land in a local first.
func productID(r result.Result) string {
	p := r.Product()
	return p.ID()
}
