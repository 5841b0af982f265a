package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/atelier-cloud/catalog/internal/domain"
	domprod "github.com/atelier-cloud/catalog/internal/domain/product"
	"github.com/atelier-cloud/catalog/internal/domain/search/filter"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	createFn func(ctx context.Context, p *domprod.Product) error
	getFn    func(ctx context.Context, id string) (domprod.Product, error)
	updateFn func(ctx context.Context, p *domprod.Product) error
	deleteFn func(ctx context.Context, id string) (bool, error)
	listFn   func(ctx context.Context, f filter.Filters, offset, limit int) ([]domprod.Product, int, error)
}

func (m *mockRepo) Create(ctx context.Context, p *domprod.Product) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (domprod.Product, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domprod.Product{}, domain.ErrProductNotFound
}

func (m *mockRepo) Update(ctx context.Context, p *domprod.Product) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return false, nil
}

func (m *mockRepo) List(ctx context.Context, f filter.Filters, offset, limit int) ([]domprod.Product, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f, offset, limit)
	}
	return nil, 0, nil
}

// mockEmbedder implements Embedder for tests.
type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
	calls   int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}, nil
}

func newTestService(t *testing.T) (*Service, *mockRepo, *mockEmbedder) {
	t.Helper()
	repo := &mockRepo{}
	embed := &mockEmbedder{}
	svc := New(repo, embed)
	svc.now = func() time.Time { return time.Unix(1700000000, 0).UTC() }
	svc.newID = func() string { return "fixed-id" }
	return svc, repo, embed
}

func validAttrs() domprod.Attrs {
	return domprod.Attrs{
		Name:        "Ceramic Vase",
		Description: "Hand-thrown stoneware vase",
		Category:    "home-decor",
		Price:       49.90,
		Stock:       12,
		Status:      domprod.StatusOnline,
	}
}

func storedProduct(t *testing.T) domprod.Product {
	t.Helper()
	p, err := domprod.New("prod-1", validAttrs(), time.Unix(1600000000, 0).UTC())
	if err != nil {
		t.Fatalf("build stored product: %v", err)
	}
	p.SetVector([]float32{0.9, 0.8})
	return p
}
