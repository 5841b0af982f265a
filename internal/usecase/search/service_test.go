package search

import (
	"context"
	"errors"
	"testing"

	"github.com/atelier-cloud/catalog/internal/domain"
	domprod "github.com/atelier-cloud/catalog/internal/domain/product"
	"github.com/atelier-cloud/catalog/internal/domain/search/filter"
	"github.com/atelier-cloud/catalog/internal/domain/search/query"
	"github.com/atelier-cloud/catalog/internal/domain/search/result"
)

func mustQuery(t *testing.T, text string, f filter.Filters, semantic bool, topK int, minScore float64) *query.Query {
	t.Helper()
	q, err := query.New(text, f, semantic, topK, minScore)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	return &q
}

func TestSearch_Semantic_OrderPreserved(t *testing.T) {
	svc, repo, embed := newTestService(t)
	ctx := context.Background()

	embed.embedFn = func(_ context.Context, text string) (domain.EmbeddingResult, error) {
		if text != "cozy ceramics" {
			t.Errorf("unexpected embed text: %q", text)
		}
		return domain.EmbeddingResult{Embedding: []float32{0.5, 0.5}}, nil
	}
	repo.knnFn = func(_ context.Context, vector []float32, topK int, scoreFloor float64) ([]result.Result, error) {
		if len(vector) != 2 {
			t.Errorf("unexpected vector: %v", vector)
		}
		if topK != 10 {
			t.Errorf("unexpected topK: %d", topK)
		}
		if scoreFloor != 0.30 {
			t.Errorf("unexpected store score floor: %v", scoreFloor)
		}
		return []result.Result{
			resultWith(t, "a", "decor", domprod.StatusOnline, 40, 0.95),
			resultWith(t, "b", "decor", domprod.StatusOnline, 25, 0.71),
			resultWith(t, "c", "decor", domprod.StatusOnline, 15, 0.52),
		}, nil
	}

	results, err := svc.Search(ctx, mustQuery(t, "cozy ceramics", filter.Filters{}, true, 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got := productID(results[i]); got != want {
			t.Errorf("result %d: expected %s, got %s", i, want, got)
		}
	}
}

func TestSearch_Semantic_FiltersApplyAfterRetrieval(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	repo.knnFn = func(_ context.Context, _ []float32, _ int, _ float64) ([]result.Result, error) {
		return []result.Result{
			resultWith(t, "a", "decor", domprod.StatusOnline, 40, 0.95),
			resultWith(t, "b", "kitchen", domprod.StatusOnline, 25, 0.80),
			resultWith(t, "c", "decor", domprod.StatusDraft, 15, 0.70),
			resultWith(t, "d", "decor", domprod.StatusOnline, 90, 0.60),
		}, nil
	}

	f := filter.Filters{Category: "decor", Status: domprod.StatusOnline}
	results, err := svc.Search(ctx, mustQuery(t, "vase", f, true, 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// b dropped (category), c dropped (status); order of survivors kept.
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if productID(results[0]) != "a" || productID(results[1]) != "d" {
		t.Errorf("unexpected survivors: %s, %s", productID(results[0]), productID(results[1]))
	}
}

func TestSearch_Semantic_MinScoreIsFinalCut(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	repo.knnFn = func(_ context.Context, _ []float32, _ int, _ float64) ([]result.Result, error) {
		return []result.Result{
			resultWith(t, "a", "decor", domprod.StatusOnline, 40, 0.95),
			resultWith(t, "b", "decor", domprod.StatusOnline, 25, 0.55),
			resultWith(t, "c", "decor", domprod.StatusOnline, 15, 0.35),
		}, nil
	}

	results, err := svc.Search(ctx, mustQuery(t, "vase", filter.Filters{}, true, 10, 0.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results above min score, got %d", len(results))
	}
	if productID(results[1]) != "b" {
		t.Errorf("unexpected last result: %s", productID(results[1]))
	}
}

func TestSearch_Semantic_EmbeddingFailureIsFatal(t *testing.T) {
	svc, repo, embed := newTestService(t)
	ctx := context.Background()

	embed.embedFn = func(_ context.Context, _ string) (domain.EmbeddingResult, error) {
		return domain.EmbeddingResult{}, domain.ErrEmbeddingUnavailable
	}
	repo.substringFn = func(_ context.Context, _ string, _ filter.Filters, _ int) ([]result.Result, error) {
		t.Error("substring search must not run as a fallback")
		return nil, nil
	}

	_, err := svc.Search(ctx, mustQuery(t, "vase", filter.Filters{}, true, 10, 0))
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}

func TestSearch_Semantic_RepoError(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	repo.knnFn = func(_ context.Context, _ []float32, _ int, _ float64) ([]result.Result, error) {
		return nil, errors.New("index is loading")
	}

	_, err := svc.Search(ctx, mustQuery(t, "vase", filter.Filters{}, true, 10, 0))
	if !errors.Is(err, domain.ErrRetrieval) {
		t.Fatalf("expected ErrRetrieval, got %v", err)
	}
}

func TestSearch_Substring_UniformScore(t *testing.T) {
	svc, repo, embed := newTestService(t)
	ctx := context.Background()

	embed.embedFn = func(_ context.Context, _ string) (domain.EmbeddingResult, error) {
		t.Error("non-semantic search must not embed")
		return domain.EmbeddingResult{}, nil
	}
	repo.substringFn = func(_ context.Context, term string, f filter.Filters, topK int) ([]result.Result, error) {
		if term != "vase" {
			t.Errorf("unexpected term: %q", term)
		}
		if f.Category != "decor" {
			t.Errorf("expected category filter to be pushed down, got %q", f.Category)
		}
		if topK != 5 {
			t.Errorf("unexpected topK: %d", topK)
		}
		return []result.Result{
			resultWith(t, "a", "decor", domprod.StatusOnline, 40, 1.0),
			resultWith(t, "b", "decor", domprod.StatusOnline, 25, 1.0),
		}, nil
	}

	results, err := svc.Search(ctx, mustQuery(t, "vase", filter.Filters{Category: "decor"}, false, 5, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Score() != 1.0 {
			t.Errorf("substring result must score 1.0, got %v", r.Score())
		}
	}
}

func TestSearch_Substring_Empty(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	repo.substringFn = func(_ context.Context, _ string, _ filter.Filters, _ int) ([]result.Result, error) {
		return nil, nil
	}

	results, err := svc.Search(ctx, mustQuery(t, "nothing", filter.Filters{}, false, 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty result set, got %d", len(results))
	}
}
