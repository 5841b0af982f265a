package search

import (
	"context"

	"github.com/atelier-cloud/catalog/internal/domain"
	"github.com/atelier-cloud/catalog/internal/domain/search/filter"
	"github.com/atelier-cloud/catalog/internal/domain/search/result"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	// KNN returns up to topK nearest products by vector similarity, ordered
	// by descending score, with entries below scoreFloor already dropped.
	KNN(ctx context.Context, vector []float32, topK int, scoreFloor float64) ([]result.Result, error)

	// Substring returns products whose name or description contains the term
	// (case-insensitive), with relational filters applied in-store.
	Substring(ctx context.Context, term string, f filter.Filters, topK int) ([]result.Result, error)
}

// Embedder vectorizes query text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
