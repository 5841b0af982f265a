package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/atelier-cloud/catalog/internal/db"
	"github.com/atelier-cloud/catalog/internal/domain/search/filter"
	"github.com/atelier-cloud/catalog/internal/domain/search/result"
	"github.com/atelier-cloud/catalog/internal/repository/product"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// returnFields are all stored hash fields needed to reconstruct a product.
// The vector itself is not returned; results carry attributes and score only.
var returnFields = []string{
	"name", "description", "short_description", "category",
	"price", "stock", "status",
	"width", "height", "depth",
	"main_image", "additional_images",
	"created_at", "updated_at",
	"__vector_score",
}

// KNN performs vector similarity search. Entries come back ordered by
// descending similarity; entries below scoreFloor are already dropped by
// the store. Relational filtering is the caller's job.
func (r *Repo) KNN(ctx context.Context, vector []float32, topK int, scoreFloor float64) ([]result.Result, error) {
	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		Index:        product.IndexName(),
		Vector:       vector,
		K:            topK,
		ScoreFloor:   scoreFloor,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	results := make([]result.Result, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, product.KeyPrefix())
		p := product.FromHash(id, entry.Fields)
		results = append(results, result.New(p, entry.Score))
	}
	return results, nil
}

// Substring performs case-insensitive substring matching on product name
// and description, with relational filters pushed into the query. Matches
// carry no relevance ranking.
func (r *Repo) Substring(ctx context.Context, term string, f filter.Filters, topK int) ([]result.Result, error) {
	sr, err := r.store.SearchText(ctx, &db.TextQuery{
		Index:      product.IndexName(),
		Term:       term,
		TextFields: []string{"name", "description"},
		Filters:    f,
		Limit:      topK,
	})
	if err != nil {
		return nil, fmt.Errorf("search substring: %w", err)
	}
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	results := make([]result.Result, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, product.KeyPrefix())
		p := product.FromHash(id, entry.Fields)
		results = append(results, result.New(p, 1.0))
	}
	return results, nil
}
