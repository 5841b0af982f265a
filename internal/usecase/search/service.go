package search

import (
	"context"
	"fmt"

	"github.com/atelier-cloud/catalog/internal/domain"
	"github.com/atelier-cloud/catalog/internal/domain/search/query"
	"github.com/atelier-cloud/catalog/internal/domain/search/result"
)

// storeScoreFloor is the store-level similarity cutoff for KNN candidates.
// It bounds the candidate set before relational post-filtering; the caller's
// min score is applied on top of it.
const storeScoreFloor = 0.30

// Service orchestrates product search across the semantic and substring branches.
type Service struct {
	repo  Repository
	embed Embedder
}

// New creates a search service.
func New(repo Repository, embed Embedder) *Service {
	return &Service{repo: repo, embed: embed}
}

// Search runs one search request. Semantic queries embed the text and rank
// by vector similarity; non-semantic queries do plain substring matching
// with a uniform score of 1.0. An embedding failure fails the semantic
// request outright; there is no silent fallback to substring matching.
func (s *Service) Search(ctx context.Context, q *query.Query) ([]result.Result, error) {
	if q.Semantic() {
		return s.searchSemantic(ctx, q)
	}
	return s.searchSubstring(ctx, q)
}

func (s *Service) searchSemantic(ctx context.Context, q *query.Query) ([]result.Result, error) {
	embResult, err := s.embed.Embed(ctx, q.Text())
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	candidates, err := s.repo.KNN(ctx, embResult.Embedding, q.TopK(), storeScoreFloor)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRetrieval, err)
	}

	// Relational filters are applied in memory after retrieval, preserving
	// similarity order. Filtering may shrink the result below top_k; the
	// candidate set is never re-widened.
	filters := q.Filters()
	results := candidates[:0]
	for _, r := range candidates {
		p := r.Product()
		if !filters.Matches(p.Category(), p.Status(), p.Price()) {
			continue
		}
		if r.Score() < q.MinScore() {
			continue
		}
		results = append(results, r)
	}

	return results, nil
}

func (s *Service) searchSubstring(ctx context.Context, q *query.Query) ([]result.Result, error) {
	results, err := s.repo.Substring(ctx, q.Text(), q.Filters(), q.TopK())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRetrieval, err)
	}
	return results, nil
}
