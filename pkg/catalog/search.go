package catalog

import (
	"context"

	"github.com/atelier-cloud/catalog/internal/domain/search/query"
	"github.com/atelier-cloud/catalog/internal/domain/search/result"
)

// SearchService executes product search queries.
type SearchService struct {
	svc searchUseCase
}

// Semantic searches by vector similarity: the query text is embedded and the
// nearest products are returned ordered by descending similarity score.
func (s *SearchService) Semantic(ctx context.Context, text string, opts SearchOptions) ([]SearchHit, error) {
	return s.run(ctx, text, true, opts)
}

// Substring searches by case-insensitive substring match on product names
// and descriptions. All hits carry score 1.0.
func (s *SearchService) Substring(ctx context.Context, text string, opts SearchOptions) ([]SearchHit, error) {
	return s.run(ctx, text, false, opts)
}

func (s *SearchService) run(ctx context.Context, text string, semantic bool, opts SearchOptions) ([]SearchHit, error) {
	minScore := query.DefaultMinScore
	if opts.MinScore != nil {
		minScore = *opts.MinScore
	}

	q, err := query.New(text, opts.Filters.toInternal(), semantic, opts.TopK, minScore)
	if err != nil {
		return nil, err
	}

	results, err := s.svc.Search(ctx, &q)
	if err != nil {
		return nil, err
	}
	return fromInternalResults(results), nil
}

func fromInternalResults(results []result.Result) []SearchHit {
	hits := make([]SearchHit, 0, len(results))
	for i := range results {
		p := results[i].Product()
		hits = append(hits, SearchHit{
			Score:   results[i].Score(),
			Product: fromInternalProduct(&p),
		})
	}
	return hits
}
