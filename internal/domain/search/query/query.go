package query

import (
	"fmt"

	"github.com/atelier-cloud/catalog/internal/domain"
	"github.com/atelier-cloud/catalog/internal/domain/search/filter"
)

// Search parameter limits.
const (
	// MaxTextLength is the maximum allowed query text length.
	MaxTextLength = 1024
	DefaultTopK   = 10
	MaxTopK       = 100
	// DefaultMinScore is applied when the caller leaves the threshold unset.
	DefaultMinScore = 0.5
)

// Query is a validated, immutable search request, constructed per call.
type Query struct {
	text     string
	filters  filter.Filters
	semantic bool
	topK     int
	minScore float64
}

// New validates and normalizes search parameters.
// topK defaults to 10 and is clamped to 100. minScore must be within [0,1];
// it only affects semantic search.
func New(text string, filters filter.Filters, semantic bool, topK int, minScore float64) (Query, error) {
	if text == "" {
		return Query{}, fmt.Errorf("%w: query text is required", domain.ErrValidation)
	}
	if len(text) > MaxTextLength {
		return Query{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrValidation, MaxTextLength)
	}
	if err := filters.Validate(); err != nil {
		return Query{}, err
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}
	if minScore < 0 || minScore > 1 {
		return Query{}, fmt.Errorf("%w: min score must be between 0 and 1", domain.ErrValidation)
	}

	return Query{
		text:     text,
		filters:  filters,
		semantic: semantic,
		topK:     topK,
		minScore: minScore,
	}, nil
}

// Text returns the free-text query.
func (q *Query) Text() string { return q.text }

// Filters returns the relational filter set.
func (q *Query) Filters() filter.Filters { return q.filters }

// Semantic reports whether vector similarity search was requested.
func (q *Query) Semantic() bool { return q.semantic }

// TopK returns the result-count bound.
func (q *Query) TopK() int { return q.topK }

// MinScore returns the minimum similarity threshold.
func (q *Query) MinScore() float64 { return q.minScore }
