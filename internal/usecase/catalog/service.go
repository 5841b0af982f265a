package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/atelier-cloud/catalog/internal/domain"
	domprod "github.com/atelier-cloud/catalog/internal/domain/product"
	"github.com/atelier-cloud/catalog/internal/domain/product/patch"
	"github.com/atelier-cloud/catalog/internal/domain/search/filter"
)

// Service handles product CRUD with automatic vectorization of the
// searchable text.
type Service struct {
	repo            Repository
	embed           Embedder
	defaultPageSize int
	maxPageSize     int
	now             func() time.Time
	newID           func() string
}

// New creates a catalog service.
func New(repo Repository, embed Embedder) *Service {
	return &Service{
		repo:            repo,
		embed:           embed,
		defaultPageSize: 20,
		maxPageSize:     100,
		now:             time.Now,
		newID:           uuid.NewString,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// Create validates attributes, assigns an ID, embeds the searchable text,
// and persists the product. An embedding failure aborts the create; no
// product is stored without its vector.
func (s *Service) Create(ctx context.Context, attrs domprod.Attrs) (domprod.Product, error) {
	p, err := domprod.New(s.newID(), attrs, s.now().UTC())
	if err != nil {
		return domprod.Product{}, err
	}

	result, err := s.embed.Embed(ctx, p.SearchText())
	if err != nil {
		return domprod.Product{}, fmt.Errorf("vectorize product: %w", err)
	}
	p.SetVector(result.Embedding)

	if err := s.repo.Create(ctx, &p); err != nil {
		return domprod.Product{}, fmt.Errorf("create product: %w", err)
	}

	return p, nil
}

// Get returns a product by ID.
func (s *Service) Get(ctx context.Context, id string) (domprod.Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domprod.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update applies a partial update. The merged state is re-validated as a
// whole, and the embedding is recomputed only when a field feeding the
// searchable text actually changed, from the merged state rather than the
// patch alone.
func (s *Service) Update(ctx context.Context, id string, p patch.Patch) (domprod.Product, error) {
	if p.IsEmpty() {
		return domprod.Product{}, fmt.Errorf("%w: empty patch", domain.ErrValidation)
	}
	if err := p.Validate(); err != nil {
		return domprod.Product{}, err
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return domprod.Product{}, fmt.Errorf("get product: %w", err)
	}

	merged, err := p.Apply(existing, s.now().UTC())
	if err != nil {
		return domprod.Product{}, err
	}

	if p.TouchesSearchText() {
		result, err := s.embed.Embed(ctx, merged.SearchText())
		if err != nil {
			return domprod.Product{}, fmt.Errorf("vectorize product: %w", err)
		}
		merged.SetVector(result.Embedding)
	}

	if err := s.repo.Update(ctx, &merged); err != nil {
		return domprod.Product{}, fmt.Errorf("update product: %w", err)
	}

	return merged, nil
}

// Delete removes a product. Returns false without error when the product
// does not exist, so deletion is idempotent for callers.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return ok, nil
}

// List returns products newest first with the total match count.
func (s *Service) List(ctx context.Context, f filter.Filters, offset, limit int) ([]domprod.Product, int, error) {
	if err := f.Validate(); err != nil {
		return nil, 0, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	products, total, err := s.repo.List(ctx, f, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}
