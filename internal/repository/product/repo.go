package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atelier-cloud/catalog/internal/db"
	"github.com/atelier-cloud/catalog/internal/domain"
	domprod "github.com/atelier-cloud/catalog/internal/domain/product"
	"github.com/atelier-cloud/catalog/internal/domain/search/filter"
)

// store is the consumer interface for product persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index string) (int, error)
}

// Repo implements usecase/catalog.ProductRepository over hash records.
type Repo struct {
	store store
}

// New creates a product repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// EnsureIndex creates the product FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context, opts IndexOptions) error {
	def, err := IndexDefinition(opts)
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", IndexName(), err)
	}
	return nil
}

// Create persists a new product. Returns ErrAlreadyExists if the ID is taken.
func (r *Repo) Create(ctx context.Context, p *domprod.Product) error {
	key := Key(p.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if exists {
		return fmt.Errorf("%w: product %s", domain.ErrAlreadyExists, p.ID())
	}

	if err := r.store.HSet(ctx, key, buildHashFields(p)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Get returns a product by ID.
func (r *Repo) Get(ctx context.Context, id string) (domprod.Product, error) {
	key := Key(id)

	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domprod.Product{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(fields) == 0 {
		return domprod.Product{}, fmt.Errorf("%w: product %s", domain.ErrProductNotFound, id)
	}

	return FromHash(id, fields), nil
}

// Update overwrites the stored product state.
func (r *Repo) Update(ctx context.Context, p *domprod.Product) error {
	key := Key(p.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return fmt.Errorf("%w: product %s", domain.ErrProductNotFound, p.ID())
	}

	if err := r.store.HSet(ctx, key, buildHashFields(p)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Delete removes a product. Returns false without error when the product
// does not exist. The FT index entry goes away with the hash key, so the
// record and its search presence disappear together.
func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	key := Key(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return false, nil
	}

	if err := r.store.Del(ctx, key); err != nil {
		return false, fmt.Errorf("del %s: %w", key, err)
	}
	return true, nil
}

// List returns products matching the filters, newest first, plus the total
// match count for pagination.
func (r *Repo) List(ctx context.Context, f filter.Filters, offset, limit int) ([]domprod.Product, int, error) {
	result, err := r.store.SearchList(ctx, &db.ListQuery{
		Index:    IndexName(),
		Filters:  f,
		SortBy:   fieldCreatedAt,
		SortDesc: true,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("search list: %w", err)
	}
	if result == nil || result.Total == 0 {
		return nil, 0, nil
	}

	products := make([]domprod.Product, 0, len(result.Entries))
	for _, entry := range result.Entries {
		id := strings.TrimPrefix(entry.Key, KeyPrefix())
		products = append(products, FromHash(id, entry.Fields))
	}

	return products, result.Total, nil
}

// Count returns the total number of products in the index.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, IndexName())
	if err != nil {
		return 0, fmt.Errorf("search count: %w", err)
	}
	return n, nil
}
