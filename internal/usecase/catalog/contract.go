package catalog

import (
	"context"

	"github.com/atelier-cloud/catalog/internal/domain"
	domprod "github.com/atelier-cloud/catalog/internal/domain/product"
	"github.com/atelier-cloud/catalog/internal/domain/search/filter"
)

// Repository defines the storage contract for product CRUD.
type Repository interface {
	Create(ctx context.Context, p *domprod.Product) error
	Get(ctx context.Context, id string) (domprod.Product, error)
	Update(ctx context.Context, p *domprod.Product) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f filter.Filters, offset, limit int) ([]domprod.Product, int, error)
}

// Embedder vectorizes the searchable text of a product.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
