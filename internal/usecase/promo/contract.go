package promo

import (
	"context"

	domprom "github.com/atelier-cloud/catalog/internal/domain/promo"
)

// Repository defines the storage contract for promo codes.
type Repository interface {
	Create(ctx context.Context, p *domprom.Promo) error
	Get(ctx context.Context, code string) (domprom.Promo, error)
	Update(ctx context.Context, p *domprom.Promo) error
	Delete(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]domprom.Promo, error)
}
