package catalog

import (
	"context"

	domprom "github.com/atelier-cloud/catalog/internal/domain/promo"
)

// PromosService manages promotional discount codes.
type PromosService struct {
	svc promoUseCase
}

// Create stores a new promo code. The code is upper-cased and trimmed before
// validation (^[A-Z0-9]{3,20}$).
func (s *PromosService) Create(ctx context.Context, in PromoInput) (Promo, error) {
	p, err := s.svc.Create(ctx, in.Code, domprom.Type(in.Type), in.Value, in.MaxUses, in.EndDate)
	if err != nil {
		return Promo{}, err
	}
	return fromInternalPromo(&p), nil
}

// Get returns a promo by code.
func (s *PromosService) Get(ctx context.Context, code string) (Promo, error) {
	p, err := s.svc.Get(ctx, code)
	if err != nil {
		return Promo{}, err
	}
	return fromInternalPromo(&p), nil
}

// List returns all promo codes.
func (s *PromosService) List(ctx context.Context) ([]Promo, error) {
	promos, err := s.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Promo, 0, len(promos))
	for i := range promos {
		out = append(out, fromInternalPromo(&promos[i]))
	}
	return out, nil
}

// Delete removes a promo code. Returns false without error when the code
// does not exist.
func (s *PromosService) Delete(ctx context.Context, code string) (bool, error) {
	return s.svc.Delete(ctx, code)
}

// Redeem applies a promo code to an order amount, increments the usage
// counter, and returns the discount breakdown. Expired or exhausted codes
// fail with ErrValidation.
func (s *PromosService) Redeem(ctx context.Context, code string, amount float64) (Redemption, error) {
	discount, used, err := s.svc.Redeem(ctx, code, amount)
	if err != nil {
		return Redemption{}, err
	}
	return Redemption{
		Code:        used.Code(),
		Discount:    discount,
		FinalAmount: amount - discount,
		Uses:        used.Uses(),
	}, nil
}
