package promo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/atelier-cloud/catalog/internal/domain"
	domprom "github.com/atelier-cloud/catalog/internal/domain/promo"
)

// Service handles promo code lifecycle and redemption.
type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

// New creates a promo service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now, newID: uuid.NewString}
}

// Create validates and stores a new promo code. Codes are normalized to
// upper case before validation.
func (s *Service) Create(
	ctx context.Context, code string, t domprom.Type, value float64, maxUses int, endDate *time.Time,
) (domprom.Promo, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	p, err := domprom.New(s.newID(), code, t, value, maxUses, endDate, s.now().UTC())
	if err != nil {
		return domprom.Promo{}, err
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		return domprom.Promo{}, fmt.Errorf("create promo: %w", err)
	}
	return p, nil
}

// Get returns a promo by code.
func (s *Service) Get(ctx context.Context, code string) (domprom.Promo, error) {
	p, err := s.repo.Get(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return domprom.Promo{}, fmt.Errorf("get promo: %w", err)
	}
	return p, nil
}

// List returns all promo codes.
func (s *Service) List(ctx context.Context) ([]domprom.Promo, error) {
	promos, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list promos: %w", err)
	}
	return promos, nil
}

// Delete removes a promo code. Returns false without error when unknown.
func (s *Service) Delete(ctx context.Context, code string) (bool, error) {
	ok, err := s.repo.Delete(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return false, fmt.Errorf("delete promo: %w", err)
	}
	return ok, nil
}

// Redeem applies a promo code to an order amount: checks redeemability,
// computes the discount, and increments the uses counter.
func (s *Service) Redeem(ctx context.Context, code string, amount float64) (float64, domprom.Promo, error) {
	if amount <= 0 {
		return 0, domprom.Promo{}, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}

	p, err := s.repo.Get(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return 0, domprom.Promo{}, fmt.Errorf("get promo: %w", err)
	}

	now := s.now().UTC()
	if !p.Redeemable(now) {
		return 0, domprom.Promo{}, fmt.Errorf("%w: promo code %s is %s", domain.ErrValidation, p.Code(), p.Status(now))
	}

	discount := p.Discount(amount)
	used := p.WithUse()

	if err := s.repo.Update(ctx, &used); err != nil {
		return 0, domprom.Promo{}, fmt.Errorf("record redemption: %w", err)
	}

	return discount, used, nil
}
