package promo

import (
	"fmt"
	"regexp"
	"time"

	"github.com/atelier-cloud/catalog/internal/domain"
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

// Type is the discount kind.
type Type string

// Discount type constants.
const (
	TypePercentage Type = "percentage"
	TypeFixed      Type = "fixed"
)

// IsValid checks if the type is one of the supported values.
func (t Type) IsValid() bool {
	return t == TypePercentage || t == TypeFixed
}

// Status is the derived promo lifecycle state.
type Status string

// Promo status constants.
const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// Promo is a promotional discount code (immutable value object).
type Promo struct {
	id        string
	code      string
	promoType Type
	value     float64
	maxUses   int
	uses      int
	endDate   *time.Time
	createdAt time.Time
}

// New validates and creates a Promo. Code: ^[A-Z0-9]{3,20}$. Value must be
// positive; percentage values may not exceed 100. maxUses 0 means unlimited.
func New(id, code string, t Type, value float64, maxUses int, endDate *time.Time, now time.Time) (Promo, error) {
	if !codeRegex.MatchString(code) {
		return Promo{}, fmt.Errorf("%w: code must match %s", domain.ErrValidation, codeRegex.String())
	}
	if !t.IsValid() {
		return Promo{}, fmt.Errorf("%w: invalid promo type %q", domain.ErrValidation, t)
	}
	if value <= 0 {
		return Promo{}, fmt.Errorf("%w: value must be positive", domain.ErrValidation)
	}
	if t == TypePercentage && value > 100 {
		return Promo{}, fmt.Errorf("%w: percentage value must not exceed 100", domain.ErrValidation)
	}
	if maxUses < 0 {
		return Promo{}, fmt.Errorf("%w: max uses must not be negative", domain.ErrValidation)
	}
	return Promo{
		id: id, code: code, promoType: t, value: value,
		maxUses: maxUses, endDate: endDate, createdAt: now,
	}, nil
}

// Reconstruct creates a Promo without validation (storage hydration).
func Reconstruct(
	id, code string, t Type, value float64,
	maxUses, uses int, endDate *time.Time, createdAt time.Time,
) Promo {
	return Promo{
		id: id, code: code, promoType: t, value: value,
		maxUses: maxUses, uses: uses, endDate: endDate, createdAt: createdAt,
	}
}

// ID returns the promo identifier.
func (p *Promo) ID() string { return p.id }

// Code returns the promo code.
func (p *Promo) Code() string { return p.code }

// Type returns the discount kind.
func (p *Promo) Type() Type { return p.promoType }

// Value returns the discount value (percent or fixed amount).
func (p *Promo) Value() float64 { return p.value }

// MaxUses returns the redemption limit (0 = unlimited).
func (p *Promo) MaxUses() int { return p.maxUses }

// Uses returns the redemption count.
func (p *Promo) Uses() int { return p.uses }

// EndDate returns the expiry time, nil if the code never expires.
func (p *Promo) EndDate() *time.Time { return p.endDate }

// CreatedAt returns the creation timestamp.
func (p *Promo) CreatedAt() time.Time { return p.createdAt }

// Status derives the lifecycle state at the given instant.
func (p *Promo) Status(now time.Time) Status {
	if p.endDate != nil && now.After(*p.endDate) {
		return StatusExpired
	}
	if p.maxUses > 0 && p.uses >= p.maxUses {
		return StatusExpired
	}
	return StatusActive
}

// Redeemable reports whether the code can be redeemed at the given instant.
func (p *Promo) Redeemable(now time.Time) bool {
	return p.Status(now) == StatusActive
}

// Discount computes the discount for an order amount;
// never more than the amount itself.
func (p *Promo) Discount(amount float64) float64 {
	var d float64
	switch p.promoType {
	case TypePercentage:
		d = amount * p.value / 100
	case TypeFixed:
		d = p.value
	}
	if d > amount {
		return amount
	}
	return d
}

// WithUse returns a copy with the uses counter incremented.
func (p *Promo) WithUse() Promo {
	c := *p
	c.uses++
	return c
}
