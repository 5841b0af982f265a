// Package filter defines the relational constraints applied to search
// candidates: category and status equality plus an inclusive price range.
package filter

import (
	"fmt"

	"github.com/atelier-cloud/catalog/internal/domain"
	"github.com/atelier-cloud/catalog/internal/domain/product"
)

// Filters is the relational filter set of a search. Zero values mean
// unconstrained; price bounds are inclusive on both ends.
type Filters struct {
	Category string
	Status   product.Status
	MinPrice *float64
	MaxPrice *float64
}

// Validate checks the filter set for consistency.
func (f *Filters) Validate() error {
	if f.Status != "" && !f.Status.IsValid() {
		return fmt.Errorf("%w: invalid status filter %q", domain.ErrValidation, f.Status)
	}
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return fmt.Errorf("%w: min price must not be negative", domain.ErrValidation)
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return fmt.Errorf("%w: max price must not be negative", domain.ErrValidation)
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return fmt.Errorf("%w: min price exceeds max price", domain.ErrValidation)
	}
	return nil
}

// IsEmpty reports whether no constraint is set.
func (f *Filters) IsEmpty() bool {
	return f.Category == "" && f.Status == "" && f.MinPrice == nil && f.MaxPrice == nil
}

// Matches reports whether a candidate with the given attributes satisfies
// every constraint.
func (f *Filters) Matches(category string, status product.Status, price float64) bool {
	if f.Category != "" && category != f.Category {
		return false
	}
	if f.Status != "" && status != f.Status {
		return false
	}
	if f.MinPrice != nil && price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && price > *f.MaxPrice {
		return false
	}
	return true
}
