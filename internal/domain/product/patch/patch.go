// Package patch implements typed partial product updates. Presence is
// expressed with pointer fields inspected explicitly, never by iterating a
// dynamic field map.
package patch

import (
	"fmt"
	"time"

	"github.com/atelier-cloud/catalog/internal/domain"
	"github.com/atelier-cloud/catalog/internal/domain/product"
)

// Patch is a partial product update. Nil fields are unchanged.
type Patch struct {
	Name             *string
	Description      *string
	ShortDescription *string
	Category         *string
	Price            *float64
	Stock            *int
	Status           *product.Status
	Width            *float64
	Height           *float64
	Depth            *float64
	MainImage        *string
	AdditionalImages []string
}

// IsEmpty reports whether the patch changes nothing. The catalog service
// rejects empty patches as a validation error.
func (p *Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.ShortDescription == nil &&
		p.Category == nil && p.Price == nil && p.Stock == nil && p.Status == nil &&
		p.Width == nil && p.Height == nil && p.Depth == nil &&
		p.MainImage == nil && p.AdditionalImages == nil
}

// TouchesSearchText reports whether the patch includes any field the
// searchable text is composed from. Only those updates require re-embedding;
// price/stock/dimension/image changes never do.
func (p *Patch) TouchesSearchText() bool {
	return p.Name != nil || p.Description != nil || p.ShortDescription != nil || p.Category != nil
}

// Apply merges the patch onto an existing product purely in memory and
// returns the result with updated_at set to now. The merged product keeps the
// original id, creation timestamp, and embedding vector; the caller decides
// whether the vector must be recomputed (TouchesSearchText).
// The merged attributes are re-validated so a patch cannot produce a product
// that New would have rejected.
func (p *Patch) Apply(existing product.Product, now time.Time) (product.Product, error) {
	attrs := existing.Attrs()

	if p.Name != nil {
		attrs.Name = *p.Name
	}
	if p.Description != nil {
		attrs.Description = *p.Description
	}
	if p.ShortDescription != nil {
		attrs.ShortDescription = *p.ShortDescription
	}
	if p.Category != nil {
		attrs.Category = *p.Category
	}
	if p.Price != nil {
		attrs.Price = *p.Price
	}
	if p.Stock != nil {
		attrs.Stock = *p.Stock
	}
	if p.Status != nil {
		attrs.Status = *p.Status
	}
	if p.Width != nil {
		attrs.Dimensions.Width = p.Width
	}
	if p.Height != nil {
		attrs.Dimensions.Height = p.Height
	}
	if p.Depth != nil {
		attrs.Dimensions.Depth = p.Depth
	}
	if p.MainImage != nil {
		attrs.MainImage = *p.MainImage
	}
	if p.AdditionalImages != nil {
		attrs.AdditionalImages = p.AdditionalImages
	}

	merged, err := product.New(existing.ID(), attrs, existing.CreatedAt())
	if err != nil {
		return product.Product{}, fmt.Errorf("merge patch: %w", err)
	}
	merged.SetVector(existing.Vector())
	merged.Touch(now)
	return merged, nil
}

// Validate checks the present fields without applying them.
func (p *Patch) Validate() error {
	if p.Name != nil && (*p.Name == "" || len(*p.Name) > product.MaxNameLength) {
		return fmt.Errorf("%w: name must be 1-%d characters", domain.ErrValidation, product.MaxNameLength)
	}
	if p.Description != nil && *p.Description == "" {
		return fmt.Errorf("%w: description must not be empty", domain.ErrValidation)
	}
	if p.ShortDescription != nil && len(*p.ShortDescription) > product.MaxShortDescriptionLength {
		return fmt.Errorf("%w: short description too long (max %d)",
			domain.ErrValidation, product.MaxShortDescriptionLength)
	}
	if p.Category != nil && *p.Category == "" {
		return fmt.Errorf("%w: category must not be empty", domain.ErrValidation)
	}
	if p.Price != nil && *p.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", domain.ErrValidation)
	}
	if p.Stock != nil && *p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", domain.ErrValidation)
	}
	if p.Status != nil && !p.Status.IsValid() {
		return fmt.Errorf("%w: invalid status %q", domain.ErrValidation, *p.Status)
	}
	for _, d := range []struct {
		name string
		val  *float64
	}{{"width", p.Width}, {"height", p.Height}, {"depth", p.Depth}} {
		if d.val != nil && *d.val <= 0 {
			return fmt.Errorf("%w: %s must be positive", domain.ErrValidation, d.name)
		}
	}
	return nil
}
