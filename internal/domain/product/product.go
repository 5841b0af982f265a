package product

import (
	"fmt"
	"strings"
	"time"

	"github.com/atelier-cloud/catalog/internal/domain"
)

// MaxNameLength is the maximum product name length in characters.
const MaxNameLength = 200

// MaxShortDescriptionLength is the maximum short description length.
const MaxShortDescriptionLength = 500

// Status is the product lifecycle state.
type Status string

// Product status constants.
const (
	StatusDraft      Status = "draft"
	StatusOnline     Status = "online"
	StatusOutOfStock Status = "out-of-stock"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusOnline || s == StatusOutOfStock
}

// Dimensions are the optional physical dimensions of a product in centimeters.
// Nil fields are unspecified.
type Dimensions struct {
	Width  *float64
	Height *float64
	Depth  *float64
}

// Attrs are the caller-supplied product attributes, validated by New.
type Attrs struct {
	Name             string
	Description      string
	ShortDescription string
	Category         string
	Price            float64
	Stock            int
	Status           Status
	Dimensions       Dimensions
	MainImage        string
	AdditionalImages []string
}

// Product is the catalog item aggregate (immutable value object).
// The embedding vector is nil until first computed.
type Product struct {
	id        string
	attrs     Attrs
	createdAt time.Time
	updatedAt time.Time
	vector    []float32
}

// New validates attributes and creates a Product. The id and timestamps are
// assigned by the repository layer; the vector by the embedding pipeline.
// Status defaults to draft when empty.
func New(id string, attrs Attrs, now time.Time) (Product, error) {
	if attrs.Status == "" {
		attrs.Status = StatusDraft
	}
	if err := attrs.validate(); err != nil {
		return Product{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	attrs.AdditionalImages = cloneStrings(attrs.AdditionalImages)
	return Product{id: id, attrs: attrs, createdAt: now, updatedAt: now}, nil
}

// Reconstruct creates a Product without validation (storage hydration).
func Reconstruct(id string, attrs Attrs, createdAt, updatedAt time.Time, vector []float32) Product {
	return Product{id: id, attrs: attrs, createdAt: createdAt, updatedAt: updatedAt, vector: vector}
}

func (a *Attrs) validate() error {
	if a.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(a.Name) > MaxNameLength {
		return fmt.Errorf("name too long (max %d)", MaxNameLength)
	}
	if a.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(a.ShortDescription) > MaxShortDescriptionLength {
		return fmt.Errorf("short description too long (max %d)", MaxShortDescriptionLength)
	}
	if a.Category == "" {
		return fmt.Errorf("category is required")
	}
	if a.Price <= 0 {
		return fmt.Errorf("price must be positive")
	}
	if a.Stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	if !a.Status.IsValid() {
		return fmt.Errorf("invalid status %q", a.Status)
	}
	for _, d := range []struct {
		name string
		val  *float64
	}{
		{"width", a.Dimensions.Width},
		{"height", a.Dimensions.Height},
		{"depth", a.Dimensions.Depth},
	} {
		if d.val != nil && *d.val <= 0 {
			return fmt.Errorf("%s must be positive", d.name)
		}
	}
	return nil
}

// ID returns the product identifier.
func (p *Product) ID() string { return p.id }

// Name returns the product name.
func (p *Product) Name() string { return p.attrs.Name }

// Description returns the full description.
func (p *Product) Description() string { return p.attrs.Description }

// ShortDescription returns the short description.
func (p *Product) ShortDescription() string { return p.attrs.ShortDescription }

// Category returns the product category.
func (p *Product) Category() string { return p.attrs.Category }

// Price returns the unit price.
func (p *Product) Price() float64 { return p.attrs.Price }

// Stock returns the units in stock.
func (p *Product) Stock() int { return p.attrs.Stock }

// Status returns the lifecycle state.
func (p *Product) Status() Status { return p.attrs.Status }

// Dimensions returns the physical dimensions.
func (p *Product) Dimensions() Dimensions { return p.attrs.Dimensions }

// MainImage returns the main image reference.
func (p *Product) MainImage() string { return p.attrs.MainImage }

// AdditionalImages returns the additional image references.
func (p *Product) AdditionalImages() []string { return p.attrs.AdditionalImages }

// CreatedAt returns the creation timestamp.
func (p *Product) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last-update timestamp.
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

// Vector returns the embedding vector.
func (p *Product) Vector() []float32 { return p.vector }

// Attrs returns a copy of the product attributes.
func (p *Product) Attrs() Attrs {
	a := p.attrs
	a.AdditionalImages = cloneStrings(a.AdditionalImages)
	return a
}

// SetVector sets the embedding vector in place (mutation).
func (p *Product) SetVector(v []float32) { p.vector = v }

// Touch advances the last-update timestamp.
func (p *Product) Touch(now time.Time) { p.updatedAt = now }

// SearchText returns the searchable text the embedding is computed from.
func (p *Product) SearchText() string {
	return SearchText(p.attrs.Name, p.attrs.Description, p.attrs.Category, p.attrs.ShortDescription)
}

// SearchText concatenates the non-empty values in fixed field order
// (name, description, category, short description) joined by single spaces.
// Pure and deterministic: identical inputs always produce identical output.
func SearchText(name, description, category, shortDescription string) string {
	parts := make([]string, 0, 4)
	for _, s := range []string{name, description, category, shortDescription} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
