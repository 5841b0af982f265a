package catalog

import (
	"time"

	domprod "github.com/atelier-cloud/catalog/internal/domain/product"
	"github.com/atelier-cloud/catalog/internal/domain/product/patch"
	domprom "github.com/atelier-cloud/catalog/internal/domain/promo"
	"github.com/atelier-cloud/catalog/internal/domain/search/filter"
)

// ProductStatus is the product lifecycle state.
type ProductStatus string

// Product status constants.
const (
	StatusDraft      ProductStatus = "draft"
	StatusOnline     ProductStatus = "online"
	StatusOutOfStock ProductStatus = "out-of-stock"
)

// ProductInput holds the attributes for creating a product.
// Status defaults to draft when empty.
type ProductInput struct {
	Name             string
	Description      string
	ShortDescription string
	Category         string
	Price            float64
	Stock            int
	Status           ProductStatus
	Width            *float64
	Height           *float64
	Depth            *float64
	MainImage        string
	AdditionalImages []string
}

// ProductUpdate is a partial product update. Nil fields are unchanged.
type ProductUpdate struct {
	Name             *string
	Description      *string
	ShortDescription *string
	Category         *string
	Price            *float64
	Stock            *int
	Status           *ProductStatus
	Width            *float64
	Height           *float64
	Depth            *float64
	MainImage        *string
	AdditionalImages []string
}

// Product is a catalog item.
type Product struct {
	ID               string
	Name             string
	Description      string
	ShortDescription string
	Category         string
	Price            float64
	Stock            int
	Status           ProductStatus
	Width            *float64
	Height           *float64
	Depth            *float64
	MainImage        string
	AdditionalImages []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Filters narrows listings and searches by category, status, and price range.
// Zero values mean unconstrained.
type Filters struct {
	Category string
	Status   ProductStatus
	MinPrice *float64
	MaxPrice *float64
}

// ListOptions controls product listing pagination.
type ListOptions struct {
	Filters Filters
	Offset  int
	Limit   int
}

// ListResult is a page of products with the total match count.
type ListResult struct {
	Products []Product
	Total    int
}

// SearchOptions configures a search query.
type SearchOptions struct {
	Filters  Filters
	TopK     int      // 0 = default 10, capped at 100
	MinScore *float64 // semantic only; nil = default 0.5
}

// SearchHit is a single search result.
type SearchHit struct {
	Score   float64
	Product Product
}

// PromoType is the discount kind.
type PromoType string

// Promo type constants.
const (
	PromoPercentage PromoType = "percentage"
	PromoFixed      PromoType = "fixed"
)

// PromoInput holds the attributes for creating a promo code.
type PromoInput struct {
	Code    string
	Type    PromoType
	Value   float64
	MaxUses int // 0 = unlimited
	EndDate *time.Time
}

// Promo is a promotional discount code.
type Promo struct {
	ID        string
	Code      string
	Type      PromoType
	Value     float64
	MaxUses   int
	Uses      int
	EndDate   *time.Time
	CreatedAt time.Time
}

// Redemption is the outcome of redeeming a promo code.
type Redemption struct {
	Code        string
	Discount    float64
	FinalAmount float64
	Uses        int
}

func (in ProductInput) toAttrs() domprod.Attrs {
	return domprod.Attrs{
		Name:             in.Name,
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		Category:         in.Category,
		Price:            in.Price,
		Stock:            in.Stock,
		Status:           domprod.Status(in.Status),
		Dimensions: domprod.Dimensions{
			Width:  in.Width,
			Height: in.Height,
			Depth:  in.Depth,
		},
		MainImage:        in.MainImage,
		AdditionalImages: in.AdditionalImages,
	}
}

func (u ProductUpdate) toPatch() patch.Patch {
	p := patch.Patch{
		Name:             u.Name,
		Description:      u.Description,
		ShortDescription: u.ShortDescription,
		Category:         u.Category,
		Price:            u.Price,
		Stock:            u.Stock,
		Width:            u.Width,
		Height:           u.Height,
		Depth:            u.Depth,
		MainImage:        u.MainImage,
		AdditionalImages: u.AdditionalImages,
	}
	if u.Status != nil {
		st := domprod.Status(*u.Status)
		p.Status = &st
	}
	return p
}

func (f Filters) toInternal() filter.Filters {
	return filter.Filters{
		Category: f.Category,
		Status:   domprod.Status(f.Status),
		MinPrice: f.MinPrice,
		MaxPrice: f.MaxPrice,
	}
}

func fromInternalProduct(p *domprod.Product) Product {
	dims := p.Dimensions()
	return Product{
		ID:               p.ID(),
		Name:             p.Name(),
		Description:      p.Description(),
		ShortDescription: p.ShortDescription(),
		Category:         p.Category(),
		Price:            p.Price(),
		Stock:            p.Stock(),
		Status:           ProductStatus(p.Status()),
		Width:            dims.Width,
		Height:           dims.Height,
		Depth:            dims.Depth,
		MainImage:        p.MainImage(),
		AdditionalImages: p.AdditionalImages(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
}

func fromInternalPromo(p *domprom.Promo) Promo {
	return Promo{
		ID:        p.ID(),
		Code:      p.Code(),
		Type:      PromoType(p.Type()),
		Value:     p.Value(),
		MaxUses:   p.MaxUses(),
		Uses:      p.Uses(),
		EndDate:   p.EndDate(),
		CreatedAt: p.CreatedAt(),
	}
}
