package chi

import (
	"time"

	domprod "github.com/atelier-cloud/catalog/internal/domain/product"
	"github.com/atelier-cloud/catalog/internal/domain/product/patch"
	domprom "github.com/atelier-cloud/catalog/internal/domain/promo"
	"github.com/atelier-cloud/catalog/internal/domain/search/result"
)

// errorCode is a machine-readable error discriminator in error responses.
type errorCode string

const (
	codeBadRequest           errorCode = "bad_request"
	codeValidationFailed     errorCode = "validation_failed"
	codeProductNotFound      errorCode = "product_not_found"
	codePromoNotFound        errorCode = "promo_not_found"
	codeAlreadyExists        errorCode = "already_exists"
	codeEmbeddingUnavailable errorCode = "embedding_unavailable"
	codeSearchFailed         errorCode = "search_failed"
	codeInternalError        errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type createProductRequest struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"short_description,omitempty"`
	Category         string   `json:"category"`
	Price            float64  `json:"price"`
	Stock            int      `json:"stock"`
	Status           string   `json:"status,omitempty"`
	Width            *float64 `json:"width,omitempty"`
	Height           *float64 `json:"height,omitempty"`
	Depth            *float64 `json:"depth,omitempty"`
	MainImage        string   `json:"main_image,omitempty"`
	AdditionalImages []string `json:"additional_images,omitempty"`
}

func (r *createProductRequest) toAttrs() domprod.Attrs {
	return domprod.Attrs{
		Name:             r.Name,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		Category:         r.Category,
		Price:            r.Price,
		Stock:            r.Stock,
		Status:           domprod.Status(r.Status),
		Dimensions: domprod.Dimensions{
			Width:  r.Width,
			Height: r.Height,
			Depth:  r.Depth,
		},
		MainImage:        r.MainImage,
		AdditionalImages: r.AdditionalImages,
	}
}

type updateProductRequest struct {
	Name             *string  `json:"name,omitempty"`
	Description      *string  `json:"description,omitempty"`
	ShortDescription *string  `json:"short_description,omitempty"`
	Category         *string  `json:"category,omitempty"`
	Price            *float64 `json:"price,omitempty"`
	Stock            *int     `json:"stock,omitempty"`
	Status           *string  `json:"status,omitempty"`
	Width            *float64 `json:"width,omitempty"`
	Height           *float64 `json:"height,omitempty"`
	Depth            *float64 `json:"depth,omitempty"`
	MainImage        *string  `json:"main_image,omitempty"`
	AdditionalImages []string `json:"additional_images,omitempty"`
}

func (r *updateProductRequest) toPatch() patch.Patch {
	p := patch.Patch{
		Name:             r.Name,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		Category:         r.Category,
		Price:            r.Price,
		Stock:            r.Stock,
		Width:            r.Width,
		Height:           r.Height,
		Depth:            r.Depth,
		MainImage:        r.MainImage,
		AdditionalImages: r.AdditionalImages,
	}
	if r.Status != nil {
		st := domprod.Status(*r.Status)
		p.Status = &st
	}
	return p
}

type productResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"short_description,omitempty"`
	Category         string   `json:"category"`
	Price            float64  `json:"price"`
	Stock            int      `json:"stock"`
	Status           string   `json:"status"`
	Width            *float64 `json:"width,omitempty"`
	Height           *float64 `json:"height,omitempty"`
	Depth            *float64 `json:"depth,omitempty"`
	MainImage        string   `json:"main_image,omitempty"`
	AdditionalImages []string `json:"additional_images,omitempty"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

func productToResponse(p *domprod.Product) productResponse {
	dims := p.Dimensions()
	return productResponse{
		ID:               p.ID(),
		Name:             p.Name(),
		Description:      p.Description(),
		ShortDescription: p.ShortDescription(),
		Category:         p.Category(),
		Price:            p.Price(),
		Stock:            p.Stock(),
		Status:           string(p.Status()),
		Width:            dims.Width,
		Height:           dims.Height,
		Depth:            dims.Depth,
		MainImage:        p.MainImage(),
		AdditionalImages: p.AdditionalImages(),
		CreatedAt:        p.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:        p.UpdatedAt().UTC().Format(time.RFC3339),
	}
}

type listProductsResponse struct {
	Products []productResponse `json:"products"`
	Total    int               `json:"total"`
	Offset   int               `json:"offset"`
	Limit    int               `json:"limit"`
}

type searchRequest struct {
	Query    string   `json:"query"`
	Semantic *bool    `json:"semantic,omitempty"`
	TopK     int      `json:"top_k,omitempty"`
	MinScore *float64 `json:"min_score,omitempty"`
	Category string   `json:"category,omitempty"`
	Status   string   `json:"status,omitempty"`
	MinPrice *float64 `json:"min_price,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
}

type searchHit struct {
	Score   float64         `json:"score"`
	Product productResponse `json:"product"`
}

type searchResponse struct {
	Query    string      `json:"query"`
	Semantic bool        `json:"semantic"`
	Total    int         `json:"total"`
	Results  []searchHit `json:"results"`
}

func resultsToResponse(queryText string, semantic bool, results []result.Result) searchResponse {
	hits := make([]searchHit, 0, len(results))
	for i := range results {
		p := results[i].Product()
		hits = append(hits, searchHit{
			Score:   results[i].Score(),
			Product: productToResponse(&p),
		})
	}
	return searchResponse{
		Query:    queryText,
		Semantic: semantic,
		Total:    len(hits),
		Results:  hits,
	}
}

type createPromoRequest struct {
	Code    string     `json:"code"`
	Type    string     `json:"type"`
	Value   float64    `json:"value"`
	MaxUses int        `json:"max_uses,omitempty"`
	EndDate *time.Time `json:"end_date,omitempty"`
}

type promoResponse struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Type      string     `json:"type"`
	Value     float64    `json:"value"`
	MaxUses   int        `json:"max_uses"`
	Uses      int        `json:"uses"`
	Status    string     `json:"status"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt string     `json:"created_at"`
}

func promoToResponse(p *domprom.Promo, now time.Time) promoResponse {
	return promoResponse{
		ID:        p.ID(),
		Code:      p.Code(),
		Type:      string(p.Type()),
		Value:     p.Value(),
		MaxUses:   p.MaxUses(),
		Uses:      p.Uses(),
		Status:    string(p.Status(now)),
		EndDate:   p.EndDate(),
		CreatedAt: p.CreatedAt().UTC().Format(time.RFC3339),
	}
}

type listPromosResponse struct {
	Promos []promoResponse `json:"promos"`
	Total  int             `json:"total"`
}

type redeemPromoRequest struct {
	Amount float64 `json:"amount"`
}

type redeemPromoResponse struct {
	Code        string  `json:"code"`
	Discount    float64 `json:"discount"`
	FinalAmount float64 `json:"final_amount"`
	Uses        int     `json:"uses"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
