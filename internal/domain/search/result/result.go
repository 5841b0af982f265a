package result

import "github.com/atelier-cloud/catalog/internal/domain/product"

// Result pairs a product with its similarity score in [0,1]. Results are
// ordered by descending score; ties keep the index's native order, which is
// not deterministic for equal scores.
type Result struct {
	product product.Product
	score   float64
}

// New creates a search result.
func New(p product.Product, score float64) Result {
	return Result{product: p, score: score}
}

// Product returns the matched product. The product is borrowed from the
// store; search never mutates it.
func (r *Result) Product() product.Product { return r.product }

// Score returns the similarity score.
func (r *Result) Score() float64 { return r.score }
