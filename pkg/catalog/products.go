package catalog

import (
	"context"
)

// ProductsService provides product CRUD operations.
type ProductsService struct {
	svc productUseCase
}

// Create validates the input, computes the embedding, and stores the product.
func (s *ProductsService) Create(ctx context.Context, in ProductInput) (Product, error) {
	p, err := s.svc.Create(ctx, in.toAttrs())
	if err != nil {
		return Product{}, err
	}
	return fromInternalProduct(&p), nil
}

// Get returns a product by id.
func (s *ProductsService) Get(ctx context.Context, id string) (Product, error) {
	p, err := s.svc.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	return fromInternalProduct(&p), nil
}

// Update applies a partial update. The embedding is recomputed only when a
// searchable text field (name, description, short description, category)
// changes.
func (s *ProductsService) Update(ctx context.Context, id string, u ProductUpdate) (Product, error) {
	p, err := s.svc.Update(ctx, id, u.toPatch())
	if err != nil {
		return Product{}, err
	}
	return fromInternalProduct(&p), nil
}

// Delete removes a product. Returns false without error when the product
// does not exist.
func (s *ProductsService) Delete(ctx context.Context, id string) (bool, error) {
	return s.svc.Delete(ctx, id)
}

// List returns a page of products sorted by creation time, newest first.
func (s *ProductsService) List(ctx context.Context, opts ListOptions) (ListResult, error) {
	products, total, err := s.svc.List(ctx, opts.Filters.toInternal(), opts.Offset, opts.Limit)
	if err != nil {
		return ListResult{}, err
	}
	out := ListResult{
		Products: make([]Product, 0, len(products)),
		Total:    total,
	}
	for i := range products {
		out.Products = append(out.Products, fromInternalProduct(&products[i]))
	}
	return out, nil
}
