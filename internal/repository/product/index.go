package product

import (
	"github.com/atelier-cloud/catalog/internal/db"
	"github.com/atelier-cloud/catalog/internal/domain"
)

// KeyPrefix returns the hash key prefix for product records.
func KeyPrefix() string {
	return domain.KeyPrefix + "product:"
}

// Key returns the hash key for a product ID.
func Key(id string) string {
	return KeyPrefix() + id
}

// IndexName returns the FT index name for the product index.
func IndexName() string {
	return domain.KeyPrefix + "product:idx"
}

// IndexOptions tunes the HNSW vector field.
type IndexOptions struct {
	Dimensions  int
	HNSWM       int
	EFConstruct int
}

// IndexDefinition builds the FT index over product hashes: TAG facets for
// exact filtering, sortable created_at for listing, TEXT fields for
// substring search, and the HNSW cosine vector field.
func IndexDefinition(opts IndexOptions) (*db.IndexDefinition, error) {
	return db.NewIndex(IndexName()).
		Prefix(KeyPrefix()).
		Text(fieldName).
		Text(fieldDescription).
		Tag(fieldCategory).
		Tag(fieldStatus).
		Numeric(fieldPrice).
		Numeric(fieldStock).
		NumericSortable(fieldCreatedAt).
		VectorHNSW(fieldVector, opts.Dimensions, db.DistanceCosine, opts.HNSWM, opts.EFConstruct).
		Alias("vector").
		Build()
}
