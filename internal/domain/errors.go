package domain

import "errors"

var (
	// ErrProductNotFound signals a missing product. Absence is an expected
	// outcome, not a fault; callers translate it to a 404.
	ErrProductNotFound = errors.New("product not found")
	// ErrPromoNotFound signals a missing promo code.
	ErrPromoNotFound = errors.New("promo code not found")
	// ErrValidation signals malformed input data.
	ErrValidation = errors.New("validation failed")
	// ErrAlreadyExists signals a duplicate unique key.
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmbeddingUnavailable signals an embedding provider failure.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")
	// ErrRetrieval signals a vector index query failure.
	ErrRetrieval = errors.New("vector index query failed")
)
