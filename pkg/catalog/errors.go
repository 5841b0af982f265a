package catalog

import "github.com/atelier-cloud/catalog/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrProductNotFound      = domain.ErrProductNotFound
	ErrPromoNotFound        = domain.ErrPromoNotFound
	ErrValidation           = domain.ErrValidation
	ErrAlreadyExists        = domain.ErrAlreadyExists
	ErrEmbeddingUnavailable = domain.ErrEmbeddingUnavailable
	ErrRetrieval            = domain.ErrRetrieval
)
