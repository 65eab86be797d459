package prodsearch

import "github.com/kailas-cloud/prodsearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidCriteria     = domain.ErrInvalidCriteria
	ErrInvalidProduct      = domain.ErrInvalidProduct
	ErrEmptyQuery          = domain.ErrEmptyQuery
	ErrCatalogNotFound     = domain.ErrCatalogNotFound
	ErrCatalogMalformed    = domain.ErrCatalogMalformed
	ErrIntentProviderError = domain.ErrIntentProviderError
	ErrMalformedExtraction = domain.ErrMalformedExtraction
	ErrRateLimited         = domain.ErrRateLimited
	ErrIntentQuotaExceeded = domain.ErrIntentQuotaExceeded
)
