package chainreach

import "github.com/nermeennasim/chainreach-ai/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidArgument        = domain.ErrInvalidArgument
	ErrContentNotFound        = domain.ErrContentNotFound
	ErrCustomerNotFound       = domain.ErrCustomerNotFound
	ErrVectorDimMismatch      = domain.ErrVectorDimMismatch
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrRepositoryUnavailable  = domain.ErrRepositoryUnavailable
)
