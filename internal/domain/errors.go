package domain

import "errors"

var (
	// ErrInvalidArgument signals malformed caller input (empty query, bad top_k).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrContentNotFound signals a missing content item.
	ErrContentNotFound = errors.New("content not found")
	// ErrCustomerNotFound signals a missing customer record.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrDegenerateVector signals a zero-norm vector that cannot be scored.
	ErrDegenerateVector = errors.New("degenerate vector")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrRepositoryUnavailable signals a content store failure.
	ErrRepositoryUnavailable = errors.New("repository unavailable")
	// ErrClassifierError signals a text-safety classifier failure.
	ErrClassifierError = errors.New("classifier error")
)
