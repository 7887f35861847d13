package segment

import (
	"context"

	domseg "github.com/nermeennasim/chainreach-ai/internal/domain/segment"
)

// CustomerReader looks up precomputed RFM features by customer id.
type CustomerReader interface {
	// RFMByID returns the customer's RFM features, or domain.ErrCustomerNotFound.
	RFMByID(ctx context.Context, customerID string) (domseg.RFMFeatures, error)
}
