package retrieval

import (
	"context"

	"github.com/nermeennasim/chainreach-ai/internal/domain"
	"github.com/nermeennasim/chainreach-ai/internal/domain/content"
)

// Repository defines the storage contract for content retrieval.
// All operations see active items only, except Get which looks up any id.
type Repository interface {
	// Query returns active items matching the criteria, in repository order.
	Query(ctx context.Context, criteria content.Criteria) ([]content.Item, error)
	// Get returns an item by id, or domain.ErrContentNotFound.
	Get(ctx context.Context, id string) (content.Item, error)
	// List returns an offset window over active items in repository order.
	List(ctx context.Context, skip, limit int) ([]content.Item, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
