package retrieval

import (
	"fmt"
	"strings"

	"github.com/nermeennasim/chainreach-ai/internal/domain"
	"github.com/nermeennasim/chainreach-ai/internal/domain/content"
)

// MaxQueryLength is the maximum allowed query length.
const MaxQueryLength = 4096

// RankRequest is a validated retrieval query.
type RankRequest struct {
	query    string
	criteria content.Criteria
	topK     int
}

// NewRankRequest validates and normalizes rank parameters. The query must
// be non-empty after trimming. topK 0 falls back to defaultTopK; a
// negative topK is rejected.
func NewRankRequest(query string, criteria content.Criteria, topK, defaultTopK int) (RankRequest, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return RankRequest{}, fmt.Errorf("%w: query is required", domain.ErrInvalidArgument)
	}
	if len(query) > MaxQueryLength {
		return RankRequest{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidArgument, MaxQueryLength)
	}
	if topK < 0 {
		return RankRequest{}, fmt.Errorf("%w: top_k must be >= 1, got %d", domain.ErrInvalidArgument, topK)
	}
	if topK == 0 {
		topK = defaultTopK
	}
	return RankRequest{query: query, criteria: criteria, topK: topK}, nil
}

// Query returns the trimmed query text.
func (r *RankRequest) Query() string { return r.query }

// Criteria returns the filter criteria.
func (r *RankRequest) Criteria() content.Criteria { return r.criteria }

// TopK returns the number of results to return.
func (r *RankRequest) TopK() int { return r.topK }
