// Package retrieval implements the content ranking core: query embedding,
// candidate filtering, cosine scoring, threshold rejection, and top-k
// selection.
package retrieval

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/nermeennasim/chainreach-ai/internal/domain"
	"github.com/nermeennasim/chainreach-ai/internal/domain/content"
	domret "github.com/nermeennasim/chainreach-ai/internal/domain/retrieval"
	"github.com/nermeennasim/chainreach-ai/internal/metrics"
	"github.com/nermeennasim/chainreach-ai/internal/similarity"
)

// Default pagination bounds for ListActive.
const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// Service ranks stored marketing content against free-text queries.
// It is stateless per call and safe for concurrent use.
type Service struct {
	repo         Repository
	embed        Embedder
	embeddingDim int
	defaultTopK  int
	threshold    float64
	defaultLimit int
	maxLimit     int
	logger       *zap.Logger
}

// New creates a ranking service.
func New(repo Repository, embed Embedder, embeddingDim, defaultTopK int, threshold float64, logger *zap.Logger) *Service {
	return &Service{
		repo:         repo,
		embed:        embed,
		embeddingDim: embeddingDim,
		defaultTopK:  defaultTopK,
		threshold:    threshold,
		defaultLimit: defaultListLimit,
		maxLimit:     maxListLimit,
		logger:       logger,
	}
}

// WithPagination overrides listing page size bounds.
func (s *Service) WithPagination(defaultLimit, maxLimit int) *Service {
	if defaultLimit > 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// DefaultTopK returns the configured top-k fallback.
func (s *Service) DefaultTopK() int { return s.defaultTopK }

// scored pairs a candidate with its similarity before truncation.
type scored struct {
	item  content.Item
	score float64
}

// Rank embeds the query, scores all matching active candidates, rejects
// those below the similarity threshold, and returns the top-k results
// ordered by score descending (repository order on ties).
func (s *Service) Rank(ctx context.Context, req *domret.RankRequest) ([]domret.Result, error) {
	embResult, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}
	queryVec := embResult.Embedding
	if len(queryVec) != s.embeddingDim {
		return nil, fmt.Errorf("%w: query embedding has %d dimensions, want %d",
			domain.ErrEmbeddingProviderError, len(queryVec), s.embeddingDim)
	}

	candidates, err := s.repo.Query(ctx, req.Criteria())
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}

	qualifying := make([]scored, 0, len(candidates))
	for i := range candidates {
		item := &candidates[i]
		if !item.HasValidEmbedding(s.embeddingDim) {
			s.logger.Warn("skipping item with malformed embedding",
				zap.String("content_id", item.ID()),
				zap.Int("embedding_len", len(item.Embedding())),
			)
			continue
		}

		score, err := similarity.Cosine(queryVec, item.Embedding())
		if err != nil {
			// Degenerate stored vectors are skipped, never fatal.
			s.logger.Warn("skipping unscorable item",
				zap.String("content_id", item.ID()),
				zap.Error(err),
			)
			continue
		}

		if score < s.threshold {
			continue
		}
		qualifying = append(qualifying, scored{item: candidates[i], score: score})
	}

	// Stable: ties keep repository order.
	sort.SliceStable(qualifying, func(i, j int) bool {
		return qualifying[i].score > qualifying[j].score
	})

	if len(qualifying) > req.TopK() {
		qualifying = qualifying[:req.TopK()]
	}

	results := make([]domret.Result, len(qualifying))
	for i, sc := range qualifying {
		results[i] = domret.FromItem(&sc.item, sc.score)
	}
	metrics.RetrievalResultsCount.Observe(float64(len(results)))
	return results, nil
}

// GetByID returns a single item by id with the direct-lookup sentinel
// score. Absence surfaces as domain.ErrContentNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (domret.Result, error) {
	if id == "" {
		return domret.Result{}, fmt.Errorf("%w: content id is required", domain.ErrInvalidArgument)
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domret.Result{}, fmt.Errorf("get content %s: %w", id, err)
	}
	return domret.FromItem(&item, domret.ScoreDirect), nil
}

// ListActive returns an offset window over active items in repository
// order, each carrying the unranked sentinel score. An out-of-range skip
// yields an empty slice, never an error.
func (s *Service) ListActive(ctx context.Context, skip, limit int) ([]domret.Result, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	items, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}

	results := make([]domret.Result, len(items))
	for i := range items {
		results[i] = domret.FromItem(&items[i], domret.ScoreUnranked)
	}
	return results, nil
}
