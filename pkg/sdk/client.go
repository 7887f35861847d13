package chainreach

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nermeennasim/chainreach-ai/internal/db"
	dbRedis "github.com/nermeennasim/chainreach-ai/internal/db/redis"
	"github.com/nermeennasim/chainreach-ai/internal/domain"
	domcontent "github.com/nermeennasim/chainreach-ai/internal/domain/content"
	domret "github.com/nermeennasim/chainreach-ai/internal/domain/retrieval"
	domseg "github.com/nermeennasim/chainreach-ai/internal/domain/segment"
	contentrepo "github.com/nermeennasim/chainreach-ai/internal/repository/content"
	customerrepo "github.com/nermeennasim/chainreach-ai/internal/repository/customer"
	"github.com/nermeennasim/chainreach-ai/internal/transport/hashembed"
	openaiEmb "github.com/nermeennasim/chainreach-ai/internal/transport/openai"
	healthuc "github.com/nermeennasim/chainreach-ai/internal/usecase/health"
	retrievaluc "github.com/nermeennasim/chainreach-ai/internal/usecase/retrieval"
	segmentuc "github.com/nermeennasim/chainreach-ai/internal/usecase/segment"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so tests can substitute the services.
type retrievalUseCase interface {
	Rank(ctx context.Context, req *domret.RankRequest) ([]domret.Result, error)
	GetByID(ctx context.Context, id string) (domret.Result, error)
	ListActive(ctx context.Context, skip, limit int) ([]domret.Result, error)
	DefaultTopK() int
}

type segmentUseCase interface {
	PredictManual(ctx context.Context, f domseg.RFMFeatures) (domseg.Prediction, error)
	PredictCustomer(ctx context.Context, customerID string) (domseg.Prediction, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

type contentWriter interface {
	Upsert(ctx context.Context, item *domcontent.Item) (bool, error)
	Delete(ctx context.Context, id string) error
}

type customerWriter interface {
	Upsert(ctx context.Context, customerID string, f domseg.RFMFeatures) error
}

// Config holds SDK connection settings.
type Config struct {
	// Addrs are the store addresses. Required.
	Addrs    []string
	Username string
	Password string

	// Embedding provider. Defaults to the deterministic hash provider
	// with 384 dimensions.
	EmbeddingProvider string // "openai" or "hash"
	EmbeddingAPIKey   string
	EmbeddingBaseURL  string
	EmbeddingModel    string
	Dimensions        int

	// Ranking parameters. Zero values take the service defaults.
	DefaultTopK         int
	SimilarityThreshold float64

	// SegmentationModelPath enables segmentation methods when set.
	SegmentationModelPath string

	// ReadinessTimeout bounds the initial connection wait.
	ReadinessTimeout time.Duration

	Logger *zap.Logger
}

// Client is the chainreach SDK entry point.
type Client struct {
	store     db.Store
	embedder  domain.Embedder
	retrieval retrievalUseCase
	segments  segmentUseCase
	health    healthUseCase
	content   contentWriter
	customers customerWriter
}

// New connects to the store and assembles the services.
func New(cfg Config) (*Client, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("chainreach: at least one store address is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	dims := cfg.Dimensions
	if dims <= 0 {
		dims = 384
	}
	topK := cfg.DefaultTopK
	if topK <= 0 {
		topK = 3
	}
	threshold := cfg.SimilarityThreshold
	if threshold == 0 {
		threshold = 0.5
	}

	embedder, err := buildEmbedder(&cfg, dims, logger)
	if err != nil {
		return nil, err
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Username: cfg.Username,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("chainreach: create store: %w", err)
	}

	timeout := cfg.ReadinessTimeout
	if timeout <= 0 {
		timeout = defaultReadinessTimeout
	}
	if err := store.WaitForReady(context.Background(), timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("chainreach: store not ready: %w", err)
	}

	contentRepo := contentrepo.New(store)
	customerRepo := customerrepo.New(store)

	var segments segmentUseCase
	if cfg.SegmentationModelPath != "" {
		model, err := domseg.LoadModel(cfg.SegmentationModelPath)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("chainreach: load segmentation model: %w", err)
		}
		segments = segmentuc.New(model, customerRepo, logger)
	}

	return &Client{
		store:     store,
		embedder:  embedder,
		retrieval: retrievaluc.New(contentRepo, embedder, dims, topK, threshold, logger),
		segments:  segments,
		health:    healthuc.New(store, nil),
		content:   contentRepo,
		customers: customerRepo,
	}, nil
}

func buildEmbedder(cfg *Config, dims int, logger *zap.Logger) (domain.Embedder, error) {
	switch cfg.EmbeddingProvider {
	case "openai":
		if cfg.EmbeddingAPIKey == "" {
			return nil, errors.New("chainreach: EmbeddingAPIKey is required for the openai provider")
		}
		return openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.EmbeddingAPIKey,
			BaseURL:    cfg.EmbeddingBaseURL,
			Model:      cfg.EmbeddingModel,
			Dimensions: dims,
			Logger:     logger,
		}), nil
	case "", "hash":
		emb, err := hashembed.New(dims)
		if err != nil {
			return nil, fmt.Errorf("chainreach: %w", err)
		}
		return emb, nil
	default:
		return nil, fmt.Errorf("chainreach: unknown embedding provider %q", cfg.EmbeddingProvider)
	}
}

// Close releases the store connection.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded"
	Checks map[string]string // component -> "ok"/"error"
}

// Health checks store availability.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.health.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
