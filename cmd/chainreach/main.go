package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/nermeennasim/chainreach-ai/internal/config"
	"github.com/nermeennasim/chainreach-ai/internal/db"
	dbRedis "github.com/nermeennasim/chainreach-ai/internal/db/redis"
	"github.com/nermeennasim/chainreach-ai/internal/domain"
	domcomp "github.com/nermeennasim/chainreach-ai/internal/domain/compliance"
	domseg "github.com/nermeennasim/chainreach-ai/internal/domain/segment"
	logpkg "github.com/nermeennasim/chainreach-ai/internal/logger"
	"github.com/nermeennasim/chainreach-ai/internal/metrics"
	contentrepo "github.com/nermeennasim/chainreach-ai/internal/repository/content"
	customerrepo "github.com/nermeennasim/chainreach-ai/internal/repository/customer"
	"github.com/nermeennasim/chainreach-ai/internal/repository/embcache"
	azureTransport "github.com/nermeennasim/chainreach-ai/internal/transport/azure"
	chiTransport "github.com/nermeennasim/chainreach-ai/internal/transport/chi"
	"github.com/nermeennasim/chainreach-ai/internal/transport/hashembed"
	openaiEmb "github.com/nermeennasim/chainreach-ai/internal/transport/openai"
	"github.com/nermeennasim/chainreach-ai/internal/usecase/compliance"
	"github.com/nermeennasim/chainreach-ai/internal/usecase/health"
	"github.com/nermeennasim/chainreach-ai/internal/usecase/retrieval"
	"github.com/nermeennasim/chainreach-ai/internal/usecase/segment"
	"github.com/nermeennasim/chainreach-ai/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting chainreach API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("embedding_provider", cfg.Embedding.Provider),
		zap.String("compliance_mode", cfg.Compliance.Mode),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register collectors explicitly (no init())
	metrics.RegisterServiceMetrics()

	embedder := buildEmbedder(&cfg.Embedding, store, logger)
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	classifier := buildClassifier(&cfg.Compliance, logger)

	model, err := domseg.LoadModel(cfg.Segmentation.ModelPath)
	if err != nil {
		logger.Fatal("Failed to load segmentation model",
			zap.String("path", cfg.Segmentation.ModelPath), zap.Error(err))
	}
	logger.Info("Segmentation model loaded",
		zap.String("path", cfg.Segmentation.ModelPath),
		zap.Int("clusters", model.Clusters()),
	)

	contentRepo := contentrepo.New(store)
	customerRepo := customerrepo.New(store)

	retrievalSvc := retrieval.New(
		contentRepo, embedder,
		cfg.Embedding.Dimensions, cfg.Retrieval.DefaultTopK, cfg.Retrieval.SimilarityThreshold,
		logger,
	).WithPagination(cfg.Retrieval.DefaultPageSize, cfg.Retrieval.MaxPageSize)
	complianceSvc := compliance.New(classifier, cfg.Compliance.SeverityThreshold, logger)
	segmentSvc := segment.New(model, customerRepo, logger)
	healthSvc := health.New(store, newEmbeddingHealthChecker(embedder))

	server := chiTransport.NewServer(retrievalSvc, complianceSvc, segmentSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the embedder chain: provider -> cache.
func buildEmbedder(cfg *config.EmbeddingConfig, store db.Store, logger *zap.Logger) domain.Embedder {
	var base domain.Embedder
	switch cfg.Provider {
	case "openai":
		base = openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
			Logger:     logger,
		})
	default:
		// Validate() restricts the provider to openai|hash.
		hash, err := hashembed.New(cfg.Dimensions)
		if err != nil {
			logger.Fatal("Failed to create hash embedder", zap.Error(err))
		}
		base = hash
	}

	if cfg.Cache && store != nil {
		return embcache.New(base, store, metrics.EmbeddingCacheTotal, logger)
	}
	return base
}

// buildClassifier selects the text-safety backend by mode.
func buildClassifier(cfg *config.ComplianceConfig, logger *zap.Logger) compliance.Classifier {
	if cfg.Mode == domcomp.ModeAzure {
		return azureTransport.NewClassifier(&azureTransport.Config{
			Endpoint: cfg.Endpoint,
			APIKey:   cfg.APIKey,
			Logger:   logger,
		})
	}
	return azureTransport.NewMockClassifier()
}

// embeddingHealthChecker adapts domain.Embedder to health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}
