// Seed loader for the chainreach content store.
// Reads marketing content and customer RFM features from JSON files,
// embeds content bodies with the configured provider, and upserts
// everything into the store.
//
// Usage:
//
//	chainreach-seed -content seed/content.json -customers seed/customers.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nermeennasim/chainreach-ai/internal/config"
	dbRedis "github.com/nermeennasim/chainreach-ai/internal/db/redis"
	"github.com/nermeennasim/chainreach-ai/internal/domain"
	domcontent "github.com/nermeennasim/chainreach-ai/internal/domain/content"
	domseg "github.com/nermeennasim/chainreach-ai/internal/domain/segment"
	logpkg "github.com/nermeennasim/chainreach-ai/internal/logger"
	contentrepo "github.com/nermeennasim/chainreach-ai/internal/repository/content"
	customerrepo "github.com/nermeennasim/chainreach-ai/internal/repository/customer"
	"github.com/nermeennasim/chainreach-ai/internal/transport/hashembed"
	openaiEmb "github.com/nermeennasim/chainreach-ai/internal/transport/openai"
)

type seedContent struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Content          string   `json:"content"`
	ContentType      string   `json:"content_type"`
	CampaignName     string   `json:"campaign_name"`
	Audience         string   `json:"audience"`
	ComplianceStatus string   `json:"compliance_status"`
	Source           string   `json:"source"`
	Tags             []string `json:"tags"`
}

type seedCustomer struct {
	CustomerID string  `json:"customer_id"`
	Recency    float64 `json:"recency"`
	Frequency  float64 `json:"frequency"`
	Monetary   float64 `json:"monetary"`
}

func main() {
	var contentPath, customersPath string
	flag.StringVar(&contentPath, "content", "", "path to content JSON file")
	flag.StringVar(&customersPath, "customers", "", "path to customer RFM JSON file")
	flag.Parse()

	if contentPath == "" && customersPath == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -content and/or -customers")
		os.Exit(2)
	}

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

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := run(ctx, &cfg, contentPath, customersPath, logger); err != nil {
		logger.Fatal("Seed failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, contentPath, customersPath string, logger *zap.Logger) error {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("store not ready: %w", err)
	}

	if contentPath != "" {
		embedder, err := buildEmbedder(&cfg.Embedding, logger)
		if err != nil {
			return err
		}
		if err := seedContentItems(ctx, contentPath, contentrepo.New(store), embedder, logger); err != nil {
			return err
		}
	}

	if customersPath != "" {
		if err := seedCustomers(ctx, customersPath, customerrepo.New(store), logger); err != nil {
			return err
		}
	}

	return nil
}

func buildEmbedder(cfg *config.EmbeddingConfig, logger *zap.Logger) (domain.Embedder, error) {
	if cfg.Provider == "openai" {
		return openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
			Logger:     logger,
		}), nil
	}
	emb, err := hashembed.New(cfg.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("create hash embedder: %w", err)
	}
	return emb, nil
}

func seedContentItems(
	ctx context.Context,
	path string,
	repo *contentrepo.Repo,
	embedder domain.Embedder,
	logger *zap.Logger,
) error {
	var entries []seedContent
	if err := readJSONFile(path, &entries); err != nil {
		return err
	}

	created, updated := 0, 0
	for _, e := range entries {
		result, err := embedder.Embed(ctx, e.Content)
		if err != nil {
			return fmt.Errorf("embed content %s: %w", e.ID, err)
		}

		item, err := domcontent.New(
			e.ID, e.Title, e.Content, e.ContentType,
			e.CampaignName, e.Audience, e.ComplianceStatus, e.Source,
			e.Tags, time.Now().UTC(), true, result.Embedding,
		)
		if err != nil {
			return fmt.Errorf("content %s: %w", e.ID, err)
		}

		isNew, err := repo.Upsert(ctx, &item)
		if err != nil {
			return fmt.Errorf("upsert content %s: %w", e.ID, err)
		}
		if isNew {
			created++
		} else {
			updated++
		}
	}

	logger.Info("Content seeded",
		zap.String("file", path),
		zap.Int("created", created),
		zap.Int("updated", updated),
	)
	return nil
}

func seedCustomers(ctx context.Context, path string, repo *customerrepo.Repo, logger *zap.Logger) error {
	var entries []seedCustomer
	if err := readJSONFile(path, &entries); err != nil {
		return err
	}

	for _, e := range entries {
		if e.CustomerID == "" {
			return fmt.Errorf("customer entry without customer_id")
		}
		err := repo.Upsert(ctx, e.CustomerID, domseg.RFMFeatures{
			Recency:   e.Recency,
			Frequency: e.Frequency,
			Monetary:  e.Monetary,
		})
		if err != nil {
			return fmt.Errorf("upsert customer %s: %w", e.CustomerID, err)
		}
	}

	logger.Info("Customers seeded", zap.String("file", path), zap.Int("count", len(entries)))
	return nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
