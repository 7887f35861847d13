// Package azure is the text-safety classifier backed by the Azure AI
// Content Safety REST API.
package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nermeennasim/chainreach-ai/internal/domain"
	domcomp "github.com/nermeennasim/chainreach-ai/internal/domain/compliance"
)

const (
	analyzePath = "/contentsafety/text:analyze"
	apiVersion  = "2024-09-01"

	defaultTimeout = 10 * time.Second
)

// Classifier calls the Content Safety text:analyze endpoint.
type Classifier struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *zap.Logger
}

// Config holds the Content Safety connection settings.
type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// NewClassifier creates an Azure Content Safety classifier.
func NewClassifier(cfg *Config) *Classifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Classifier{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
		logger:   cfg.Logger,
	}
}

// Mode implements compliance.Classifier.
func (c *Classifier) Mode() string { return domcomp.ModeAzure }

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	CategoriesAnalysis []struct {
		Category string `json:"category"`
		Severity int    `json:"severity"`
	} `json:"categoriesAnalysis"`
}

// Classify scores one text. A missing category in the response counts as
// severity 0. All failures wrap domain.ErrClassifierError.
func (c *Classifier) Classify(ctx context.Context, text string) (domcomp.CategoryScores, error) {
	body, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return domcomp.CategoryScores{}, fmt.Errorf("marshal analyze request: %w", err)
	}

	url := fmt.Sprintf("%s%s?api-version=%s", c.endpoint, analyzePath, apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domcomp.CategoryScores{}, fmt.Errorf("build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return domcomp.CategoryScores{}, fmt.Errorf("content safety request: %w: %w", domain.ErrClassifierError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domcomp.CategoryScores{}, fmt.Errorf("content safety status %d: %s: %w",
			resp.StatusCode, strings.TrimSpace(string(snippet)), domain.ErrClassifierError)
	}

	var parsed analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domcomp.CategoryScores{}, fmt.Errorf("decode analyze response: %w: %w", domain.ErrClassifierError, err)
	}

	var scores domcomp.CategoryScores
	for _, cat := range parsed.CategoriesAnalysis {
		switch cat.Category {
		case "Hate":
			scores.Hate = cat.Severity
		case "Sexual":
			scores.Sexual = cat.Severity
		case "Violence":
			scores.Violence = cat.Severity
		case "SelfHarm":
			scores.SelfHarm = cat.Severity
		default:
			c.logger.Debug("Ignoring unknown safety category", zap.String("category", cat.Category))
		}
	}
	return scores, nil
}
