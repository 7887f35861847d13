package chainreach

import (
	"context"
	"fmt"
	"time"

	domcontent "github.com/nermeennasim/chainreach-ai/internal/domain/content"
	domret "github.com/nermeennasim/chainreach-ai/internal/domain/retrieval"
)

// Content is one piece of marketing content.
type Content struct {
	ID               string
	Title            string
	Body             string
	ContentType      string // email, blog, ad, social, ...
	CampaignName     string
	Audience         string
	ComplianceStatus string // approved, pending, rejected
	Source           string
	Tags             []string
}

// SearchResult is a ranked content item.
type SearchResult struct {
	Content
	SimilarityScore float64
}

// SearchOptions narrow and size a search.
type SearchOptions struct {
	TopK             int
	ContentType      string
	CampaignName     string
	Audience         string
	ComplianceStatus string
	Tags             []string
}

// Search ranks stored content against a free-text query.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error) {
	criteria := domcontent.NewCriteria(
		opts.ContentType, opts.CampaignName, opts.Audience, opts.ComplianceStatus, opts.Tags,
	)
	req, err := domret.NewRankRequest(query, criteria, opts.TopK, c.retrieval.DefaultTopK())
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results, err := c.retrieval.Rank(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return resultsToSDK(results), nil
}

// GetContent returns one item by id with the direct-lookup score.
func (c *Client) GetContent(ctx context.Context, id string) (SearchResult, error) {
	result, err := c.retrieval.GetByID(ctx, id)
	if err != nil {
		return SearchResult{}, fmt.Errorf("get content: %w", err)
	}
	return resultToSDK(&result), nil
}

// ListContent returns an offset window over active content.
func (c *Client) ListContent(ctx context.Context, skip, limit int) ([]SearchResult, error) {
	results, err := c.retrieval.ListActive(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return resultsToSDK(results), nil
}

// UpsertContent embeds the body and writes the item. Returns true if created.
func (c *Client) UpsertContent(ctx context.Context, content Content) (bool, error) {
	embedding, err := c.embedder.Embed(ctx, content.Body)
	if err != nil {
		return false, fmt.Errorf("upsert content: embed body: %w", err)
	}

	item, err := domcontent.New(
		content.ID, content.Title, content.Body, content.ContentType,
		content.CampaignName, content.Audience, content.ComplianceStatus, content.Source,
		content.Tags, time.Now().UTC(), true, embedding.Embedding,
	)
	if err != nil {
		return false, fmt.Errorf("upsert content: %w", err)
	}

	created, err := c.content.Upsert(ctx, &item)
	if err != nil {
		return false, fmt.Errorf("upsert content: %w", err)
	}
	return created, nil
}

// DeleteContent removes an item.
func (c *Client) DeleteContent(ctx context.Context, id string) error {
	if err := c.content.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}

func resultToSDK(r *domret.Result) SearchResult {
	return SearchResult{
		Content: Content{
			ID:               r.ID(),
			Title:            r.Title(),
			Body:             r.Body(),
			ContentType:      r.ContentType(),
			CampaignName:     r.CampaignName(),
			Audience:         r.Audience(),
			ComplianceStatus: r.ComplianceStatus(),
			Source:           r.Source(),
			Tags:             r.Tags(),
		},
		SimilarityScore: r.Score(),
	}
}

func resultsToSDK(results []domret.Result) []SearchResult {
	out := make([]SearchResult, len(results))
	for i := range results {
		out[i] = resultToSDK(&results[i])
	}
	return out
}
