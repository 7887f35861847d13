// Package retrieval defines the ranked retrieval request and result values.
package retrieval

import (
	"math"

	"github.com/nermeennasim/chainreach-ai/internal/domain/content"
)

// Sentinel scores for unranked results.
const (
	// ScoreDirect marks a direct by-id lookup that bypassed scoring.
	ScoreDirect = 1.0
	// ScoreUnranked marks a listing entry that was never scored.
	ScoreUnranked = 0.0
)

// Result is a single retrieved content item with its similarity score.
type Result struct {
	id               string
	title            string
	body             string
	contentType      string
	campaignName     string
	audience         string
	complianceStatus string
	source           string
	tags             []string
	score            float64
}

// FromItem builds a Result from a content item and a similarity score.
// Ranked scores are rounded to 4 decimal places.
func FromItem(item *content.Item, score float64) Result {
	return Result{
		id:               item.ID(),
		title:            item.Title(),
		body:             item.Body(),
		contentType:      item.ContentType(),
		campaignName:     item.CampaignName(),
		audience:         item.Audience(),
		complianceStatus: item.ComplianceStatus(),
		source:           item.Source(),
		tags:             item.Tags(),
		score:            RoundScore(score),
	}
}

// RoundScore rounds a similarity score to 4 decimal places.
func RoundScore(score float64) float64 {
	return math.Round(score*10000) / 10000
}

// ID returns the item identifier.
func (r *Result) ID() string { return r.id }

// Title returns the item title.
func (r *Result) Title() string { return r.title }

// Body returns the item body text.
func (r *Result) Body() string { return r.body }

// ContentType returns the content type tag.
func (r *Result) ContentType() string { return r.contentType }

// CampaignName returns the campaign name.
func (r *Result) CampaignName() string { return r.campaignName }

// Audience returns the audience segment.
func (r *Result) Audience() string { return r.audience }

// ComplianceStatus returns the compliance status.
func (r *Result) ComplianceStatus() string { return r.complianceStatus }

// Source returns the ingestion source.
func (r *Result) Source() string { return r.source }

// Tags returns the item tags.
func (r *Result) Tags() []string { return r.tags }

// Score returns the similarity score.
func (r *Result) Score() float64 { return r.score }
