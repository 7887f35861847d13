// Package content defines the marketing content item and its filter criteria.
package content

import (
	"fmt"
	"time"
)

// Known content type tags. Stored values are not restricted to this set.
const (
	TypeEmail  = "email"
	TypeBlog   = "blog"
	TypeAd     = "ad"
	TypeSocial = "social"
)

// Compliance statuses.
const (
	StatusApproved = "approved"
	StatusPending  = "pending"
	StatusRejected = "rejected"
)

// Item is one piece of marketing content with a precomputed embedding.
type Item struct {
	id               string
	title            string
	body             string
	contentType      string
	campaignName     string
	audience         string
	complianceStatus string
	source           string
	tags             []string
	createdAt        time.Time
	active           bool
	embedding        []float32
}

// New validates and creates an Item. Compliance status defaults to approved.
func New(
	id, title, body, contentType string,
	campaignName, audience, complianceStatus, source string,
	tags []string,
	createdAt time.Time,
	active bool,
	embedding []float32,
) (Item, error) {
	if id == "" {
		return Item{}, fmt.Errorf("content id is required")
	}
	if title == "" {
		return Item{}, fmt.Errorf("content title is required")
	}
	if body == "" {
		return Item{}, fmt.Errorf("content body is required")
	}
	if contentType == "" {
		return Item{}, fmt.Errorf("content type is required")
	}
	if complianceStatus == "" {
		complianceStatus = StatusApproved
	}
	return Item{
		id:               id,
		title:            title,
		body:             body,
		contentType:      contentType,
		campaignName:     campaignName,
		audience:         audience,
		complianceStatus: complianceStatus,
		source:           source,
		tags:             tags,
		createdAt:        createdAt,
		active:           active,
		embedding:        embedding,
	}, nil
}

// Reconstruct rebuilds an Item from storage without validation.
func Reconstruct(
	id, title, body, contentType string,
	campaignName, audience, complianceStatus, source string,
	tags []string,
	createdAt time.Time,
	active bool,
	embedding []float32,
) Item {
	return Item{
		id:               id,
		title:            title,
		body:             body,
		contentType:      contentType,
		campaignName:     campaignName,
		audience:         audience,
		complianceStatus: complianceStatus,
		source:           source,
		tags:             tags,
		createdAt:        createdAt,
		active:           active,
		embedding:        embedding,
	}
}

// ID returns the stable item identifier.
func (i *Item) ID() string { return i.id }

// Title returns the item title.
func (i *Item) Title() string { return i.title }

// Body returns the item body text.
func (i *Item) Body() string { return i.body }

// ContentType returns the content type tag.
func (i *Item) ContentType() string { return i.contentType }

// CampaignName returns the campaign name (may be empty).
func (i *Item) CampaignName() string { return i.campaignName }

// Audience returns the audience segment (may be empty).
func (i *Item) Audience() string { return i.audience }

// ComplianceStatus returns the compliance status.
func (i *Item) ComplianceStatus() string { return i.complianceStatus }

// Source returns the ingestion source (may be empty).
func (i *Item) Source() string { return i.source }

// Tags returns the item tags.
func (i *Item) Tags() []string { return i.tags }

// CreatedAt returns the creation timestamp.
func (i *Item) CreatedAt() time.Time { return i.createdAt }

// Active reports whether the item is eligible for retrieval.
func (i *Item) Active() bool { return i.active }

// Embedding returns the precomputed embedding vector.
func (i *Item) Embedding() []float32 { return i.embedding }

// HasValidEmbedding reports whether the stored embedding matches the
// configured dimension. Items failing this check are skipped during
// scoring rather than crashing the ranker.
func (i *Item) HasValidEmbedding(dim int) bool {
	return len(i.embedding) == dim
}
