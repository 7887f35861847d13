package content

import (
	"encoding/json"
	"fmt"
	"time"

	domcontent "github.com/nermeennasim/chainreach-ai/internal/domain/content"
)

// jsonItem is the stored document shape. Field names follow the ingest
// pipeline that writes these documents.
type jsonItem struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	ContentType      string    `json:"content_type"`
	CampaignName     string    `json:"campaign_name,omitempty"`
	Audience         string    `json:"audience,omitempty"`
	ComplianceStatus string    `json:"compliance_status"`
	Source           string    `json:"source,omitempty"`
	Tags             []string  `json:"tags,omitempty"`
	CreatedDate      string    `json:"created_date,omitempty"`
	IsActive         bool      `json:"is_active"`
	Embedding        []float32 `json:"embedding,omitempty"`
}

func buildJSONItem(item *domcontent.Item) jsonItem {
	var created string
	if !item.CreatedAt().IsZero() {
		created = item.CreatedAt().UTC().Format(time.RFC3339)
	}
	return jsonItem{
		ID:               item.ID(),
		Title:            item.Title(),
		Content:          item.Body(),
		ContentType:      item.ContentType(),
		CampaignName:     item.CampaignName(),
		Audience:         item.Audience(),
		ComplianceStatus: item.ComplianceStatus(),
		Source:           item.Source(),
		Tags:             item.Tags(),
		CreatedDate:      created,
		IsActive:         item.Active(),
		Embedding:        item.Embedding(),
	}
}

// parseJSONGetResult decodes a JSON.GET $ response, which wraps the
// document in a one-element array.
func parseJSONGetResult(id string, raw []byte) (domcontent.Item, error) {
	var docs []jsonItem
	if err := json.Unmarshal(raw, &docs); err != nil {
		// Some servers return the bare document for a single path.
		var single jsonItem
		if err2 := json.Unmarshal(raw, &single); err2 != nil {
			return domcontent.Item{}, fmt.Errorf("unmarshal content %s: %w", id, err)
		}
		docs = []jsonItem{single}
	}
	if len(docs) == 0 {
		return domcontent.Item{}, fmt.Errorf("unmarshal content %s: empty result", id)
	}
	return toDomain(id, docs[0]), nil
}

func toDomain(id string, d jsonItem) domcontent.Item {
	if d.ID != "" {
		id = d.ID
	}
	var created time.Time
	if d.CreatedDate != "" {
		if t, err := time.Parse(time.RFC3339, d.CreatedDate); err == nil {
			created = t
		}
	}
	return domcontent.Reconstruct(
		id, d.Title, d.Content, d.ContentType,
		d.CampaignName, d.Audience, d.ComplianceStatus, d.Source,
		d.Tags, created, d.IsActive, d.Embedding,
	)
}
