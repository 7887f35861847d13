package content

import "strings"

// Criteria is an optional request-scoped content filter. All non-empty
// fields combine with AND semantics.
type Criteria struct {
	contentType      string
	campaignName     string
	audience         string
	complianceStatus string
	tags             []string
}

// NewCriteria creates filter criteria. Compliance status defaults to
// approved whenever any filtering is requested; with no fields set at
// all the criteria match everything.
func NewCriteria(contentType, campaignName, audience, complianceStatus string, tags []string) Criteria {
	filtering := contentType != "" || campaignName != "" || audience != "" ||
		complianceStatus != "" || len(tags) > 0
	if complianceStatus == "" && filtering {
		complianceStatus = StatusApproved
	}
	return Criteria{
		contentType:      contentType,
		campaignName:     campaignName,
		audience:         audience,
		complianceStatus: complianceStatus,
		tags:             tags,
	}
}

// ContentType returns the exact-match content type filter.
func (c Criteria) ContentType() string { return c.contentType }

// CampaignName returns the case-insensitive campaign substring filter.
func (c Criteria) CampaignName() string { return c.campaignName }

// Audience returns the exact-match audience filter.
func (c Criteria) Audience() string { return c.audience }

// ComplianceStatus returns the exact-match compliance status filter.
func (c Criteria) ComplianceStatus() string { return c.complianceStatus }

// Tags returns the requested tags (item matches on any of them).
func (c Criteria) Tags() []string { return c.tags }

// Matches reports whether the item satisfies every populated criterion.
// Campaign matches on case-insensitive substring; an item matches the tag
// criterion when any of its tags contains, case-insensitively, any
// requested tag.
func (c Criteria) Matches(item *Item) bool {
	if c.contentType != "" && item.ContentType() != c.contentType {
		return false
	}
	if c.campaignName != "" &&
		!strings.Contains(strings.ToLower(item.CampaignName()), strings.ToLower(c.campaignName)) {
		return false
	}
	if c.audience != "" && item.Audience() != c.audience {
		return false
	}
	if c.complianceStatus != "" && item.ComplianceStatus() != c.complianceStatus {
		return false
	}
	if len(c.tags) > 0 && !c.matchesAnyTag(item.Tags()) {
		return false
	}
	return true
}

func (c Criteria) matchesAnyTag(itemTags []string) bool {
	for _, want := range c.tags {
		lw := strings.ToLower(want)
		for _, have := range itemTags {
			if strings.Contains(strings.ToLower(have), lw) {
				return true
			}
		}
	}
	return false
}
