package content

import (
	"testing"
	"time"
)

func testItem(t *testing.T, contentType, campaign, audience, status string, tags []string) Item {
	t.Helper()
	item, err := New(
		"c-1", "Title", "Body", contentType,
		campaign, audience, status, "crm",
		tags, time.Now(), true, []float32{0.1, 0.2},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return item
}

func TestNewCriteria_DefaultsComplianceStatus(t *testing.T) {
	c := NewCriteria("email", "", "", "", nil)
	if c.ComplianceStatus() != StatusApproved {
		t.Errorf("compliance status = %q, want %q", c.ComplianceStatus(), StatusApproved)
	}
}

func TestCriteria_Conjunction(t *testing.T) {
	b2b := testItem(t, TypeEmail, "Spring Launch", "B2B", StatusApproved, nil)
	b2c := testItem(t, TypeEmail, "Spring Launch", "B2C", StatusApproved, nil)

	c := NewCriteria(TypeEmail, "", "B2B", "", nil)

	if !c.Matches(&b2b) {
		t.Error("expected B2B email to match")
	}
	if c.Matches(&b2c) {
		t.Error("expected B2C email to be rejected")
	}
}

func TestCriteria_CampaignSubstringCaseInsensitive(t *testing.T) {
	item := testItem(t, TypeBlog, "Enterprise Win-Back 2026", "", StatusApproved, nil)

	cases := []struct {
		campaign string
		want     bool
	}{
		{"win-back", true},
		{"ENTERPRISE", true},
		{"Win-Back 2026", true},
		{"holiday", false},
	}
	for _, tc := range cases {
		c := NewCriteria("", tc.campaign, "", "", nil)
		if got := c.Matches(&item); got != tc.want {
			t.Errorf("campaign %q: match = %v, want %v", tc.campaign, got, tc.want)
		}
	}
}

func TestCriteria_TagsAnyOf(t *testing.T) {
	item := testItem(t, TypeSocial, "", "", StatusApproved, []string{"high-value", "retention"})

	c := NewCriteria("", "", "", "", []string{"nonexistent", "RETENTION"})
	if !c.Matches(&item) {
		t.Error("expected any-of tag match (case-insensitive)")
	}

	c = NewCriteria("", "", "", "", []string{"upsell"})
	if c.Matches(&item) {
		t.Error("expected no tag match")
	}
}

func TestCriteria_TagSubstring(t *testing.T) {
	item := testItem(t, TypeAd, "", "", StatusApproved, []string{"high-engagement"})

	c := NewCriteria("", "", "", "", []string{"engagement"})
	if !c.Matches(&item) {
		t.Error("expected substring tag match")
	}
}

func TestCriteria_ComplianceStatus(t *testing.T) {
	pending := testItem(t, TypeEmail, "", "", StatusPending, nil)

	c := NewCriteria(TypeEmail, "", "", "", nil)
	if c.Matches(&pending) {
		t.Error("default criteria should reject pending content")
	}

	c = NewCriteria(TypeEmail, "", "", StatusPending, nil)
	if !c.Matches(&pending) {
		t.Error("explicit pending filter should match pending content")
	}
}

func TestNewCriteria_NoFiltersMatchesEverything(t *testing.T) {
	pending := testItem(t, TypeEmail, "", "", StatusPending, nil)

	c := NewCriteria("", "", "", "", nil)
	if c.ComplianceStatus() != "" {
		t.Errorf("compliance status = %q, want empty", c.ComplianceStatus())
	}
	if !c.Matches(&pending) {
		t.Error("unfiltered criteria should match pending content")
	}
}

func TestCriteria_ZeroValueMatchesEverything(t *testing.T) {
	pending := testItem(t, TypeEmail, "", "", StatusPending, nil)

	var c Criteria
	if !c.Matches(&pending) {
		t.Error("zero-value criteria should match any item")
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New("", "t", "b", TypeEmail, "", "", "", "", nil, time.Now(), true, nil)
	if err == nil {
		t.Error("expected error for missing id")
	}
	_, err = New("c-1", "", "b", TypeEmail, "", "", "", "", nil, time.Now(), true, nil)
	if err == nil {
		t.Error("expected error for missing title")
	}
}

func TestItem_HasValidEmbedding(t *testing.T) {
	item := testItem(t, TypeEmail, "", "", StatusApproved, nil)

	if !item.HasValidEmbedding(2) {
		t.Error("expected 2-dim embedding to be valid at dim 2")
	}
	if item.HasValidEmbedding(384) {
		t.Error("expected 2-dim embedding to be invalid at dim 384")
	}

	empty := Reconstruct("c-2", "t", "b", TypeEmail, "", "", StatusApproved, "", nil, time.Now(), true, nil)
	if empty.HasValidEmbedding(384) {
		t.Error("expected missing embedding to be invalid")
	}
}

func TestNew_DefaultsComplianceStatus(t *testing.T) {
	item, err := New("c-1", "t", "b", TypeEmail, "", "", "", "", nil, time.Now(), true, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if item.ComplianceStatus() != StatusApproved {
		t.Errorf("compliance status = %q, want %q", item.ComplianceStatus(), StatusApproved)
	}
}
