package chi

import (
	"time"

	domcomp "github.com/nermeennasim/chainreach-ai/internal/domain/compliance"
	domret "github.com/nermeennasim/chainreach-ai/internal/domain/retrieval"
	domseg "github.com/nermeennasim/chainreach-ai/internal/domain/segment"
	complianceuc "github.com/nermeennasim/chainreach-ai/internal/usecase/compliance"
)

// errorCode is a stable machine-readable error identifier.
type errorCode string

const (
	codeBadRequest             errorCode = "bad_request"
	codeValidationFailed       errorCode = "validation_failed"
	codeContentNotFound        errorCode = "content_not_found"
	codeCustomerNotFound       errorCode = "customer_not_found"
	codeEmbeddingProviderError errorCode = "embedding_provider_error"
	codeClassifierError        errorCode = "classifier_error"
	codeStorageUnavailable     errorCode = "storage_unavailable"
	codeInternalError          errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// --- retrieval ---

type searchRequest struct {
	Query            string   `json:"query"`
	TopK             int      `json:"top_k,omitempty"`
	ContentType      string   `json:"content_type,omitempty"`
	CampaignName     string   `json:"campaign_name,omitempty"`
	Audience         string   `json:"audience,omitempty"`
	ComplianceStatus string   `json:"compliance_status,omitempty"`
	Tags             []string `json:"tags,omitempty"`
}

type contentItem struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Content          string   `json:"content"`
	ContentType      string   `json:"content_type"`
	CampaignName     string   `json:"campaign_name,omitempty"`
	Audience         string   `json:"audience,omitempty"`
	ComplianceStatus string   `json:"compliance_status"`
	Source           string   `json:"source,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	SimilarityScore  float64  `json:"similarity_score"`
}

type searchResponse struct {
	Results []contentItem `json:"results"`
	Count   int           `json:"count"`
}

func resultToItem(r *domret.Result) contentItem {
	return contentItem{
		ID:               r.ID(),
		Title:            r.Title(),
		Content:          r.Body(),
		ContentType:      r.ContentType(),
		CampaignName:     r.CampaignName(),
		Audience:         r.Audience(),
		ComplianceStatus: r.ComplianceStatus(),
		Source:           r.Source(),
		Tags:             r.Tags(),
		SimilarityScore:  r.Score(),
	}
}

func searchResponseFromResults(results []domret.Result) searchResponse {
	items := make([]contentItem, len(results))
	for i := range results {
		items[i] = resultToItem(&results[i])
	}
	return searchResponse{Results: items, Count: len(items)}
}

// --- compliance ---

type validateRequest struct {
	Messages []string `json:"messages"`
}

type categoryScores struct {
	Hate     int `json:"hate"`
	Sexual   int `json:"sexual"`
	Violence int `json:"violence"`
	SelfHarm int `json:"self_harm"`
}

type verdictItem struct {
	MessageID  int            `json:"message_id"`
	Message    string         `json:"message"`
	Approved   bool           `json:"approved"`
	Reason     string         `json:"reason,omitempty"`
	Confidence float64        `json:"confidence"`
	Categories categoryScores `json:"categories"`
}

type validateResponse struct {
	Results      []verdictItem `json:"results"`
	AllApproved  bool          `json:"all_approved"`
	TotalChecked int           `json:"total_checked"`
	Mode         string        `json:"mode"`
	Timestamp    time.Time     `json:"timestamp"`
}

type statsResponse struct {
	TotalRequests int64  `json:"total_requests"`
	Mode          string `json:"mode"`
}

func verdictToItem(v domcomp.Verdict) verdictItem {
	return verdictItem{
		MessageID:  v.MessageID,
		Message:    v.Text,
		Approved:   v.Approved,
		Reason:     v.Reason,
		Confidence: v.Confidence,
		Categories: categoryScores{
			Hate:     v.Categories.Hate,
			Sexual:   v.Categories.Sexual,
			Violence: v.Categories.Violence,
			SelfHarm: v.Categories.SelfHarm,
		},
	}
}

func validateResponseFromReport(report complianceuc.Report) validateResponse {
	items := make([]verdictItem, len(report.Results))
	for i, v := range report.Results {
		items[i] = verdictToItem(v)
	}
	return validateResponse{
		Results:      items,
		AllApproved:  report.AllApproved,
		TotalChecked: report.TotalChecked,
		Mode:         report.Mode,
		Timestamp:    report.Timestamp,
	}
}

// --- segmentation ---

type manualSegmentRequest struct {
	Recency   float64 `json:"recency"`
	Frequency float64 `json:"frequency"`
	Monetary  float64 `json:"monetary"`
}

type customerSegmentRequest struct {
	CustomerID string `json:"customer_id"`
}

type segmentResponse struct {
	CustomerID       string             `json:"customer_id,omitempty"`
	SegmentID        int                `json:"segment_id"`
	SegmentName      string             `json:"segment_name"`
	Confidence       float64            `json:"confidence"`
	DistanceToCenter float64            `json:"distance_to_center"`
	Stats            map[string]float64 `json:"stats,omitempty"`
}

func predictionToResponse(p domseg.Prediction, customerID string) segmentResponse {
	return segmentResponse{
		CustomerID:       customerID,
		SegmentID:        p.SegmentID,
		SegmentName:      p.SegmentName,
		Confidence:       p.Confidence,
		DistanceToCenter: p.DistanceToCenter,
		Stats:            p.Stats,
	}
}
