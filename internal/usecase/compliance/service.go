// Package compliance aggregates per-message text-safety verdicts.
package compliance

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/nermeennasim/chainreach-ai/internal/domain"
	domcomp "github.com/nermeennasim/chainreach-ai/internal/domain/compliance"
	"github.com/nermeennasim/chainreach-ai/internal/metrics"
)

// MaxBatchSize bounds a single validation request.
const MaxBatchSize = 100

// Report is the outcome of one validation batch.
type Report struct {
	Results      []domcomp.Verdict
	AllApproved  bool
	TotalChecked int
	Mode         string
	Timestamp    time.Time
}

// Stats is the running request counter exposed by the stats endpoint.
type Stats struct {
	TotalRequests int64
	Mode          string
}

// Service validates message batches through a text-safety classifier.
// The classifier variant (real or mock) is fixed at construction.
type Service struct {
	classifier        Classifier
	severityThreshold int
	requests          atomic.Int64
	logger            *zap.Logger
}

// New creates a compliance service. A message is approved when every
// category severity is strictly below severityThreshold.
func New(classifier Classifier, severityThreshold int, logger *zap.Logger) *Service {
	return &Service{
		classifier:        classifier,
		severityThreshold: severityThreshold,
		logger:            logger,
	}
}

// Validate classifies each message and aggregates verdicts. A classifier
// failure rejects the affected message but never fails the batch.
func (s *Service) Validate(ctx context.Context, messages []string) (Report, error) {
	s.requests.Add(1)

	if len(messages) == 0 {
		return Report{}, fmt.Errorf("%w: messages array cannot be empty", domain.ErrInvalidArgument)
	}
	if len(messages) > MaxBatchSize {
		return Report{}, fmt.Errorf("%w: too many messages (max %d)", domain.ErrInvalidArgument, MaxBatchSize)
	}

	mode := s.classifier.Mode()
	results := make([]domcomp.Verdict, 0, len(messages))
	allApproved := true

	for idx, msg := range messages {
		scores, err := s.classifier.Classify(ctx, msg)
		if err != nil {
			s.logger.Warn("classifier failure, rejecting message",
				zap.Int("message_id", idx),
				zap.Error(err),
			)
			metrics.ComplianceChecksTotal.WithLabelValues(mode, "error").Inc()
			results = append(results, domcomp.Rejected(idx, msg, "classifier error: "+err.Error()))
			allApproved = false
			continue
		}

		verdict := domcomp.Evaluate(idx, msg, scores, s.severityThreshold, classifierReason(mode))
		if verdict.Approved {
			metrics.ComplianceChecksTotal.WithLabelValues(mode, "approved").Inc()
		} else {
			metrics.ComplianceChecksTotal.WithLabelValues(mode, "rejected").Inc()
			allApproved = false
		}
		results = append(results, verdict)
	}

	return Report{
		Results:      results,
		AllApproved:  allApproved,
		TotalChecked: len(messages),
		Mode:         mode,
		Timestamp:    time.Now().UTC(),
	}, nil
}

// CurrentStats returns the running request counter.
func (s *Service) CurrentStats() Stats {
	return Stats{
		TotalRequests: s.requests.Load(),
		Mode:          s.classifier.Mode(),
	}
}

func classifierReason(mode string) string {
	if mode == domcomp.ModeMock {
		return "Mock evaluation"
	}
	return "Evaluated using Azure Content Safety"
}
