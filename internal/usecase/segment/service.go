// Package segment predicts customer segments from RFM features.
package segment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nermeennasim/chainreach-ai/internal/domain"
	domseg "github.com/nermeennasim/chainreach-ai/internal/domain/segment"
	"github.com/nermeennasim/chainreach-ai/internal/metrics"
)

// Service assigns customers to precomputed clusters.
type Service struct {
	model     *domseg.Model
	customers CustomerReader
	logger    *zap.Logger
}

// New creates a segmentation service.
func New(model *domseg.Model, customers CustomerReader, logger *zap.Logger) *Service {
	return &Service{model: model, customers: customers, logger: logger}
}

// PredictManual assigns manually supplied RFM features to a cluster.
func (s *Service) PredictManual(_ context.Context, f domseg.RFMFeatures) (domseg.Prediction, error) {
	if f.Recency < 0 || f.Frequency < 0 || f.Monetary < 0 {
		return domseg.Prediction{}, fmt.Errorf(
			"%w: rfm features must be non-negative", domain.ErrInvalidArgument)
	}

	pred := s.model.Predict(f)
	metrics.SegmentPredictionsTotal.WithLabelValues("manual").Inc()
	return pred, nil
}

// PredictCustomer looks up a customer's RFM features and assigns a cluster.
func (s *Service) PredictCustomer(ctx context.Context, customerID string) (domseg.Prediction, error) {
	if customerID == "" {
		return domseg.Prediction{}, fmt.Errorf("%w: customer_id is required", domain.ErrInvalidArgument)
	}

	features, err := s.customers.RFMByID(ctx, customerID)
	if err != nil {
		return domseg.Prediction{}, fmt.Errorf("lookup customer %s: %w", customerID, err)
	}

	pred := s.model.Predict(features)
	metrics.SegmentPredictionsTotal.WithLabelValues("customer").Inc()

	s.logger.Debug("customer segmented",
		zap.String("customer_id", customerID),
		zap.Int("segment_id", pred.SegmentID),
		zap.Float64("distance", pred.DistanceToCenter),
	)
	return pred, nil
}
