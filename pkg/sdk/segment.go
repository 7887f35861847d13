package chainreach

import (
	"context"
	"errors"
	"fmt"

	domseg "github.com/nermeennasim/chainreach-ai/internal/domain/segment"
)

// ErrSegmentationDisabled is returned when no segmentation model was
// configured for the client.
var ErrSegmentationDisabled = errors.New("segmentation model not configured")

// RFMFeatures are recency/frequency/monetary values for a customer.
type RFMFeatures struct {
	Recency   float64
	Frequency float64
	Monetary  float64
}

// Segment is the cluster assignment for one customer.
type Segment struct {
	SegmentID        int
	SegmentName      string
	Confidence       float64
	DistanceToCenter float64
	Stats            map[string]float64
}

// SegmentManual assigns manually supplied features to a cluster.
func (c *Client) SegmentManual(ctx context.Context, f RFMFeatures) (Segment, error) {
	if c.segments == nil {
		return Segment{}, ErrSegmentationDisabled
	}
	pred, err := c.segments.PredictManual(ctx, domseg.RFMFeatures{
		Recency:   f.Recency,
		Frequency: f.Frequency,
		Monetary:  f.Monetary,
	})
	if err != nil {
		return Segment{}, fmt.Errorf("segment manual: %w", err)
	}
	return predictionToSDK(pred), nil
}

// SegmentCustomer assigns a stored customer to a cluster.
func (c *Client) SegmentCustomer(ctx context.Context, customerID string) (Segment, error) {
	if c.segments == nil {
		return Segment{}, ErrSegmentationDisabled
	}
	pred, err := c.segments.PredictCustomer(ctx, customerID)
	if err != nil {
		return Segment{}, fmt.Errorf("segment customer: %w", err)
	}
	return predictionToSDK(pred), nil
}

// UpsertCustomer stores the customer's RFM features.
func (c *Client) UpsertCustomer(ctx context.Context, customerID string, f RFMFeatures) error {
	err := c.customers.Upsert(ctx, customerID, domseg.RFMFeatures{
		Recency:   f.Recency,
		Frequency: f.Frequency,
		Monetary:  f.Monetary,
	})
	if err != nil {
		return fmt.Errorf("upsert customer: %w", err)
	}
	return nil
}

func predictionToSDK(p domseg.Prediction) Segment {
	return Segment{
		SegmentID:        p.SegmentID,
		SegmentName:      p.SegmentName,
		Confidence:       p.Confidence,
		DistanceToCenter: p.DistanceToCenter,
		Stats:            p.Stats,
	}
}
