package segment

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	m, err := NewModel(
		[]float64{50, 10, 500},
		[]float64{25, 5, 250},
		[][]float64{
			{-1, 1, 1},  // recent, frequent, high spend
			{1, -1, -1}, // dormant, infrequent, low spend
			{0, 0, 0},   // average
		},
		map[int]Profile{
			0: {SegmentName: "champions", Stats: map[string]float64{"avg_monetary": 1200}},
			1: {SegmentName: "at-risk"},
			2: {SegmentName: "regulars"},
		},
	)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func TestPredict_NearestCentroid(t *testing.T) {
	m := testModel(t)

	// Scales to exactly (-1, 1, 1): centroid 0.
	pred := m.Predict(RFMFeatures{Recency: 25, Frequency: 15, Monetary: 750})
	if pred.SegmentID != 0 {
		t.Fatalf("segment id = %d, want 0", pred.SegmentID)
	}
	if pred.SegmentName != "champions" {
		t.Errorf("segment name = %q, want champions", pred.SegmentName)
	}
	if pred.DistanceToCenter > 1e-9 {
		t.Errorf("distance = %v, want ~0", pred.DistanceToCenter)
	}
	if math.Abs(pred.Confidence-1.0) > 1e-9 {
		t.Errorf("confidence = %v, want 1.0", pred.Confidence)
	}
	if pred.Stats["avg_monetary"] != 1200 {
		t.Errorf("stats not carried from profile: %v", pred.Stats)
	}
}

func TestPredict_Deterministic(t *testing.T) {
	m := testModel(t)
	f := RFMFeatures{Recency: 80, Frequency: 2, Monetary: 120}

	a := m.Predict(f)
	b := m.Predict(f)
	if a.SegmentID != b.SegmentID || a.DistanceToCenter != b.DistanceToCenter {
		t.Errorf("predictions differ: %+v vs %+v", a, b)
	}
	if a.SegmentID != 1 {
		t.Errorf("segment id = %d, want 1 (at-risk)", a.SegmentID)
	}
}

func TestPredict_ConfidenceClampedAtZero(t *testing.T) {
	m := testModel(t)

	// Far outside the training range.
	pred := m.Predict(RFMFeatures{Recency: 10000, Frequency: 0, Monetary: 0})
	if pred.Confidence != 0 {
		t.Errorf("confidence = %v, want clamp to 0", pred.Confidence)
	}
}

func TestNewModel_Validation(t *testing.T) {
	if _, err := NewModel([]float64{1, 2}, []float64{1, 2, 3}, [][]float64{{0, 0, 0}}, nil); err == nil {
		t.Error("expected error for short mean")
	}
	if _, err := NewModel([]float64{1, 2, 3}, []float64{1, 0, 3}, [][]float64{{0, 0, 0}}, nil); err == nil {
		t.Error("expected error for zero scale")
	}
	if _, err := NewModel([]float64{1, 2, 3}, []float64{1, 2, 3}, nil, nil); err == nil {
		t.Error("expected error for no centroids")
	}
	if _, err := NewModel([]float64{1, 2, 3}, []float64{1, 2, 3}, [][]float64{{0, 0}}, nil); err == nil {
		t.Error("expected error for short centroid")
	}
}

func TestLoadModel(t *testing.T) {
	artifact := `{
		"scaler": {"mean": [50, 10, 500], "scale": [25, 5, 250]},
		"centroids": [[-1, 1, 1], [1, -1, -1]],
		"profiles": {
			"0": {"segment_name": "champions", "stats": {"avg_recency": 20}},
			"1": {"segment_name": "at-risk"}
		}
	}`
	path := filepath.Join(t.TempDir(), "segmentation.json")
	if err := os.WriteFile(path, []byte(artifact), 0o600); err != nil {
		t.Fatalf("write artifact: %v", err)
	}

	m, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if m.Clusters() != 2 {
		t.Fatalf("clusters = %d, want 2", m.Clusters())
	}

	pred := m.Predict(RFMFeatures{Recency: 25, Frequency: 15, Monetary: 750})
	if pred.SegmentName != "champions" {
		t.Errorf("segment name = %q, want champions", pred.SegmentName)
	}
}

func TestLoadModel_MissingFile(t *testing.T) {
	if _, err := LoadModel(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing artifact")
	}
}
