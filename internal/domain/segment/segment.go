// Package segment assigns customers to precomputed RFM clusters.
package segment

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

// maxExpectedDistance normalizes distance into a confidence score.
// Scaled RFM features rarely land farther than this from a centroid.
const maxExpectedDistance = 5.0

// RFMFeatures are the three numeric features describing purchase behavior.
type RFMFeatures struct {
	Recency   float64
	Frequency float64
	Monetary  float64
}

// Profile is the precomputed statistical summary of one cluster.
type Profile struct {
	SegmentName string             `json:"segment_name"`
	Stats       map[string]float64 `json:"stats"`
}

// Prediction is the cluster assignment for one feature vector.
type Prediction struct {
	SegmentID        int
	SegmentName      string
	Stats            map[string]float64
	Confidence       float64
	DistanceToCenter float64
}

// Model is a trained K-Means segmentation model: a standard scaler plus
// cluster centroids in scaled feature space.
type Model struct {
	mean      []float64
	scale     []float64
	centroids [][]float64
	profiles  map[int]Profile
}

// modelArtifact is the on-disk JSON layout exported by the trainer.
type modelArtifact struct {
	Scaler struct {
		Mean  []float64 `json:"mean"`
		Scale []float64 `json:"scale"`
	} `json:"scaler"`
	Centroids [][]float64        `json:"centroids"`
	Profiles  map[string]Profile `json:"profiles"`
}

// LoadModel reads a trained model artifact from a JSON file.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read model artifact %s: %w", path, err)
	}

	var art modelArtifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}

	profiles := make(map[int]Profile, len(art.Profiles))
	for k, p := range art.Profiles {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("invalid profile key %q: %w", k, err)
		}
		profiles[id] = p
	}

	return NewModel(art.Scaler.Mean, art.Scaler.Scale, art.Centroids, profiles)
}

// NewModel validates and creates a Model.
func NewModel(mean, scale []float64, centroids [][]float64, profiles map[int]Profile) (*Model, error) {
	if len(mean) != 3 || len(scale) != 3 {
		return nil, fmt.Errorf("scaler must have 3 features, got mean=%d scale=%d", len(mean), len(scale))
	}
	for i, s := range scale {
		if s == 0 {
			return nil, fmt.Errorf("scaler scale[%d] is zero", i)
		}
	}
	if len(centroids) == 0 {
		return nil, fmt.Errorf("at least one centroid is required")
	}
	for i, c := range centroids {
		if len(c) != 3 {
			return nil, fmt.Errorf("centroid %d must have 3 features, got %d", i, len(c))
		}
	}
	return &Model{mean: mean, scale: scale, centroids: centroids, profiles: profiles}, nil
}

// Clusters returns the number of clusters.
func (m *Model) Clusters() int { return len(m.centroids) }

// Predict assigns features to the nearest centroid in scaled space.
// Confidence decays linearly with distance to the assigned center.
func (m *Model) Predict(f RFMFeatures) Prediction {
	x := []float64{
		(f.Recency - m.mean[0]) / m.scale[0],
		(f.Frequency - m.mean[1]) / m.scale[1],
		(f.Monetary - m.mean[2]) / m.scale[2],
	}

	best := 0
	bestDist := math.Inf(1)
	for i, c := range m.centroids {
		d := euclidean(x, c)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}

	confidence := 1 - bestDist/maxExpectedDistance
	if confidence < 0 {
		confidence = 0
	}

	pred := Prediction{
		SegmentID:        best,
		SegmentName:      fmt.Sprintf("segment-%d", best),
		Confidence:       confidence,
		DistanceToCenter: bestDist,
	}
	if p, ok := m.profiles[best]; ok {
		pred.SegmentName = p.SegmentName
		pred.Stats = p.Stats
	}
	return pred
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
