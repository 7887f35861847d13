// Package hashembed is a deterministic offline embedding provider.
// It derives a pseudo-vector from a SHA-256 stream over the input text,
// so identical texts always map to identical unit vectors. Useful for
// local development and tests where no embedding API is available.
package hashembed

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/nermeennasim/chainreach-ai/internal/domain"
	"github.com/nermeennasim/chainreach-ai/internal/metrics"
)

const providerLabel = "hash"

// Embedder produces deterministic unit vectors of a fixed dimension.
type Embedder struct {
	dimensions int
}

// New creates a hash-based embedder.
func New(dimensions int) (*Embedder, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("hash embedder: dimensions must be positive, got %d", dimensions)
	}
	return &Embedder{dimensions: dimensions}, nil
}

// Embed implements domain.Embedder. It never fails and consumes no tokens.
func (e *Embedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	vec := make([]float32, e.dimensions)

	// Fill the vector from counter-mode SHA-256 blocks: 8 float32s per block.
	var norm float64
	for i := 0; i < e.dimensions; i += 8 {
		var counter [8]byte
		binary.LittleEndian.PutUint64(counter[:], uint64(i/8))
		block := sha256.Sum256(append([]byte(text), counter[:]...))
		for j := 0; j < 8 && i+j < e.dimensions; j++ {
			bits := binary.LittleEndian.Uint32(block[j*4:])
			// Map to [-1, 1).
			v := float64(int32(bits)) / float64(math.MaxInt32)
			vec[i+j] = float32(v)
			norm += v * v
		}
	}

	// Normalize so cosine scores stay well-conditioned.
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}

	metrics.EmbeddingRequestsTotal.WithLabelValues(providerLabel, "sha256", "success").Inc()
	return domain.EmbeddingResult{Embedding: vec}, nil
}

// HealthCheck always succeeds; there is no upstream dependency.
func (e *Embedder) HealthCheck(_ context.Context) error {
	return nil
}
