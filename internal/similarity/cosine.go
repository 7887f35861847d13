// Package similarity implements vector similarity scoring.
package similarity

import (
	"fmt"
	"math"

	"github.com/nermeennasim/chainreach-ai/internal/domain"
)

// Cosine returns the cosine similarity of two equal-length vectors: the dot
// product divided by the product of the Euclidean norms. The result is in
// [-1, 1]. A zero-norm vector cannot be scored and yields
// domain.ErrDegenerateVector; mismatched lengths yield
// domain.ErrVectorDimMismatch.
func Cosine(a, b []float32) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", domain.ErrVectorDimMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0, domain.ErrDegenerateVector
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
