package similarity

import (
	"errors"
	"math"
	"testing"

	"github.com/nermeennasim/chainreach-ai/internal/domain"
)

func TestCosine_Identical(t *testing.T) {
	v := []float32{0.3, -0.5, 0.8, 0.1}

	got, err := Cosine(v, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Cosine(v, v) = %v, want ~1.0", got)
	}
}

func TestCosine_Symmetric(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{-4, 5, 0.5}

	ab, err := Cosine(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := Cosine(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ab != ba {
		t.Errorf("Cosine not symmetric: %v vs %v", ab, ba)
	}
}

func TestCosine_Orthogonal(t *testing.T) {
	got, err := Cosine([]float32{1, 0}, []float32{0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got) > 1e-9 {
		t.Errorf("orthogonal vectors: got %v, want 0", got)
	}
}

func TestCosine_Opposite(t *testing.T) {
	got, err := Cosine([]float32{1, 1}, []float32{-1, -1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got+1.0) > 1e-9 {
		t.Errorf("opposite vectors: got %v, want -1", got)
	}
}

func TestCosine_ZeroVector(t *testing.T) {
	_, err := Cosine([]float32{1, 2, 3}, []float32{0, 0, 0})
	if !errors.Is(err, domain.ErrDegenerateVector) {
		t.Fatalf("expected ErrDegenerateVector, got %v", err)
	}

	_, err = Cosine([]float32{0, 0, 0}, []float32{1, 2, 3})
	if !errors.Is(err, domain.ErrDegenerateVector) {
		t.Fatalf("expected ErrDegenerateVector for zero first vector, got %v", err)
	}
}

func TestCosine_DimMismatch(t *testing.T) {
	_, err := Cosine([]float32{1, 2}, []float32{1, 2, 3})
	if !errors.Is(err, domain.ErrVectorDimMismatch) {
		t.Fatalf("expected ErrVectorDimMismatch, got %v", err)
	}
}

func TestCosine_Empty(t *testing.T) {
	_, err := Cosine(nil, nil)
	if !errors.Is(err, domain.ErrVectorDimMismatch) {
		t.Fatalf("expected ErrVectorDimMismatch for empty vectors, got %v", err)
	}
}

func TestCosine_Bounded(t *testing.T) {
	a := []float32{0.9, -0.1, 0.4, 0.7}
	b := []float32{0.8, 0.05, 0.35, 0.6}

	got, err := Cosine(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got < -1.0 || got > 1.0 {
		t.Errorf("Cosine out of bounds: %v", got)
	}
}
