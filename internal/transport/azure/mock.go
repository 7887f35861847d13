package azure

import (
	"context"

	domcomp "github.com/nermeennasim/chainreach-ai/internal/domain/compliance"
)

// MockClassifier approves everything with zero severities. Used when no
// Content Safety resource is configured (local development, CI).
type MockClassifier struct{}

// NewMockClassifier creates the always-approve classifier.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// Mode implements compliance.Classifier.
func (m *MockClassifier) Mode() string { return domcomp.ModeMock }

// Classify returns zero severity for every category.
func (m *MockClassifier) Classify(_ context.Context, _ string) (domcomp.CategoryScores, error) {
	return domcomp.CategoryScores{}, nil
}
