package compliance

import (
	"context"

	domcomp "github.com/nermeennasim/chainreach-ai/internal/domain/compliance"
)

// Classifier scores message text against safety categories.
type Classifier interface {
	Classify(ctx context.Context, text string) (domcomp.CategoryScores, error)
	Mode() string
}
