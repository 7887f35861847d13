// Package compliance defines the text-safety classification contract and
// per-message verdicts.
package compliance

import "context"

// Classifier modes, fixed at construction.
const (
	ModeAzure = "azure"
	ModeMock  = "mock"
)

// Classifier scores a single text against safety categories.
type Classifier interface {
	Classify(ctx context.Context, text string) (CategoryScores, error)
	Mode() string
}

// CategoryScores holds per-category severity levels (0 = clean).
type CategoryScores struct {
	Hate     int
	Sexual   int
	Violence int
	SelfHarm int
}

// Max returns the highest severity across all categories.
func (s CategoryScores) Max() int {
	m := s.Hate
	if s.Sexual > m {
		m = s.Sexual
	}
	if s.Violence > m {
		m = s.Violence
	}
	if s.SelfHarm > m {
		m = s.SelfHarm
	}
	return m
}

// Verdict is the compliance outcome for one message.
type Verdict struct {
	MessageID  int
	Text       string
	Approved   bool
	Reason     string
	Confidence float64
	Categories CategoryScores
}

// Evaluate builds a verdict from category scores. A message is approved
// when every category severity is strictly below the threshold.
func Evaluate(messageID int, text string, scores CategoryScores, threshold int, reason string) Verdict {
	return Verdict{
		MessageID:  messageID,
		Text:       text,
		Approved:   scores.Max() < threshold,
		Reason:     reason,
		Confidence: 1.0,
		Categories: scores,
	}
}

// Rejected builds a not-approved verdict for a failed classification.
// Classifier failures reject the message rather than failing the batch.
func Rejected(messageID int, text, reason string) Verdict {
	return Verdict{
		MessageID:  messageID,
		Text:       text,
		Approved:   false,
		Reason:     reason,
		Confidence: 0.0,
	}
}
