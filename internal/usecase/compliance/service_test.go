package compliance

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/nermeennasim/chainreach-ai/internal/domain"
	domcomp "github.com/nermeennasim/chainreach-ai/internal/domain/compliance"
)

type mockClassifier struct {
	scores map[string]domcomp.CategoryScores
	errFor map[string]error
	mode   string
}

func (m *mockClassifier) Classify(_ context.Context, text string) (domcomp.CategoryScores, error) {
	if err, ok := m.errFor[text]; ok {
		return domcomp.CategoryScores{}, err
	}
	return m.scores[text], nil
}

func (m *mockClassifier) Mode() string {
	if m.mode == "" {
		return domcomp.ModeMock
	}
	return m.mode
}

func TestValidate_AllClean(t *testing.T) {
	svc := New(&mockClassifier{}, 2, zap.NewNop())

	report, err := svc.Validate(context.Background(), []string{"hello", "buy now"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.AllApproved {
		t.Error("expected all_approved")
	}
	if report.TotalChecked != 2 {
		t.Errorf("total checked = %d, want 2", report.TotalChecked)
	}
	if len(report.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(report.Results))
	}
	for i, v := range report.Results {
		if !v.Approved {
			t.Errorf("verdict %d not approved", i)
		}
		if v.MessageID != i {
			t.Errorf("verdict %d has message id %d", i, v.MessageID)
		}
	}
}

func TestValidate_SeverityThreshold(t *testing.T) {
	clf := &mockClassifier{scores: map[string]domcomp.CategoryScores{
		"borderline": {Violence: 1},
		"severe":     {Violence: 2},
	}}
	svc := New(clf, 2, zap.NewNop())

	report, err := svc.Validate(context.Background(), []string{"borderline", "severe"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Results[0].Approved {
		t.Error("severity 1 below threshold 2 should be approved")
	}
	if report.Results[1].Approved {
		t.Error("severity 2 at threshold 2 should be rejected")
	}
	if report.AllApproved {
		t.Error("all_approved must be false with a rejection")
	}
}

func TestValidate_ClassifierErrorRejectsMessageOnly(t *testing.T) {
	clf := &mockClassifier{errFor: map[string]error{
		"bad": domain.ErrClassifierError,
	}}
	svc := New(clf, 2, zap.NewNop())

	report, err := svc.Validate(context.Background(), []string{"ok", "bad"})
	if err != nil {
		t.Fatalf("classifier failure must not fail the batch: %v", err)
	}
	if !report.Results[0].Approved {
		t.Error("unaffected message should stay approved")
	}
	if report.Results[1].Approved {
		t.Error("failed classification must reject the message")
	}
	if report.Results[1].Confidence != 0 {
		t.Errorf("rejected confidence = %v, want 0", report.Results[1].Confidence)
	}
	if report.AllApproved {
		t.Error("all_approved must be false")
	}
}

func TestValidate_EmptyBatch(t *testing.T) {
	svc := New(&mockClassifier{}, 2, zap.NewNop())

	_, err := svc.Validate(context.Background(), nil)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestValidate_BatchTooLarge(t *testing.T) {
	svc := New(&mockClassifier{}, 2, zap.NewNop())

	batch := make([]string, MaxBatchSize+1)
	for i := range batch {
		batch[i] = "m"
	}
	_, err := svc.Validate(context.Background(), batch)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestCurrentStats_CountsRequests(t *testing.T) {
	svc := New(&mockClassifier{}, 2, zap.NewNop())

	_, _ = svc.Validate(context.Background(), []string{"a"})
	_, _ = svc.Validate(context.Background(), nil) // invalid requests still count
	stats := svc.CurrentStats()
	if stats.TotalRequests != 2 {
		t.Errorf("total requests = %d, want 2", stats.TotalRequests)
	}
	if stats.Mode != domcomp.ModeMock {
		t.Errorf("mode = %q, want mock", stats.Mode)
	}
}
