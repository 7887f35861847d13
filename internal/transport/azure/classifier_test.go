package azure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/nermeennasim/chainreach-ai/internal/domain"
	domcomp "github.com/nermeennasim/chainreach-ai/internal/domain/compliance"
)

func newTestClassifier(t *testing.T, handler http.HandlerFunc) *Classifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClassifier(&Config{
		Endpoint: srv.URL,
		APIKey:   "test-key",
		Logger:   zap.NewNop(),
	})
}

func TestClassify_HappyPath(t *testing.T) {
	c := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contentsafety/text:analyze" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("api-version") != "2024-09-01" {
			t.Errorf("unexpected api-version: %s", r.URL.Query().Get("api-version"))
		}
		if r.Header.Get("Ocp-Apim-Subscription-Key") != "test-key" {
			t.Error("missing subscription key header")
		}
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
			t.Errorf("bad request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"categoriesAnalysis": []map[string]any{
				{"category": "Hate", "severity": 0},
				{"category": "Sexual", "severity": 0},
				{"category": "Violence", "severity": 4},
				{"category": "SelfHarm", "severity": 0},
			},
		})
	})

	scores, err := c.Classify(context.Background(), "buy now or else")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scores.Violence != 4 {
		t.Fatalf("expected violence severity 4, got %d", scores.Violence)
	}
	if scores.Max() != 4 {
		t.Fatalf("expected max severity 4, got %d", scores.Max())
	}
}

func TestClassify_MissingCategoryIsZero(t *testing.T) {
	c := newTestClassifier(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"categoriesAnalysis": []map[string]any{
				{"category": "Hate", "severity": 1},
			},
		})
	})

	scores, err := c.Classify(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scores.Sexual != 0 || scores.Violence != 0 || scores.SelfHarm != 0 {
		t.Fatalf("expected missing categories at zero, got %+v", scores)
	}
}

func TestClassify_NonOKStatus(t *testing.T) {
	c := newTestClassifier(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"code":"InvalidRequest"}}`, http.StatusUnauthorized)
	})

	_, err := c.Classify(context.Background(), "hello")
	if !errors.Is(err, domain.ErrClassifierError) {
		t.Fatalf("expected ErrClassifierError, got %v", err)
	}
}

func TestClassify_MalformedResponse(t *testing.T) {
	c := newTestClassifier(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := c.Classify(context.Background(), "hello")
	if !errors.Is(err, domain.ErrClassifierError) {
		t.Fatalf("expected ErrClassifierError, got %v", err)
	}
}

func TestClassify_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse connections
	c := NewClassifier(&Config{Endpoint: srv.URL, APIKey: "k", Logger: zap.NewNop()})

	_, err := c.Classify(context.Background(), "hello")
	if !errors.Is(err, domain.ErrClassifierError) {
		t.Fatalf("expected ErrClassifierError, got %v", err)
	}
}

func TestMockClassifier(t *testing.T) {
	m := NewMockClassifier()
	if m.Mode() != domcomp.ModeMock {
		t.Fatalf("expected mock mode, got %s", m.Mode())
	}
	scores, err := m.Classify(context.Background(), "anything at all")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scores.Max() != 0 {
		t.Fatalf("expected zero severities, got %+v", scores)
	}
}
