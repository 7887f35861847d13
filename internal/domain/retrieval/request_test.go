package retrieval

import (
	"errors"
	"testing"

	"github.com/nermeennasim/chainreach-ai/internal/domain"
	"github.com/nermeennasim/chainreach-ai/internal/domain/content"
)

func TestNewRankRequest_Defaults(t *testing.T) {
	req, err := NewRankRequest("  launch campaign  ", content.Criteria{}, 0, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Query() != "launch campaign" {
		t.Errorf("query = %q, want trimmed", req.Query())
	}
	if req.TopK() != 3 {
		t.Errorf("topK = %d, want default 3", req.TopK())
	}
}

func TestNewRankRequest_ExplicitTopK(t *testing.T) {
	req, err := NewRankRequest("q", content.Criteria{}, 7, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.TopK() != 7 {
		t.Errorf("topK = %d, want 7", req.TopK())
	}
}

func TestNewRankRequest_EmptyQuery(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := NewRankRequest(q, content.Criteria{}, 0, 3)
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("query %q: expected ErrInvalidArgument, got %v", q, err)
		}
	}
}

func TestNewRankRequest_NegativeTopK(t *testing.T) {
	_, err := NewRankRequest("q", content.Criteria{}, -1, 3)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestRoundScore(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.123456, 0.1235},
		{0.99995, 1.0},
		{0.5, 0.5},
		{0, 0},
	}
	for _, tc := range cases {
		if got := RoundScore(tc.in); got != tc.want {
			t.Errorf("RoundScore(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
