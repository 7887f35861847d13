package customer

import (
	"context"
	"errors"
	"testing"

	"github.com/nermeennasim/chainreach-ai/internal/domain"
	domseg "github.com/nermeennasim/chainreach-ai/internal/domain/segment"
)

type mockStore struct {
	hsetFn    func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn func(ctx context.Context, key string) (map[string]string, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func TestRFMByID_HappyPath(t *testing.T) {
	ms := &mockStore{
		hgetAllFn: func(_ context.Context, key string) (map[string]string, error) {
			if key != "chainreach:customer:cust-42" {
				t.Errorf("unexpected key: %s", key)
			}
			return map[string]string{
				"recency":   "12",
				"frequency": "7",
				"monetary":  "340.5",
			}, nil
		},
	}
	repo := New(ms)

	f, err := repo.RFMByID(context.Background(), "cust-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Recency != 12 || f.Frequency != 7 || f.Monetary != 340.5 {
		t.Fatalf("unexpected features: %+v", f)
	}
}

func TestRFMByID_NotFound(t *testing.T) {
	repo := New(&mockStore{})

	_, err := repo.RFMByID(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestRFMByID_StoreError(t *testing.T) {
	ms := &mockStore{
		hgetAllFn: func(_ context.Context, _ string) (map[string]string, error) {
			return nil, errors.New("connection refused")
		},
	}
	repo := New(ms)

	_, err := repo.RFMByID(context.Background(), "cust-42")
	if !errors.Is(err, domain.ErrRepositoryUnavailable) {
		t.Fatalf("expected ErrRepositoryUnavailable, got %v", err)
	}
}

func TestRFMByID_MalformedField(t *testing.T) {
	ms := &mockStore{
		hgetAllFn: func(_ context.Context, _ string) (map[string]string, error) {
			return map[string]string{
				"recency":   "12",
				"frequency": "not-a-number",
				"monetary":  "1",
			}, nil
		},
	}
	repo := New(ms)

	_, err := repo.RFMByID(context.Background(), "cust-42")
	if err == nil {
		t.Fatal("expected error on malformed field")
	}
}

func TestRFMByID_MissingField(t *testing.T) {
	ms := &mockStore{
		hgetAllFn: func(_ context.Context, _ string) (map[string]string, error) {
			return map[string]string{"recency": "12"}, nil
		},
	}
	repo := New(ms)

	_, err := repo.RFMByID(context.Background(), "cust-42")
	if err == nil {
		t.Fatal("expected error on missing fields")
	}
}

func TestUpsert(t *testing.T) {
	var gotKey string
	var gotFields map[string]string
	ms := &mockStore{
		hsetFn: func(_ context.Context, key string, fields map[string]string) error {
			gotKey, gotFields = key, fields
			return nil
		},
	}
	repo := New(ms)

	err := repo.Upsert(context.Background(), "cust-42", domseg.RFMFeatures{
		Recency: 3, Frequency: 10, Monetary: 99.9,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "chainreach:customer:cust-42" {
		t.Fatalf("unexpected key: %s", gotKey)
	}
	if gotFields["recency"] != "3" || gotFields["frequency"] != "10" || gotFields["monetary"] != "99.9" {
		t.Fatalf("unexpected fields: %v", gotFields)
	}
}
