package content

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	domcontent "github.com/nermeennasim/chainreach-ai/internal/domain/content"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetFn func(ctx context.Context, key, path string, data []byte) error
	jsonGetFn func(ctx context.Context, key string, paths ...string) ([]byte, error)
	delFn     func(ctx context.Context, key string) error
	existsFn  func(ctx context.Context, key string) (bool, error)
	scanFn    func(ctx context.Context, pattern string) ([]string, error)
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return []byte("[{}]"), nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func testItem(t *testing.T, id string) domcontent.Item {
	t.Helper()
	item, err := domcontent.New(
		id, "Spring Sale", "Save 20% on everything this week", domcontent.TypeEmail,
		"Spring Sale 2026", "B2C", domcontent.StatusApproved, "cms",
		[]string{"sale", "spring"},
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		true,
		[]float32{0.1, 0.2, 0.3},
	)
	if err != nil {
		t.Fatalf("build test item: %v", err)
	}
	return item
}

// storedJSON renders an item the way JSON.GET $ returns it.
func storedJSON(t *testing.T, item domcontent.Item) []byte {
	t.Helper()
	data, err := json.Marshal([]jsonItem{buildJSONItem(&item)})
	if err != nil {
		t.Fatalf("marshal stored item: %v", err)
	}
	return data
}
