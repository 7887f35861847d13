// Package content implements the marketing-content repository on top of
// the JSON document store.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nermeennasim/chainreach-ai/internal/db"
	"github.com/nermeennasim/chainreach-ai/internal/domain"
	domcontent "github.com/nermeennasim/chainreach-ai/internal/domain/content"
)

var keyPrefix = domain.KeyPrefix + "content:"

// store is the consumer interface for content items (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/retrieval.Repository.
type Repo struct {
	store store
}

// New creates a content repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert creates or updates a content item. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, item *domcontent.Item) (bool, error) {
	key := itemKey(item.ID())
	data, err := json.Marshal(buildJSONItem(item))
	if err != nil {
		return false, fmt.Errorf("marshal content item: %w", err)
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("%w: check exists %s: %w", domain.ErrRepositoryUnavailable, key, err)
	}

	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return false, fmt.Errorf("%w: json.set %s: %w", domain.ErrRepositoryUnavailable, key, err)
	}

	return !exists, nil
}

// Get returns an item by id regardless of its active flag.
func (r *Repo) Get(ctx context.Context, id string) (domcontent.Item, error) {
	key := itemKey(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domcontent.Item{}, domain.ErrContentNotFound
		}
		return domcontent.Item{}, fmt.Errorf("%w: json.get %s: %w", domain.ErrRepositoryUnavailable, key, err)
	}
	return parseJSONGetResult(id, raw)
}

// Query returns active items matching the criteria, ordered by id so that
// repeated calls see the same sequence.
func (r *Repo) Query(ctx context.Context, criteria domcontent.Criteria) ([]domcontent.Item, error) {
	items, err := r.loadActive(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]domcontent.Item, 0, len(items))
	for i := range items {
		if criteria.Matches(&items[i]) {
			matched = append(matched, items[i])
		}
	}
	return matched, nil
}

// List returns an offset window over active items ordered by id.
// An out-of-range skip yields an empty slice, not an error.
func (r *Repo) List(ctx context.Context, skip, limit int) ([]domcontent.Item, error) {
	items, err := r.loadActive(ctx)
	if err != nil {
		return nil, err
	}

	if skip >= len(items) {
		return []domcontent.Item{}, nil
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end], nil
}

// Delete removes an item.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := itemKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: check exists %s: %w", domain.ErrRepositoryUnavailable, key, err)
	}
	if !exists {
		return domain.ErrContentNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("%w: del %s: %w", domain.ErrRepositoryUnavailable, key, err)
	}
	return nil
}

// loadActive scans all content keys and decodes the active items.
// SCAN returns keys in no particular order, so they are sorted first.
func (r *Repo) loadActive(ctx context.Context) ([]domcontent.Item, error) {
	keys, err := r.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("%w: scan content keys: %w", domain.ErrRepositoryUnavailable, err)
	}
	sort.Strings(keys)

	items := make([]domcontent.Item, 0, len(keys))
	for _, key := range keys {
		raw, err := r.store.JSONGet(ctx, key, "$")
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				// Deleted between SCAN and GET.
				continue
			}
			return nil, fmt.Errorf("%w: json.get %s: %w", domain.ErrRepositoryUnavailable, key, err)
		}
		item, err := parseJSONGetResult(extractItemID(key), raw)
		if err != nil {
			return nil, err
		}
		if item.Active() {
			items = append(items, item)
		}
	}
	return items, nil
}

func itemKey(id string) string {
	return keyPrefix + id
}

func extractItemID(key string) string {
	return strings.TrimPrefix(key, keyPrefix)
}
