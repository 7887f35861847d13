// Package customer stores precomputed RFM features as hashes.
package customer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nermeennasim/chainreach-ai/internal/domain"
	domseg "github.com/nermeennasim/chainreach-ai/internal/domain/segment"
)

var keyPrefix = domain.KeyPrefix + "customer:"

// Hash field names.
const (
	fieldRecency   = "recency"
	fieldFrequency = "frequency"
	fieldMonetary  = "monetary"
)

// store is the consumer interface for customer features (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// Repo implements usecase/segment.CustomerReader.
type Repo struct {
	store store
}

// New creates a customer feature repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert writes a customer's RFM features.
func (r *Repo) Upsert(ctx context.Context, customerID string, f domseg.RFMFeatures) error {
	key := customerKey(customerID)
	fields := map[string]string{
		fieldRecency:   formatFloat(f.Recency),
		fieldFrequency: formatFloat(f.Frequency),
		fieldMonetary:  formatFloat(f.Monetary),
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("%w: hset %s: %w", domain.ErrRepositoryUnavailable, key, err)
	}
	return nil
}

// RFMByID returns the customer's stored features.
// HGETALL on a missing key returns an empty map, which maps to not-found.
func (r *Repo) RFMByID(ctx context.Context, customerID string) (domseg.RFMFeatures, error) {
	key := customerKey(customerID)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domseg.RFMFeatures{}, fmt.Errorf("%w: hgetall %s: %w", domain.ErrRepositoryUnavailable, key, err)
	}
	if len(fields) == 0 {
		return domseg.RFMFeatures{}, domain.ErrCustomerNotFound
	}

	f := domseg.RFMFeatures{}
	var parseErr error
	f.Recency, parseErr = parseField(fields, fieldRecency, parseErr)
	f.Frequency, parseErr = parseField(fields, fieldFrequency, parseErr)
	f.Monetary, parseErr = parseField(fields, fieldMonetary, parseErr)
	if parseErr != nil {
		return domseg.RFMFeatures{}, fmt.Errorf("customer %s: %w", customerID, parseErr)
	}
	return f, nil
}

func customerKey(id string) string {
	return keyPrefix + id
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseField(fields map[string]string, name string, prev error) (float64, error) {
	if prev != nil {
		return 0, prev
	}
	raw, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("missing field %q", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse field %q: %w", name, err)
	}
	return v, nil
}
