// Package vocabulary persists vocabulary entries as JSON values keyed by
// tenant, category, and word.
package vocabulary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sodam-cloud/kbrouter/internal/domain"
	domvocab "github.com/sodam-cloud/kbrouter/internal/domain/vocabulary"
)

var keyPrefix = domain.KeyPrefix + "vocab:"

// store is the consumer interface for vocabulary entries (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/keywordindex.Repository.
type Repo struct {
	store store
}

// New creates a vocabulary repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// List returns every entry stored for the tenant.
func (r *Repo) List(ctx context.Context, tenantID string) ([]domvocab.Entry, error) {
	keys, err := r.store.Scan(ctx, entryKey(tenantID, "*", "*"))
	if err != nil {
		return nil, fmt.Errorf("scan vocabulary %s: %w", tenantID, err)
	}

	entries := make([]domvocab.Entry, 0, len(keys))
	for _, key := range keys {
		raw, err := r.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", key, err)
		}
		var dto entryDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", key, err)
		}
		entries = append(entries, dto.toDomain())
	}
	return entries, nil
}

// Save creates or replaces an entry.
func (r *Repo) Save(ctx context.Context, tenantID string, entry domvocab.Entry) error {
	data, err := json.Marshal(toDTO(&entry))
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	key := entryKey(tenantID, string(entry.Category()), entry.Word())
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func entryKey(tenantID, category, word string) string {
	return fmt.Sprintf("%s%s:%s:%s", keyPrefix, tenantID, category, strings.ToLower(word))
}
