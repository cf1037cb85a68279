// Package document persists knowledge-base documents as hashes keyed by
// tenant and document ID, with the embedding stored as packed float bytes.
package document

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sodam-cloud/kbrouter/internal/domain"
	domdoc "github.com/sodam-cloud/kbrouter/internal/domain/document"
)

var keyPrefix = domain.KeyPrefix + "doc:"

// store is the consumer interface for documents (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/semanticindex.Repository.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert creates or replaces a document.
func (r *Repo) Upsert(ctx context.Context, doc *domdoc.Document) error {
	fields, err := buildHashFields(doc)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", doc.ID(), err)
	}

	key := docKey(doc.TenantID(), doc.ID())
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Get returns a document by ID.
func (r *Repo) Get(ctx context.Context, tenantID, id string) (domdoc.Document, error) {
	key := docKey(tenantID, id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return domdoc.Document{}, domain.ErrNotFound
	}
	return parseHashFields(id, tenantID, m), nil
}

// List returns the tenant's documents, optionally narrowed to one type.
// An empty docType lists every type. Order is deterministic (ID ascending).
func (r *Repo) List(ctx context.Context, tenantID string, docType domdoc.Type) ([]domdoc.Document, error) {
	keys, err := r.store.Scan(ctx, docKey(tenantID, "*"))
	if err != nil {
		return nil, fmt.Errorf("scan documents %s: %w", tenantID, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall documents %s: %w", tenantID, err)
	}

	docs := make([]domdoc.Document, 0, len(hashes))
	for i, m := range hashes {
		if len(m) == 0 {
			continue
		}
		doc := parseHashFields(extractDocID(keys[i], tenantID), tenantID, m)
		if docType != "" && doc.DocType() != docType {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Delete removes a document.
func (r *Repo) Delete(ctx context.Context, tenantID, id string) error {
	key := docKey(tenantID, id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func docKey(tenantID, id string) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, tenantID, id)
}

func extractDocID(key, tenantID string) string {
	return strings.TrimPrefix(key, docKey(tenantID, ""))
}
