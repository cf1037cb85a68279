package keywordindex

import (
	"context"

	"github.com/sodam-cloud/kbrouter/internal/domain/vocabulary"
)

// Repository defines the storage contract for vocabulary entries.
type Repository interface {
	List(ctx context.Context, tenantID string) ([]vocabulary.Entry, error)
	Save(ctx context.Context, tenantID string, entry vocabulary.Entry) error
}
