package semanticindex

import (
	"context"

	"github.com/sodam-cloud/kbrouter/internal/domain/document"
)

// Repository defines the storage contract for semantically indexed documents.
// An empty docType lists every type in the tenant scope.
type Repository interface {
	Upsert(ctx context.Context, doc *document.Document) error
	Get(ctx context.Context, tenantID, id string) (document.Document, error)
	List(ctx context.Context, tenantID string, docType document.Type) ([]document.Document, error)
	Delete(ctx context.Context, tenantID, id string) error
}
