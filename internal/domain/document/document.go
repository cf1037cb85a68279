package document

import (
	"fmt"
	"time"

	"github.com/sodam-cloud/kbrouter/internal/domain"
	"github.com/sodam-cloud/kbrouter/internal/domain/metadata"
)

// MaxContentSize is the maximum document content size in bytes.
const MaxContentSize = 65536 // 64KB

// Type classifies a knowledge-base document.
type Type string

// Document types.
const (
	TypeProfile Type = "profile"
	TypePolicy  Type = "policy"
	TypeStyle   Type = "style"
	TypeKeyword Type = "keyword"
)

// IsValid checks if the type is one of the supported values.
func (t Type) IsValid() bool {
	return t == TypeProfile || t == TypePolicy || t == TypeStyle || t == TypeKeyword
}

// Axis is an optional secondary classification of a document.
type Axis string

// Document axes. AxisNone means unclassified.
const (
	AxisNone    Axis = ""
	AxisEmotion Axis = "emotion"
	AxisTone    Axis = "tone"
	AxisTarget  Axis = "target"
	AxisGeneral Axis = "general"
)

// IsValid checks if the axis is one of the supported values.
func (a Axis) IsValid() bool {
	return a == AxisNone || a == AxisEmotion || a == AxisTone || a == AxisTarget || a == AxisGeneral
}

// Document is a unit of retrievable knowledge (immutable value object).
// Once embedded, a document is never mutated in place: WithEmbedding returns
// a new revision, which keeps stored vectors from drifting out of sync with
// their content.
type Document struct {
	id        string
	tenantID  string
	content   string
	docType   Type
	axis      Axis
	meta      metadata.Map
	embedding []float32
	createdAt time.Time
	revision  int
}

// New validates and creates a Document without an embedding.
func New(id, tenantID, content string, t Type, axis Axis, meta metadata.Map) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if tenantID == "" {
		return Document{}, fmt.Errorf("tenant ID is required")
	}
	if content == "" {
		return Document{}, fmt.Errorf("content is required")
	}
	if len(content) > MaxContentSize {
		return Document{}, fmt.Errorf("content too large (max %d bytes)", MaxContentSize)
	}
	if !t.IsValid() {
		return Document{}, fmt.Errorf("invalid document type %q", t)
	}
	if !axis.IsValid() {
		return Document{}, fmt.Errorf("invalid axis %q", axis)
	}

	return Document{
		id:        id,
		tenantID:  tenantID,
		content:   content,
		docType:   t,
		axis:      axis,
		meta:      meta.Clone(),
		createdAt: time.Now().UTC(),
		revision:  1,
	}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(
	id, tenantID, content string, t Type, axis Axis, meta metadata.Map,
	embedding []float32, createdAt time.Time, revision int,
) Document {
	return Document{
		id: id, tenantID: tenantID, content: content, docType: t, axis: axis,
		meta: meta, embedding: embedding, createdAt: createdAt, revision: revision,
	}
}

// WithEmbedding returns a new revision carrying the given vector.
// The vector length must match the index dimensionality.
func (d *Document) WithEmbedding(vec []float32, dimensions int) (Document, error) {
	if dimensions > 0 && len(vec) != dimensions {
		return Document{}, fmt.Errorf("%w: got %d, want %d", domain.ErrVectorDimMismatch, len(vec), dimensions)
	}
	cp := *d
	cp.embedding = vec
	cp.revision = d.revision + 1
	return cp, nil
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// TenantID returns the owning business scope.
func (d *Document) TenantID() string { return d.tenantID }

// Content returns the document text content.
func (d *Document) Content() string { return d.content }

// DocType returns the document type.
func (d *Document) DocType() Type { return d.docType }

// Axis returns the secondary classification.
func (d *Document) Axis() Axis { return d.axis }

// Metadata returns the metadata map.
func (d *Document) Metadata() metadata.Map { return d.meta }

// Embedding returns the embedding vector, nil when not yet indexed.
func (d *Document) Embedding() []float32 { return d.embedding }

// CreatedAt returns the creation timestamp.
func (d *Document) CreatedAt() time.Time { return d.createdAt }

// Revision returns the document revision number.
func (d *Document) Revision() int { return d.revision }
