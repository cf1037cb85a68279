package document

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"strconv"
	"time"

	domdoc "github.com/sodam-cloud/kbrouter/internal/domain/document"
	"github.com/sodam-cloud/kbrouter/internal/domain/metadata"
)

// Reserved hash field names. Metadata lives under __meta as JSON so tenant
// metadata keys can never collide with the structural fields.
const (
	fieldContent   = "__content"
	fieldType      = "__type"
	fieldAxis      = "__axis"
	fieldMeta      = "__meta"
	fieldVector    = "__vector"
	fieldCreatedAt = "__created_at"
	fieldRevision  = "__revision"
)

// buildHashFields converts a domain Document into a flat map[string]string for HSET.
func buildHashFields(doc *domdoc.Document) (map[string]string, error) {
	m := map[string]string{
		fieldContent:   doc.Content(),
		fieldType:      string(doc.DocType()),
		fieldAxis:      string(doc.Axis()),
		fieldCreatedAt: doc.CreatedAt().UTC().Format(time.RFC3339Nano),
		fieldRevision:  strconv.Itoa(doc.Revision()),
	}
	if len(doc.Embedding()) > 0 {
		m[fieldVector] = vectorToBytes(doc.Embedding())
	}
	if !doc.Metadata().IsEmpty() {
		meta, err := json.Marshal(doc.Metadata())
		if err != nil {
			return nil, err
		}
		m[fieldMeta] = string(meta)
	}
	return m, nil
}

// parseHashFields converts a flat hash map back into a domain Document.
func parseHashFields(id, tenantID string, m map[string]string) domdoc.Document {
	var meta metadata.Map
	if raw := m[fieldMeta]; raw != "" {
		// Corrupt metadata degrades to none rather than failing the read.
		_ = json.Unmarshal([]byte(raw), &meta)
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, m[fieldCreatedAt])
	revision, _ := strconv.Atoi(m[fieldRevision])

	return domdoc.Reconstruct(
		id, tenantID, m[fieldContent],
		domdoc.Type(m[fieldType]), domdoc.Axis(m[fieldAxis]),
		meta, bytesToVector(m[fieldVector]), createdAt, revision,
	)
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
