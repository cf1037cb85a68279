// Package semanticindex serves nearest-neighbor similarity search over
// tenant- and type-scoped document embeddings.
package semanticindex

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sodam-cloud/kbrouter/internal/domain"
	"github.com/sodam-cloud/kbrouter/internal/domain/document"
	"github.com/sodam-cloud/kbrouter/internal/domain/metadata"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/result"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/strategy"
)

// Match is a scored document hit.
type Match struct {
	doc   document.Document
	score float64
}

// Document returns the matched document.
func (m *Match) Document() document.Document { return m.doc }

// Score returns the similarity score in [0,1].
func (m *Match) Score() float64 { return m.score }

// Service is the semantic index. Reads are best-effort: embedding or store
// failures degrade to empty results so the hybrid fallback path stays alive.
type Service struct {
	repo       Repository
	embed      domain.Embedder
	dimensions int
	logger     *zap.Logger
}

// New creates a semantic index over the given repository and embedder.
func New(repo Repository, embed domain.Embedder, dimensions int, logger *zap.Logger) *Service {
	return &Service{repo: repo, embed: embed, dimensions: dimensions, logger: logger}
}

// Index embeds the content and stores a new document. Write failures are
// surfaced: silently losing an indexed document is unacceptable.
func (s *Service) Index(
	ctx context.Context, tenantID, content string,
	docType document.Type, axis document.Axis, meta metadata.Map,
) (document.Document, error) {
	doc, err := document.New(uuid.NewString(), tenantID, content, docType, axis, meta)
	if err != nil {
		return document.Document{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	emb, err := s.embed.Embed(ctx, content)
	if err != nil {
		return document.Document{}, fmt.Errorf("embed document: %w", err)
	}

	embedded, err := doc.WithEmbedding(emb.Embedding, s.dimensions)
	if err != nil {
		return document.Document{}, err
	}

	if err := s.repo.Upsert(ctx, &embedded); err != nil {
		return document.Document{}, fmt.Errorf("store document: %w: %w", domain.ErrStorage, err)
	}
	return embedded, nil
}

// Get returns a stored document by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (document.Document, error) {
	doc, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return document.Document{}, fmt.Errorf("get document %s: %w", id, err)
	}
	return doc, nil
}

// Delete removes a stored document.
func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	return nil
}

// Search embeds the query and returns the top limit documents in scope by
// similarity, descending, with document-ID tiebreak for determinism.
// Embedding and store read failures degrade to an empty list with a warning.
func (s *Service) Search(
	ctx context.Context, tenantID string, docType document.Type, q string, limit int,
) ([]Match, error) {
	emb, err := s.embed.Embed(ctx, q)
	if err != nil {
		s.logger.Warn("Query embedding failed, semantic search degraded to empty",
			zap.String("tenant", tenantID), zap.Error(err))
		return nil, nil
	}
	return s.rank(ctx, tenantID, docType, emb.Embedding, limit, "")
}

// FindSimilar returns documents similar to the reference document, excluding
// the reference itself. A missing reference is an error, not a degradation.
func (s *Service) FindSimilar(
	ctx context.Context, tenantID, referenceID string, limit int,
) ([]Match, error) {
	ref, err := s.repo.Get(ctx, tenantID, referenceID)
	if err != nil {
		return nil, fmt.Errorf("reference document %s: %w", referenceID, err)
	}
	if len(ref.Embedding()) == 0 {
		return nil, nil
	}
	return s.rank(ctx, tenantID, ref.DocType(), ref.Embedding(), limit, referenceID)
}

// SearchResults runs Search and shapes the matches as transient search
// results for fusion.
func (s *Service) SearchResults(
	ctx context.Context, tenantID string, docType document.Type, q string, limit int,
) ([]result.Result, error) {
	matches, err := s.Search(ctx, tenantID, docType, q, limit)
	if err != nil {
		return nil, err
	}
	return ToResults(matches), nil
}

// ToResults converts matches into transient search results.
func ToResults(matches []Match) []result.Result {
	out := make([]result.Result, 0, len(matches))
	for i := range matches {
		doc := matches[i].Document()
		meta := doc.Metadata().Clone()
		if meta == nil {
			meta = metadata.Map{}
		}
		meta["doc_id"] = metadata.String(doc.ID())
		meta["doc_type"] = metadata.String(string(doc.DocType()))
		out = append(out, result.New(
			doc.Content(), result.SourceVectorIndex, matches[i].Score(), strategy.Semantic, meta,
		))
	}
	return out
}

func (s *Service) rank(
	ctx context.Context, tenantID string, docType document.Type,
	queryVec []float32, limit int, excludeID string,
) ([]Match, error) {
	docs, err := s.repo.List(ctx, tenantID, docType)
	if err != nil {
		s.logger.Warn("Document listing failed, semantic search degraded to empty",
			zap.String("tenant", tenantID), zap.Error(err))
		return nil, nil
	}

	matches := make([]Match, 0, len(docs))
	for _, doc := range docs {
		if doc.ID() == excludeID || len(doc.Embedding()) == 0 {
			continue
		}
		matches = append(matches, Match{doc: doc, score: cosineSimilarity(queryVec, doc.Embedding())})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].doc.ID() < matches[j].doc.ID()
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
