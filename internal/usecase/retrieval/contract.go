package retrieval

import (
	"context"

	"github.com/sodam-cloud/kbrouter/internal/domain/document"
	"github.com/sodam-cloud/kbrouter/internal/domain/intent"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/query"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/result"
	"github.com/sodam-cloud/kbrouter/internal/domain/vocabulary"
)

// IntentParser analyzes the intent behind a free-text request.
// An external collaborator: failures are degraded, never fatal.
type IntentParser interface {
	Parse(ctx context.Context, text, contextHint string) (intent.Intent, error)
}

// QueryExtractor converts free text into a structured query. Degradation is
// internal: a zero-valued Structured means "no structured signal available".
type QueryExtractor interface {
	Extract(ctx context.Context, freeText string, availableFilters []string, contextHint string) query.Structured
}

// KeywordSearcher is the lexical retrieval path.
type KeywordSearcher interface {
	Search(ctx context.Context, tenantID, q string, category vocabulary.Category, limit int) ([]result.Result, error)
	Recommend(ctx context.Context, tenantID, emotion, tone string, audience []string, limit int) ([]vocabulary.Entry, error)
}

// SemanticSearcher is the similarity retrieval path.
type SemanticSearcher interface {
	SearchResults(ctx context.Context, tenantID string, docType document.Type, q string, limit int) ([]result.Result, error)
}
