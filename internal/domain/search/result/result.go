package result

import (
	"github.com/sodam-cloud/kbrouter/internal/domain/metadata"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/strategy"
)

// Index source identifiers.
const (
	SourceKeywordIndex = "keyword_index"
	SourceVectorIndex  = "vector_index"
)

// Result is a single search hit. Transient, never persisted.
type Result struct {
	content    string
	source     string
	score      float64
	resultType strategy.Strategy
	meta       metadata.Map
}

// New creates a search result.
func New(content, source string, score float64, t strategy.Strategy, meta metadata.Map) Result {
	return Result{content: content, source: source, score: score, resultType: t, meta: meta}
}

// Content returns the hit content.
func (r *Result) Content() string { return r.content }

// Source returns the originating index identifier.
func (r *Result) Source() string { return r.source }

// Score returns the relevance score in [0,1].
func (r *Result) Score() float64 { return r.score }

// ResultType returns the strategy that produced the hit.
func (r *Result) ResultType() strategy.Strategy { return r.resultType }

// Metadata returns the hit metadata.
func (r *Result) Metadata() metadata.Map { return r.meta }

// WithScore returns a copy carrying the given score.
func (r Result) WithScore(score float64) Result {
	r.score = score
	return r
}

// AsHybrid returns a copy marked as a hybrid (merged) hit.
func (r Result) AsHybrid() Result {
	r.resultType = strategy.Hybrid
	return r
}
