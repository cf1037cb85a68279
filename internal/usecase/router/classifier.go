// Package router decides which retrieval strategy serves a query and fuses
// results when both indices are consulted.
package router

import (
	"strings"

	"github.com/sodam-cloud/kbrouter/internal/domain/search/strategy"
)

// defaultKeywordIndicators signal rule-lookup intent where exactness matters:
// a forbidden-word check must not silently substitute semantically close words.
var defaultKeywordIndicators = []string{
	"금지어", "정책", "체크리스트", "규칙", "가이드라인",
	"브랜드", "태그", "해시태그", "필수", "제외",
	"policy", "rule", "checklist", "forbidden", "brand",
	"hashtag", "required", "excluded",
}

// defaultSemanticIndicators signal free-form style and mood lookups.
var defaultSemanticIndicators = []string{
	"스타일", "느낌", "분위기", "톤", "감정", "어떻게", "같은",
	"유사한", "비슷한", "참고", "예시", "사례",
	"style", "mood", "tone", "emotion", "how", "similar to",
	"example", "reference",
}

// Classifier selects a retrieval strategy from lexical query indicators.
// Classify is a pure function: no I/O, deterministic for identical inputs.
type Classifier struct {
	keywordIndicators  []string
	semanticIndicators []string
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithKeywordIndicators replaces the keyword-indicator set (tenant override).
func WithKeywordIndicators(indicators []string) Option {
	return func(c *Classifier) {
		if len(indicators) > 0 {
			c.keywordIndicators = lowerAll(indicators)
		}
	}
}

// WithSemanticIndicators replaces the semantic-indicator set (tenant override).
func WithSemanticIndicators(indicators []string) Option {
	return func(c *Classifier) {
		if len(indicators) > 0 {
			c.semanticIndicators = lowerAll(indicators)
		}
	}
}

// NewClassifier creates a classifier with the default indicator sets.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		keywordIndicators:  defaultKeywordIndicators,
		semanticIndicators: defaultSemanticIndicators,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify picks a strategy for the query. Keyword indicators win over
// semantic ones; queries matching neither get the hybrid blend.
func (c *Classifier) Classify(q string) strategy.Strategy {
	lower := strings.ToLower(q)

	for _, indicator := range c.keywordIndicators {
		if strings.Contains(lower, indicator) {
			return strategy.Keyword
		}
	}

	for _, indicator := range c.semanticIndicators {
		if strings.Contains(lower, indicator) {
			return strategy.Semantic
		}
	}

	return strategy.Hybrid
}

func lowerAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.ToLower(s)
	}
	return out
}
