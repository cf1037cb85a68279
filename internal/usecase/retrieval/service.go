// Package retrieval orchestrates the full request pipeline: intent analysis
// and query extraction run concurrently, the router picks a strategy, the
// indices are consulted, and filters narrow the fused results.
package retrieval

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/sodam-cloud/kbrouter/internal/domain"
	"github.com/sodam-cloud/kbrouter/internal/domain/intent"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/query"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/result"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/strategy"
	"github.com/sodam-cloud/kbrouter/internal/usecase/filterengine"
	"github.com/sodam-cloud/kbrouter/internal/usecase/router"
)

// Resolution is the orchestrator's answer to a free-text request.
type Resolution struct {
	Intent      intent.Intent
	Query       query.Structured
	SearchQuery string
	Strategy    strategy.Strategy
	Results     []result.Result
	Confidence  float64
}

// Service wires the parsers, the router, and both indices together.
type Service struct {
	intents    IntentParser
	extractor  QueryExtractor
	keywords   KeywordSearcher
	semantic   SemanticSearcher
	classifier *router.Classifier
	tunables   *router.Tunables
	logger     *zap.Logger
}

// New creates the retrieval orchestrator.
func New(
	intents IntentParser,
	extractor QueryExtractor,
	keywords KeywordSearcher,
	semantic SemanticSearcher,
	classifier *router.Classifier,
	tunables *router.Tunables,
	logger *zap.Logger,
) *Service {
	return &Service{
		intents:    intents,
		extractor:  extractor,
		keywords:   keywords,
		semantic:   semantic,
		classifier: classifier,
		tunables:   tunables,
		logger:     logger,
	}
}

// Resolve runs the full pipeline for a free-text request. Intent parsing and
// structured-query extraction run concurrently; either failing degrades to
// its default rather than failing the request. Retrieval errors on the
// keyword path are fatal only when no semantic results can cover for them.
func (s *Service) Resolve(
	ctx context.Context, tenantID, userRequest, contextHint string, availableFilters []string,
) (Resolution, error) {
	if strings.TrimSpace(userRequest) == "" {
		return Resolution{}, fmt.Errorf("%w: empty request", domain.ErrInvalidInput)
	}

	var (
		wg           sync.WaitGroup
		parsedIntent intent.Intent
		structured   query.Structured
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		parsed, err := s.intents.Parse(ctx, userRequest, contextHint)
		if err != nil {
			s.logger.Warn("Intent parsing failed, using unknown intent",
				zap.String("tenant", tenantID), zap.Error(err))
			parsed = intent.Unknown()
		}
		parsedIntent = parsed
	}()
	go func() {
		defer wg.Done()
		structured = s.extractor.Extract(ctx, userRequest, availableFilters, contextHint)
	}()
	wg.Wait()

	searchQuery := structured.SearchQuery
	if searchQuery == "" {
		searchQuery = userRequest
	}

	strat := s.classifier.Classify(searchQuery)
	cfg := s.tunables.Snapshot()

	results, err := s.search(ctx, tenantID, searchQuery, strat, cfg)
	if err != nil {
		return Resolution{}, err
	}
	results = filterengine.Apply(postProcess(results), structured.Filters)

	queryConfidence := structured.Confidence
	if structured.IsZero() {
		queryConfidence = intent.DefaultConfidence
	}

	s.logger.Info("Request resolved",
		zap.String("tenant", tenantID),
		zap.String("strategy", string(strat)),
		zap.Int("results", len(results)),
		zap.Float64("confidence", minConfidence(parsedIntent.Confidence, queryConfidence)))

	return Resolution{
		Intent:      parsedIntent,
		Query:       structured,
		SearchQuery: searchQuery,
		Strategy:    strat,
		Results:     results,
		Confidence:  minConfidence(parsedIntent.Confidence, queryConfidence),
	}, nil
}

// Search runs the retrieval stage alone: route, consult indices, fuse.
// An empty strat lets the classifier decide; limit overrides the configured
// MaxResults when positive.
func (s *Service) Search(
	ctx context.Context, tenantID, q string, strat strategy.Strategy, limit int,
) ([]result.Result, strategy.Strategy, error) {
	if strings.TrimSpace(q) == "" {
		return nil, "", fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if strat == "" {
		strat = s.classifier.Classify(q)
	} else if !strat.IsValid() {
		return nil, "", fmt.Errorf("%w: unknown strategy %q", domain.ErrInvalidInput, strat)
	}

	cfg := s.tunables.Snapshot()
	if limit > 0 {
		cfg.MaxResults = limit
	}

	results, err := s.search(ctx, tenantID, q, strat, cfg)
	if err != nil {
		return nil, "", err
	}
	return postProcess(results), strat, nil
}

// SearchByMood builds a query from recommended vocabulary for an emotion and
// tone, then runs a hybrid search with it. No recommendations means no
// results, not an error.
func (s *Service) SearchByMood(
	ctx context.Context, tenantID, emotion, tone string, audience []string, limit int,
) ([]result.Result, error) {
	entries, err := s.keywords.Recommend(ctx, tenantID, emotion, tone, audience, limit)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	words := make([]string, 0, len(entries))
	for i := range entries {
		words = append(words, entries[i].Word())
	}

	cfg := s.tunables.Snapshot()
	if limit > 0 {
		cfg.MaxResults = limit
	}
	results, err := s.search(ctx, tenantID, strings.Join(words, " "), strategy.Hybrid, cfg)
	if err != nil {
		return nil, err
	}
	return postProcess(results), nil
}

// search consults the indices the strategy calls for. Hybrid fans out to
// both concurrently and fuses; a keyword failure there is isolated unless
// the semantic side came back empty too.
func (s *Service) search(
	ctx context.Context, tenantID, q string, strat strategy.Strategy, cfg router.Config,
) ([]result.Result, error) {
	switch strat {
	case strategy.Keyword:
		results, err := s.keywords.Search(ctx, tenantID, q, "", cfg.MaxResults)
		if err != nil {
			return nil, fmt.Errorf("keyword search: %w", err)
		}
		return results, nil

	case strategy.Semantic:
		results, err := s.semantic.SearchResults(ctx, tenantID, "", q, cfg.MaxResults)
		if err != nil {
			return nil, fmt.Errorf("semantic search: %w", err)
		}
		return results, nil

	default:
		var (
			wg                 sync.WaitGroup
			keywordResults     []result.Result
			semanticResults    []result.Result
			keywordErr, semErr error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			keywordResults, keywordErr = s.keywords.Search(ctx, tenantID, q, "", cfg.MaxResults)
		}()
		go func() {
			defer wg.Done()
			semanticResults, semErr = s.semantic.SearchResults(ctx, tenantID, "", q, cfg.MaxResults)
		}()
		wg.Wait()

		if semErr != nil {
			return nil, fmt.Errorf("semantic search: %w", semErr)
		}
		if keywordErr != nil {
			if len(semanticResults) == 0 {
				return nil, fmt.Errorf("%w: keyword search: %w", domain.ErrRetrievalFailed, keywordErr)
			}
			s.logger.Warn("Keyword search failed, continuing on semantic results only",
				zap.String("tenant", tenantID), zap.Error(keywordErr))
			keywordResults = nil
		}
		return router.Fuse(keywordResults, semanticResults, cfg), nil
	}
}

// postProcess trims content, drops empty hits, and clamps scores to [0,1].
func postProcess(results []result.Result) []result.Result {
	out := make([]result.Result, 0, len(results))
	for _, r := range results {
		content := strings.TrimSpace(r.Content())
		if content == "" {
			continue
		}
		score := r.Score()
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		out = append(out, result.New(content, r.Source(), score, r.ResultType(), r.Metadata()))
	}
	return out
}

func minConfidence(a, b float64) float64 {
	if a <= 0 {
		a = intent.DefaultConfidence
	}
	if b <= 0 {
		b = intent.DefaultConfidence
	}
	if a < b {
		return a
	}
	return b
}
