package retrieval

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/sodam-cloud/kbrouter/internal/domain"
	"github.com/sodam-cloud/kbrouter/internal/domain/document"
	"github.com/sodam-cloud/kbrouter/internal/domain/intent"
	"github.com/sodam-cloud/kbrouter/internal/domain/metadata"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/query"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/result"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/strategy"
	"github.com/sodam-cloud/kbrouter/internal/domain/vocabulary"
	"github.com/sodam-cloud/kbrouter/internal/usecase/router"
)

// --- Mocks ---

type mockIntentParser struct {
	result intent.Intent
	err    error
	called bool
}

func (m *mockIntentParser) Parse(_ context.Context, _, _ string) (intent.Intent, error) {
	m.called = true
	if m.err != nil {
		return intent.Intent{}, m.err
	}
	return m.result, nil
}

type mockExtractor struct {
	result   query.Structured
	lastText string
}

func (m *mockExtractor) Extract(_ context.Context, freeText string, _ []string, _ string) query.Structured {
	m.lastText = freeText
	return m.result
}

type mockKeywordSearcher struct {
	results   []result.Result
	searchErr error
	entries   []vocabulary.Entry
	recErr    error
	lastQuery string
}

func (m *mockKeywordSearcher) Search(
	_ context.Context, _, q string, _ vocabulary.Category, _ int,
) ([]result.Result, error) {
	m.lastQuery = q
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.results, nil
}

func (m *mockKeywordSearcher) Recommend(
	_ context.Context, _, _, _ string, _ []string, _ int,
) ([]vocabulary.Entry, error) {
	if m.recErr != nil {
		return nil, m.recErr
	}
	return m.entries, nil
}

type mockSemanticSearcher struct {
	results   []result.Result
	err       error
	lastQuery string
}

func (m *mockSemanticSearcher) SearchResults(
	_ context.Context, _ string, _ document.Type, q string, _ int,
) ([]result.Result, error) {
	m.lastQuery = q
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func keywordHit(content string, score float64) result.Result {
	return result.New(content, result.SourceKeywordIndex, score, strategy.Keyword, nil)
}

func semanticHit(content string, score float64) result.Result {
	return result.New(content, result.SourceVectorIndex, score, strategy.Semantic, nil)
}

func newService(
	intents IntentParser, ex QueryExtractor, kw KeywordSearcher, sem SemanticSearcher,
) *Service {
	return New(
		intents, ex, kw, sem,
		router.NewClassifier(),
		router.NewTunables(router.Config{VectorWeight: 0.7, KeywordWeight: 0.3, MaxResults: 10, MinScore: 0}),
		zap.NewNop(),
	)
}

// --- Resolve ---

func TestResolve_EmptyRequest(t *testing.T) {
	svc := newService(&mockIntentParser{}, &mockExtractor{}, &mockKeywordSearcher{}, &mockSemanticSearcher{})

	_, err := svc.Resolve(context.Background(), "tenant-1", "   ", "", nil)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestResolve_HappyPath(t *testing.T) {
	intents := &mockIntentParser{result: intent.Intent{Intent: "홍보", Confidence: 0.9}}
	ex := &mockExtractor{result: query.Structured{SearchQuery: "여름 펜션", Confidence: 0.8}}
	sem := &mockSemanticSearcher{results: []result.Result{semanticHit("시원한 여름 펜션 소개", 0.9)}}
	svc := newService(intents, ex, &mockKeywordSearcher{}, sem)

	res, err := svc.Resolve(context.Background(), "tenant-1", "여름 펜션 홍보 글 써줘", "", nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.SearchQuery != "여름 펜션" {
		t.Errorf("search query = %q, want the extracted one", res.SearchQuery)
	}
	if res.Strategy != strategy.Hybrid {
		t.Errorf("strategy = %s, want hybrid", res.Strategy)
	}
	if len(res.Results) == 0 {
		t.Error("expected results")
	}
	// min(intent 0.9, query 0.8)
	if res.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", res.Confidence)
	}
}

func TestResolve_IntentFailureDegradesToUnknown(t *testing.T) {
	intents := &mockIntentParser{err: errors.New("provider down")}
	ex := &mockExtractor{result: query.Structured{SearchQuery: "질의", Confidence: 0.9}}
	svc := newService(intents, ex, &mockKeywordSearcher{}, &mockSemanticSearcher{})

	res, err := svc.Resolve(context.Background(), "tenant-1", "요청", "", nil)
	if err != nil {
		t.Fatalf("intent failure must degrade, not fail: %v", err)
	}
	if res.Intent.Confidence != intent.DefaultConfidence {
		t.Errorf("intent confidence = %v, want default", res.Intent.Confidence)
	}
	// min(default 0.5, query 0.9)
	if res.Confidence != intent.DefaultConfidence {
		t.Errorf("confidence = %v, want %v", res.Confidence, intent.DefaultConfidence)
	}
}

func TestResolve_ZeroQueryFallsBackToRawText(t *testing.T) {
	ex := &mockExtractor{result: query.Zero()}
	sem := &mockSemanticSearcher{}
	svc := newService(&mockIntentParser{result: intent.Unknown()}, ex, &mockKeywordSearcher{}, sem)

	res, err := svc.Resolve(context.Background(), "tenant-1", "원문 요청", "", nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.SearchQuery != "원문 요청" {
		t.Errorf("search query = %q, want raw request text", res.SearchQuery)
	}
	if sem.lastQuery != "원문 요청" {
		t.Errorf("semantic search got %q", sem.lastQuery)
	}
}

func TestResolve_AppliesExtractedFilters(t *testing.T) {
	ex := &mockExtractor{result: query.Structured{
		SearchQuery: "펜션",
		Filters:     metadata.Map{"season": metadata.String("여름")},
		Confidence:  0.8,
	}}
	sem := &mockSemanticSearcher{results: []result.Result{
		semanticHit("시원한 계곡 펜션", 0.9),
		semanticHit("포근한 온돌 숙소", 0.8),
	}}
	svc := newService(&mockIntentParser{result: intent.Unknown()}, ex, &mockKeywordSearcher{}, sem)

	res, err := svc.Resolve(context.Background(), "tenant-1", "펜션 추천", "", nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(res.Results) != 1 {
		t.Fatalf("expected the season filter to keep 1 result, got %d", len(res.Results))
	}
	if res.Results[0].Content() != "시원한 계곡 펜션" {
		t.Errorf("surviving result = %q", res.Results[0].Content())
	}
}

// --- Search ---

func TestSearch_EmptyQuery(t *testing.T) {
	svc := newService(&mockIntentParser{}, &mockExtractor{}, &mockKeywordSearcher{}, &mockSemanticSearcher{})

	_, _, err := svc.Search(context.Background(), "tenant-1", "", "", 0)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSearch_InvalidStrategy(t *testing.T) {
	svc := newService(&mockIntentParser{}, &mockExtractor{}, &mockKeywordSearcher{}, &mockSemanticSearcher{})

	_, _, err := svc.Search(context.Background(), "tenant-1", "질의", strategy.Strategy("bogus"), 0)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSearch_EmptyStrategyUsesClassifier(t *testing.T) {
	kw := &mockKeywordSearcher{results: []result.Result{keywordHit("금지어 목록", 1.0)}}
	svc := newService(&mockIntentParser{}, &mockExtractor{}, kw, &mockSemanticSearcher{})

	_, strat, err := svc.Search(context.Background(), "tenant-1", "금지어 알려줘", "", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if strat != strategy.Keyword {
		t.Errorf("strategy = %s, want classifier-picked keyword", strat)
	}
}

func TestSearch_KeywordErrorSurfaces(t *testing.T) {
	kw := &mockKeywordSearcher{searchErr: domain.ErrNotInitialized}
	svc := newService(&mockIntentParser{}, &mockExtractor{}, kw, &mockSemanticSearcher{})

	_, _, err := svc.Search(context.Background(), "tenant-1", "질의", strategy.Keyword, 0)
	if !errors.Is(err, domain.ErrNotInitialized) {
		t.Fatalf("expected keyword error to surface, got %v", err)
	}
}

func TestSearch_HybridKeywordFailureIsolated(t *testing.T) {
	kw := &mockKeywordSearcher{searchErr: errors.New("index down")}
	sem := &mockSemanticSearcher{results: []result.Result{semanticHit("의미 기반 결과", 0.9)}}
	svc := newService(&mockIntentParser{}, &mockExtractor{}, kw, sem)

	results, _, err := svc.Search(context.Background(), "tenant-1", "질의", strategy.Hybrid, 0)
	if err != nil {
		t.Fatalf("keyword failure must be isolated when semantic covers: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected the semantic result, got %d", len(results))
	}
}

func TestSearch_HybridBothSidesDownFails(t *testing.T) {
	kw := &mockKeywordSearcher{searchErr: errors.New("index down")}
	sem := &mockSemanticSearcher{} // no results, no error
	svc := newService(&mockIntentParser{}, &mockExtractor{}, kw, sem)

	_, _, err := svc.Search(context.Background(), "tenant-1", "질의", strategy.Hybrid, 0)
	if !errors.Is(err, domain.ErrRetrievalFailed) {
		t.Fatalf("expected ErrRetrievalFailed, got %v", err)
	}
}

func TestSearch_HybridSemanticErrorIsFatal(t *testing.T) {
	kw := &mockKeywordSearcher{results: []result.Result{keywordHit("결과", 1.0)}}
	sem := &mockSemanticSearcher{err: errors.New("store down")}
	svc := newService(&mockIntentParser{}, &mockExtractor{}, kw, sem)

	if _, _, err := svc.Search(context.Background(), "tenant-1", "질의", strategy.Hybrid, 0); err == nil {
		t.Fatal("semantic error in hybrid must be fatal")
	}
}

func TestSearch_HybridFusesAndWeights(t *testing.T) {
	kw := &mockKeywordSearcher{results: []result.Result{keywordHit("키워드 결과", 1.0)}}
	sem := &mockSemanticSearcher{results: []result.Result{semanticHit("의미 결과", 1.0)}}
	svc := newService(&mockIntentParser{}, &mockExtractor{}, kw, sem)

	results, _, err := svc.Search(context.Background(), "tenant-1", "질의", strategy.Hybrid, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 fused results, got %d", len(results))
	}
	if results[0].Content() != "의미 결과" || results[0].Score() != 0.7 {
		t.Errorf("top result = %q score %v, want weighted semantic first", results[0].Content(), results[0].Score())
	}
}

func TestSearch_PostProcessDropsEmptyAndClamps(t *testing.T) {
	kw := &mockKeywordSearcher{results: []result.Result{
		keywordHit("  내용 주변 공백  ", 1.5),
		keywordHit("   ", 0.9),
	}}
	svc := newService(&mockIntentParser{}, &mockExtractor{}, kw, &mockSemanticSearcher{})

	results, _, err := svc.Search(context.Background(), "tenant-1", "질의", strategy.Keyword, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("blank result must be dropped, got %d", len(results))
	}
	if results[0].Content() != "내용 주변 공백" {
		t.Errorf("content = %q, want trimmed", results[0].Content())
	}
	if results[0].Score() != 1 {
		t.Errorf("score = %v, want clamped to 1", results[0].Score())
	}
}

// --- SearchByMood ---

func TestSearchByMood_BuildsQueryFromRecommendations(t *testing.T) {
	calm, err := vocabulary.New("고요함", vocabulary.CategoryEmotion, nil, nil, nil, "", 3, nil)
	if err != nil {
		t.Fatalf("vocabulary.New: %v", err)
	}
	polite, err := vocabulary.New("정중함", vocabulary.CategoryTone, nil, nil, nil, "", 5, nil)
	if err != nil {
		t.Fatalf("vocabulary.New: %v", err)
	}

	kw := &mockKeywordSearcher{entries: []vocabulary.Entry{calm, polite}}
	sem := &mockSemanticSearcher{results: []result.Result{semanticHit("잔잔한 숙소 소개", 0.9)}}
	svc := newService(&mockIntentParser{}, &mockExtractor{}, kw, sem)

	results, err := svc.SearchByMood(context.Background(), "tenant-1", "고요함", "정중함", []string{"40대"}, 5)
	if err != nil {
		t.Fatalf("SearchByMood: %v", err)
	}
	if len(results) == 0 {
		t.Error("expected results")
	}
	if sem.lastQuery != "고요함 정중함" {
		t.Errorf("mood query = %q, want joined recommendation words", sem.lastQuery)
	}
}

func TestSearchByMood_NoRecommendations(t *testing.T) {
	svc := newService(&mockIntentParser{}, &mockExtractor{}, &mockKeywordSearcher{}, &mockSemanticSearcher{})

	results, err := svc.SearchByMood(context.Background(), "tenant-1", "없는감정", "", nil, 5)
	if err != nil {
		t.Fatalf("no recommendations is not an error: %v", err)
	}
	if results != nil {
		t.Errorf("expected nil results, got %v", results)
	}
}

func TestSearchByMood_RecommendErrorSurfaces(t *testing.T) {
	kw := &mockKeywordSearcher{recErr: domain.ErrNotInitialized}
	svc := newService(&mockIntentParser{}, &mockExtractor{}, kw, &mockSemanticSearcher{})

	if _, err := svc.SearchByMood(context.Background(), "tenant-1", "고요함", "", nil, 5); !errors.Is(err, domain.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

// --- minConfidence ---

func TestMinConfidence(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"both set", 0.9, 0.7, 0.7},
		{"zero substituted", 0, 0.9, 0.5},
		{"negative substituted", -1, 0.3, 0.3},
		{"both zero", 0, 0, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := minConfidence(tt.a, tt.b); got != tt.want {
				t.Errorf("minConfidence(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
