package filterengine

import (
	"testing"

	"github.com/sodam-cloud/kbrouter/internal/domain/metadata"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/result"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/strategy"
)

func hit(content string, meta metadata.Map) result.Result {
	return result.New(content, result.SourceVectorIndex, 0.8, strategy.Semantic, meta)
}

func TestApply_EmptyFiltersAreIdentity(t *testing.T) {
	results := []result.Result{hit("아무 내용", nil)}

	got := Apply(results, nil)
	if len(got) != 1 {
		t.Fatalf("nil filters dropped results: %d", len(got))
	}
	got = Apply(results, metadata.Map{})
	if len(got) != 1 {
		t.Fatalf("empty filters dropped results: %d", len(got))
	}
}

func TestApply_MetadataExactMatch(t *testing.T) {
	results := []result.Result{
		hit("여름 이벤트", metadata.Map{"season": metadata.String("여름")}),
		hit("겨울 이벤트", metadata.Map{"season": metadata.String("겨울")}),
	}

	got := Apply(results, metadata.Map{"season": metadata.String("여름")})
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].Content() != "여름 이벤트" {
		t.Errorf("surviving result = %q", got[0].Content())
	}
}

func TestApply_MetadataMismatchBeatsKeywordHeuristic(t *testing.T) {
	// Content mentions 여름 but the metadata says 겨울; metadata wins.
	results := []result.Result{
		hit("여름 같은 겨울 풍경", metadata.Map{"season": metadata.String("겨울")}),
	}

	got := Apply(results, metadata.Map{"season": metadata.String("여름")})
	if len(got) != 0 {
		t.Errorf("metadata mismatch must drop the result, got %d", len(got))
	}
}

func TestApply_KeywordHeuristicOnMissingMetadata(t *testing.T) {
	results := []result.Result{
		hit("시원한 계곡 옆 펜션", nil),
		hit("포근한 벽난로가 있는 숙소", nil),
	}

	got := Apply(results, metadata.Map{"season": metadata.String("여름")})
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].Content() != "시원한 계곡 옆 펜션" {
		t.Errorf("surviving result = %q", got[0].Content())
	}
}

func TestApply_UnknownValuePassesEverything(t *testing.T) {
	results := []result.Result{hit("아무 내용", nil)}

	// No heuristic rule exists for this season value.
	got := Apply(results, metadata.Map{"season": metadata.String("장마철")})
	if len(got) != 1 {
		t.Errorf("value without a heuristic rule must not discriminate, got %d", len(got))
	}
}

func TestApply_DimensionsCombineWithAND(t *testing.T) {
	results := []result.Result{
		hit("여름 특별 할인 이벤트", nil),
		hit("시원한 여름 풍경 안내 공지", nil),
	}

	got := Apply(results, metadata.Map{
		"season":  metadata.String("여름"),
		"purpose": metadata.String("이벤트"),
	})
	if len(got) != 1 {
		t.Fatalf("expected 1 result passing both dimensions, got %d", len(got))
	}
	if got[0].Content() != "여름 특별 할인 이벤트" {
		t.Errorf("surviving result = %q", got[0].Content())
	}
}

func TestApply_NonStringMetadataComparesByEquality(t *testing.T) {
	results := []result.Result{
		hit("이미지 포함", metadata.Map{"hasImage": metadata.Bool(true)}),
		hit("텍스트만", metadata.Map{"hasImage": metadata.Bool(false)}),
	}

	got := Apply(results, metadata.Map{"hasImage": metadata.Bool(true)})
	if len(got) != 1 || got[0].Content() != "이미지 포함" {
		t.Errorf("boolean filter mismatch: %d results", len(got))
	}
}
