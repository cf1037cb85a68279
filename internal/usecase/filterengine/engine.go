// Package filterengine narrows result sets by extracted metadata filters,
// falling back to per-dimension keyword heuristics when a result carries no
// matching metadata key.
package filterengine

import (
	"strings"

	"github.com/sodam-cloud/kbrouter/internal/domain/metadata"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/query"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/result"
)

// dimensionKeywords associates filter values with content keywords used as
// a substring heuristic when a result has no metadata for the dimension.
var dimensionKeywords = map[string]map[string][]string{
	query.DimensionSeason: {
		"봄":  {"봄", "벚꽃", "따뜻한", "신선한"},
		"여름": {"여름", "시원한", "상쾌한", "더운"},
		"가을": {"가을", "단풍", "차분한", "고요한"},
		"겨울": {"겨울", "따뜻한", "포근한", "차가운"},
	},
	query.DimensionPurpose: {
		"홍보":  {"홍보", "소개", "추천", "인기"},
		"안내":  {"안내", "정보", "알림", "공지"},
		"이벤트": {"이벤트", "행사", "특별", "할인"},
	},
	query.DimensionStyle: {
		"시원한": {"시원", "청량", "상쾌"},
		"따뜻한": {"따뜻", "포근", "아늑"},
		"경쾌한": {"경쾌", "활기", "발랄"},
		"차분한": {"차분", "잔잔", "고요"},
	},
	query.DimensionCategory: {
		"음식점": {"음식", "맛집", "메뉴", "식당"},
		"숙박":  {"숙박", "펜션", "호텔", "객실"},
		"카페":  {"카페", "커피", "디저트", "음료"},
	},
}

// Apply narrows results by the filter map. Dimensions combine with logical
// AND; an empty filter map is the identity function. A result passes a
// dimension when its metadata value matches exactly, the keyword heuristic
// hits, or no heuristic rule exists for the value.
func Apply(results []result.Result, filters metadata.Map) []result.Result {
	if filters.IsEmpty() {
		return results
	}

	out := make([]result.Result, 0, len(results))
	for _, r := range results {
		if passesAll(&r, filters) {
			out = append(out, r)
		}
	}
	return out
}

func passesAll(r *result.Result, filters metadata.Map) bool {
	for _, dim := range filters.Keys() {
		if !passes(r, dim, filters[dim]) {
			return false
		}
	}
	return true
}

func passes(r *result.Result, dimension string, want metadata.Value) bool {
	if have, ok := r.Metadata()[dimension]; ok {
		return have.Equal(want)
	}

	keywords, ok := dimensionKeywords[dimension][want.Text()]
	if !ok || len(keywords) == 0 {
		// No rule for this value: the dimension cannot discriminate.
		return true
	}

	content := strings.ToLower(r.Content())
	for _, kw := range keywords {
		if strings.Contains(content, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
