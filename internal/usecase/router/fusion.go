package router

import (
	"sort"

	"github.com/sodam-cloud/kbrouter/internal/domain/search/result"
)

// dedupPrefixRunes is the length of the content prefix used as the fusion
// dedup key. Prefix-based dedup can merge distinct documents that share a
// long common prefix; kept as a documented trade-off because "near-duplicate
// is good enough" for knowledge-base snippets.
const dedupPrefixRunes = 100

// Fuse merges keyword and semantic results into a single ranked list.
// Semantic hits enter first scaled by VectorWeight; a keyword hit landing on
// an occupied dedup key raises the entry to max(existing, keyword*KeywordWeight)
// and marks it hybrid, otherwise it enters scaled by KeywordWeight. Entries
// below MinScore are dropped, the rest sorted descending by score (stable,
// so ties keep insertion order) and truncated to MaxResults.
func Fuse(keywordResults, semanticResults []result.Result, cfg Config) []result.Result {
	merged := make(map[string]int, len(keywordResults)+len(semanticResults))
	ordered := make([]result.Result, 0, len(keywordResults)+len(semanticResults))

	for _, r := range semanticResults {
		key := dedupKey(r.Content())
		if _, ok := merged[key]; ok {
			continue
		}
		merged[key] = len(ordered)
		ordered = append(ordered, r.WithScore(r.Score()*cfg.VectorWeight))
	}

	for _, r := range keywordResults {
		key := dedupKey(r.Content())
		weighted := r.Score() * cfg.KeywordWeight
		if idx, ok := merged[key]; ok {
			existing := ordered[idx]
			if weighted > existing.Score() {
				existing = existing.WithScore(weighted)
			}
			ordered[idx] = existing.AsHybrid()
			continue
		}
		merged[key] = len(ordered)
		ordered = append(ordered, r.WithScore(weighted))
	}

	kept := ordered[:0]
	for _, r := range ordered {
		if r.Score() >= cfg.MinScore {
			kept = append(kept, clampScore(r))
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score() > kept[j].Score()
	})

	if cfg.MaxResults > 0 && len(kept) > cfg.MaxResults {
		kept = kept[:cfg.MaxResults]
	}

	return kept
}

// dedupKey returns the first 100 runes of the content.
func dedupKey(content string) string {
	runes := []rune(content)
	if len(runes) > dedupPrefixRunes {
		runes = runes[:dedupPrefixRunes]
	}
	return string(runes)
}

func clampScore(r result.Result) result.Result {
	switch {
	case r.Score() < 0:
		return r.WithScore(0)
	case r.Score() > 1:
		return r.WithScore(1)
	}
	return r
}
