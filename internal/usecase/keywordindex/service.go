// Package keywordindex serves exact and fuzzy lexical lookups over the
// curated per-tenant vocabulary.
package keywordindex

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/sodam-cloud/kbrouter/internal/domain"
	"github.com/sodam-cloud/kbrouter/internal/domain/metadata"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/result"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/strategy"
	"github.com/sodam-cloud/kbrouter/internal/domain/vocabulary"
)

// Match scores.
const (
	exactMatchScore   = 1.0
	lexicalMatchScore = 0.8
)

// Service is the keyword index: an in-memory vocabulary cache backed by the
// vocabulary repository. Reads serve from the cache, pulling a tenant's
// persisted entries in on first access; writes go cache-first with the store
// write as the durability boundary, rolled back on store failure.
type Service struct {
	repo   Repository
	logger *zap.Logger

	mu          sync.RWMutex
	cache       map[string]map[string]vocabulary.Entry // tenantID -> entryKey -> entry
	loaded      map[string]bool                        // tenants whose persisted entries are cached
	initialized bool
}

// New creates an uninitialized keyword index. Queries fail with
// ErrNotInitialized until Init loads the vocabulary.
func New(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		cache:  make(map[string]map[string]vocabulary.Entry),
		loaded: make(map[string]bool),
	}
}

// Init seeds the system vocabulary and loads persisted entries on top.
// A failing store read degrades to the seeded defaults with a warning;
// retrieval must stay available even when the store is not.
func (s *Service) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range seedEntries() {
		s.put(vocabulary.SystemTenant, entry)
	}

	persisted, err := s.repo.List(ctx, vocabulary.SystemTenant)
	if err != nil {
		s.logger.Warn("Failed to load system vocabulary, using seeded defaults only", zap.Error(err))
	}
	for _, entry := range persisted {
		s.put(vocabulary.SystemTenant, entry)
	}

	s.initialized = true
	s.logger.Info("Keyword index initialized",
		zap.Int("system_entries", len(s.cache[vocabulary.SystemTenant])))
	return nil
}

// LoadTenant loads one tenant's persisted vocabulary into the cache. It runs
// at most once per tenant, triggered by the tenant's first read or write.
func (s *Service) LoadTenant(ctx context.Context, tenantID string) error {
	entries, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("load tenant vocabulary %s: %w: %w", tenantID, domain.ErrStorage, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range entries {
		s.put(tenantID, entry)
	}
	s.loaded[tenantID] = true
	return nil
}

// ensureTenant lazily loads a tenant's persisted entries. A failing store
// read degrades to whatever is cached and retries on the next access.
func (s *Service) ensureTenant(ctx context.Context, tenantID string) {
	if tenantID == vocabulary.SystemTenant {
		return
	}
	s.mu.RLock()
	skip := !s.initialized || s.loaded[tenantID]
	s.mu.RUnlock()
	if skip {
		return
	}
	if err := s.LoadTenant(ctx, tenantID); err != nil {
		s.logger.Warn("Failed to load tenant vocabulary, serving cached entries only",
			zap.String("tenant_id", tenantID), zap.Error(err))
	}
}

// Close drops the cache and marks the index uninitialized.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]map[string]vocabulary.Entry)
	s.loaded = make(map[string]bool)
	s.initialized = false
}

// Initialized reports whether Init has loaded the vocabulary.
func (s *Service) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// CacheSize returns the number of cached entries across tenants.
func (s *Service) CacheSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, entries := range s.cache {
		total += len(entries)
	}
	return total
}

// Search matches the query against words, related words, and synonyms
// (case-insensitive substring). An exact word match scores 1.0, any other
// lexical hit 0.8. Results are sorted descending by score with word-order
// tiebreak and truncated to limit.
func (s *Service) Search(
	ctx context.Context, tenantID, q string, category vocabulary.Category, limit int,
) ([]result.Result, error) {
	s.ensureTenant(ctx, tenantID)
	entries, err := s.scoped(tenantID)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(q)
	results := make([]result.Result, 0, limit)
	for _, entry := range entries {
		if category != "" && entry.Category() != category {
			continue
		}
		score, ok := matchScore(&entry, lower)
		if !ok {
			continue
		}
		results = append(results, toResult(&entry, score))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// RelatedWords returns entries related to the word: the exact entry first,
// then lexical hits, deduplicated by word. A missing word yields an empty
// list, not an error.
func (s *Service) RelatedWords(
	ctx context.Context, tenantID, word string, category vocabulary.Category, limit int,
) ([]vocabulary.Entry, error) {
	s.ensureTenant(ctx, tenantID)
	entries, err := s.scoped(tenantID)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(word)
	seen := make(map[string]struct{})
	out := make([]vocabulary.Entry, 0, limit)

	for _, entry := range entries {
		if category != "" && entry.Category() != category {
			continue
		}
		if strings.ToLower(entry.Word()) == lower {
			seen[entry.Word()] = struct{}{}
			out = append(out, entry)
		}
	}

	for _, entry := range entries {
		if limit > 0 && len(out) >= limit {
			break
		}
		if category != "" && entry.Category() != category {
			continue
		}
		if _, ok := seen[entry.Word()]; ok {
			continue
		}
		if _, hit := matchScore(&entry, lower); hit {
			seen[entry.Word()] = struct{}{}
			out = append(out, entry)
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ForbiddenWordsIn scans forbidden-category entries and their related words
// for substring presence in the text, deduplicated in first-found order.
func (s *Service) ForbiddenWordsIn(ctx context.Context, tenantID, text string) ([]string, error) {
	s.ensureTenant(ctx, tenantID)
	entries, err := s.scoped(tenantID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	found := make([]string, 0, 4)
	add := func(word string) {
		if _, ok := seen[word]; ok {
			return
		}
		seen[word] = struct{}{}
		found = append(found, word)
	}

	for _, entry := range entries {
		if entry.Category() != vocabulary.CategoryForbidden {
			continue
		}
		if strings.Contains(text, entry.Word()) {
			add(entry.Word())
		}
		for _, related := range entry.RelatedWords() {
			if strings.Contains(text, related) {
				add(related)
			}
		}
	}
	return found, nil
}

// Recommend unions emotion- and tone-category matches and keeps entries
// whose target audience intersects the given audience (case-insensitive
// substring both ways) or is empty, meaning the word applies to everyone.
func (s *Service) Recommend(
	ctx context.Context, tenantID, emotion, tone string, audience []string, limit int,
) ([]vocabulary.Entry, error) {
	emotionWords, err := s.RelatedWords(ctx, tenantID, emotion, vocabulary.CategoryEmotion, limit)
	if err != nil {
		return nil, err
	}
	toneWords, err := s.RelatedWords(ctx, tenantID, tone, vocabulary.CategoryTone, limit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	out := make([]vocabulary.Entry, 0, limit)
	for _, entry := range append(emotionWords, toneWords...) {
		if _, ok := seen[entry.Word()]; ok {
			continue
		}
		if len(entry.TargetAudience()) > 0 && !audienceIntersects(entry.TargetAudience(), audience) {
			continue
		}
		seen[entry.Word()] = struct{}{}
		out = append(out, entry)
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// AlternativeReport lists forbidden words found in a text together with
// antonym-based replacement suggestions.
type AlternativeReport struct {
	ForbiddenWords []string
	Suggestions    []string
	Alternatives   []vocabulary.Entry
}

// SuggestAlternatives checks the text for forbidden words and proposes
// antonym replacements from related entries.
func (s *Service) SuggestAlternatives(ctx context.Context, tenantID, text string) (AlternativeReport, error) {
	forbidden, err := s.ForbiddenWordsIn(ctx, tenantID, text)
	if err != nil {
		return AlternativeReport{}, err
	}

	report := AlternativeReport{ForbiddenWords: forbidden}
	for _, word := range forbidden {
		related, err := s.RelatedWords(ctx, tenantID, word, vocabulary.CategoryForbidden, 3)
		if err != nil {
			return AlternativeReport{}, err
		}
		for _, entry := range related {
			if len(entry.Antonyms()) == 0 {
				continue
			}
			report.Alternatives = append(report.Alternatives, entry)
			report.Suggestions = append(report.Suggestions,
				fmt.Sprintf("%q 대신 %q 사용을 고려해보세요.", word, entry.Antonyms()[0]))
		}
	}
	return report, nil
}

// EntriesByCategory returns all cached entries of the category in scope.
func (s *Service) EntriesByCategory(
	ctx context.Context, tenantID string, category vocabulary.Category,
) ([]vocabulary.Entry, error) {
	s.ensureTenant(ctx, tenantID)
	entries, err := s.scoped(tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]vocabulary.Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.Category() == category {
			out = append(out, entry)
		}
	}
	return out, nil
}

// AddWord inserts a new vocabulary entry: cache first, store second. If the
// store write fails, the cache insert is rolled back so the two never drift.
func (s *Service) AddWord(ctx context.Context, tenantID string, entry vocabulary.Entry) error {
	s.ensureTenant(ctx, tenantID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return domain.ErrNotInitialized
	}

	key := entryKey(entry.Category(), entry.Word())
	if _, ok := s.cache[tenantID][key]; ok {
		return fmt.Errorf("word %q in category %q: %w", entry.Word(), entry.Category(), domain.ErrAlreadyExists)
	}

	s.put(tenantID, entry)
	if err := s.repo.Save(ctx, tenantID, entry); err != nil {
		delete(s.cache[tenantID], key)
		return fmt.Errorf("persist word %q: %w: %w", entry.Word(), domain.ErrStorage, err)
	}
	return nil
}

// UpdateWord patches an existing entry in place (vocabulary is metadata, not
// provenance-sensitive content). Store failure restores the previous entry.
func (s *Service) UpdateWord(
	ctx context.Context, tenantID, word string, category vocabulary.Category, patch vocabulary.Patch,
) error {
	s.ensureTenant(ctx, tenantID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return domain.ErrNotInitialized
	}

	key := entryKey(category, word)
	previous, ok := s.cache[tenantID][key]
	if !ok {
		return fmt.Errorf("word %q in category %q: %w", word, category, domain.ErrNotFound)
	}

	updated, err := previous.Apply(patch)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	s.put(tenantID, updated)
	if err := s.repo.Save(ctx, tenantID, updated); err != nil {
		s.put(tenantID, previous)
		return fmt.Errorf("persist word %q: %w: %w", word, domain.ErrStorage, err)
	}
	return nil
}

// put stores an entry in the cache. Callers hold the write lock.
func (s *Service) put(tenantID string, entry vocabulary.Entry) {
	if s.cache[tenantID] == nil {
		s.cache[tenantID] = make(map[string]vocabulary.Entry)
	}
	s.cache[tenantID][entryKey(entry.Category(), entry.Word())] = entry
}

// scoped returns the tenant's entries plus the system vocabulary, sorted by
// word for deterministic iteration. Tenant entries shadow system ones.
func (s *Service) scoped(tenantID string) ([]vocabulary.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, domain.ErrNotInitialized
	}

	byKey := make(map[string]vocabulary.Entry, len(s.cache[vocabulary.SystemTenant]))
	for key, entry := range s.cache[vocabulary.SystemTenant] {
		byKey[key] = entry
	}
	if tenantID != vocabulary.SystemTenant {
		for key, entry := range s.cache[tenantID] {
			byKey[key] = entry
		}
	}

	entries := make([]vocabulary.Entry, 0, len(byKey))
	for _, entry := range byKey {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Word() != entries[j].Word() {
			return entries[i].Word() < entries[j].Word()
		}
		return entries[i].Category() < entries[j].Category()
	})
	return entries, nil
}

func entryKey(category vocabulary.Category, word string) string {
	return string(category) + ":" + strings.ToLower(word)
}

// matchScore reports whether the entry lexically matches the lowered query.
func matchScore(entry *vocabulary.Entry, lowerQuery string) (float64, bool) {
	wordLower := strings.ToLower(entry.Word())
	if wordLower == lowerQuery {
		return exactMatchScore, true
	}
	if strings.Contains(wordLower, lowerQuery) {
		return lexicalMatchScore, true
	}
	for _, w := range entry.RelatedWords() {
		if strings.Contains(strings.ToLower(w), lowerQuery) {
			return lexicalMatchScore, true
		}
	}
	for _, syn := range entry.Synonyms() {
		if strings.Contains(strings.ToLower(syn), lowerQuery) {
			return lexicalMatchScore, true
		}
	}
	return 0, false
}

func audienceIntersects(target, audience []string) bool {
	for _, t := range target {
		tl := strings.ToLower(t)
		for _, a := range audience {
			al := strings.ToLower(a)
			if strings.Contains(al, tl) || strings.Contains(tl, al) {
				return true
			}
		}
	}
	return false
}

func toResult(entry *vocabulary.Entry, score float64) result.Result {
	content := entry.Word()
	if entry.UsageContext() != "" {
		content += ": " + entry.UsageContext()
	}
	meta := metadata.Map{
		"word":      metadata.String(entry.Word()),
		"category":  metadata.String(string(entry.Category())),
		"intensity": metadata.Number(float64(entry.Intensity())),
	}
	if len(entry.Synonyms()) > 0 {
		meta["synonyms"] = metadata.StringList(entry.Synonyms()...)
	}
	return result.New(content, result.SourceKeywordIndex, score, strategy.Keyword, meta)
}
