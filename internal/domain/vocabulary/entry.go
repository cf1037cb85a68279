// Package vocabulary models curated vocabulary records: words with their
// related terms, synonyms, antonyms, and audience hints. Unlike documents,
// entries are metadata rather than provenance-sensitive content, so they are
// updated in place and never embedded.
package vocabulary

import "fmt"

// SystemTenant is the reserved tenant holding the global vocabulary.
const SystemTenant = "system"

// MaxIntensity is the upper bound of the intensity scale.
const MaxIntensity = 10

// Category classifies a vocabulary entry.
type Category string

// Vocabulary categories.
const (
	CategoryEmotion   Category = "emotion"
	CategoryTone      Category = "tone"
	CategoryTarget    Category = "target"
	CategoryForbidden Category = "forbidden"
	CategoryRequired  Category = "required"
	CategoryBrand     Category = "brand"
	CategoryLocation  Category = "location"
)

// IsValid checks if the category is one of the supported values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryEmotion, CategoryTone, CategoryTarget,
		CategoryForbidden, CategoryRequired, CategoryBrand, CategoryLocation:
		return true
	}
	return false
}

// Entry is a curated vocabulary record. Word is unique within a category
// per tenant.
type Entry struct {
	word           string
	category       Category
	relatedWords   []string
	synonyms       []string
	antonyms       []string
	usageContext   string
	intensity      int
	targetAudience []string
}

// New validates and creates an Entry.
func New(
	word string, category Category,
	relatedWords, synonyms, antonyms []string,
	usageContext string, intensity int, targetAudience []string,
) (Entry, error) {
	if word == "" {
		return Entry{}, fmt.Errorf("word is required")
	}
	if !category.IsValid() {
		return Entry{}, fmt.Errorf("invalid category %q", category)
	}
	if intensity < 0 || intensity > MaxIntensity {
		return Entry{}, fmt.Errorf("intensity must be between 0 and %d, got %d", MaxIntensity, intensity)
	}

	return Entry{
		word:           word,
		category:       category,
		relatedWords:   cloneStrings(relatedWords),
		synonyms:       cloneStrings(synonyms),
		antonyms:       cloneStrings(antonyms),
		usageContext:   usageContext,
		intensity:      intensity,
		targetAudience: cloneStrings(targetAudience),
	}, nil
}

// Reconstruct creates an Entry without validation (storage hydration).
func Reconstruct(
	word string, category Category,
	relatedWords, synonyms, antonyms []string,
	usageContext string, intensity int, targetAudience []string,
) Entry {
	return Entry{
		word: word, category: category,
		relatedWords: relatedWords, synonyms: synonyms, antonyms: antonyms,
		usageContext: usageContext, intensity: intensity, targetAudience: targetAudience,
	}
}

// Word returns the headword.
func (e *Entry) Word() string { return e.word }

// Category returns the entry category.
func (e *Entry) Category() Category { return e.category }

// RelatedWords returns associated words.
func (e *Entry) RelatedWords() []string { return e.relatedWords }

// Synonyms returns the synonym list.
func (e *Entry) Synonyms() []string { return e.synonyms }

// Antonyms returns the antonym list.
func (e *Entry) Antonyms() []string { return e.antonyms }

// UsageContext returns a hint describing when the word fits.
func (e *Entry) UsageContext() string { return e.usageContext }

// Intensity returns the emotional intensity on a 0-10 scale.
func (e *Entry) Intensity() int { return e.intensity }

// TargetAudience returns audience hints. Empty means "applies to everyone".
func (e *Entry) TargetAudience() []string { return e.targetAudience }

// Patch holds optional field updates for an entry. Nil fields are untouched.
type Patch struct {
	RelatedWords   []string
	Synonyms       []string
	Antonyms       []string
	UsageContext   *string
	Intensity      *int
	TargetAudience []string
}

// Apply returns a copy of the entry with the patch applied.
func (e Entry) Apply(p Patch) (Entry, error) {
	next := e
	if p.RelatedWords != nil {
		next.relatedWords = cloneStrings(p.RelatedWords)
	}
	if p.Synonyms != nil {
		next.synonyms = cloneStrings(p.Synonyms)
	}
	if p.Antonyms != nil {
		next.antonyms = cloneStrings(p.Antonyms)
	}
	if p.UsageContext != nil {
		next.usageContext = *p.UsageContext
	}
	if p.Intensity != nil {
		if *p.Intensity < 0 || *p.Intensity > MaxIntensity {
			return Entry{}, fmt.Errorf("intensity must be between 0 and %d, got %d", MaxIntensity, *p.Intensity)
		}
		next.intensity = *p.Intensity
	}
	if p.TargetAudience != nil {
		next.targetAudience = cloneStrings(p.TargetAudience)
	}
	return next, nil
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}
