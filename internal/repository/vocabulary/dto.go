package vocabulary

import (
	domvocab "github.com/sodam-cloud/kbrouter/internal/domain/vocabulary"
)

// entryDTO is the stored JSON shape of a vocabulary entry.
type entryDTO struct {
	Word           string   `json:"word"`
	Category       string   `json:"category"`
	RelatedWords   []string `json:"related_words,omitempty"`
	Synonyms       []string `json:"synonyms,omitempty"`
	Antonyms       []string `json:"antonyms,omitempty"`
	UsageContext   string   `json:"usage_context,omitempty"`
	Intensity      int      `json:"intensity"`
	TargetAudience []string `json:"target_audience,omitempty"`
}

func toDTO(e *domvocab.Entry) entryDTO {
	return entryDTO{
		Word:           e.Word(),
		Category:       string(e.Category()),
		RelatedWords:   e.RelatedWords(),
		Synonyms:       e.Synonyms(),
		Antonyms:       e.Antonyms(),
		UsageContext:   e.UsageContext(),
		Intensity:      e.Intensity(),
		TargetAudience: e.TargetAudience(),
	}
}

func (d entryDTO) toDomain() domvocab.Entry {
	return domvocab.Reconstruct(
		d.Word, domvocab.Category(d.Category),
		d.RelatedWords, d.Synonyms, d.Antonyms,
		d.UsageContext, d.Intensity, d.TargetAudience,
	)
}
