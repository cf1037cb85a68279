package chi

import (
	"time"

	domdoc "github.com/sodam-cloud/kbrouter/internal/domain/document"
	"github.com/sodam-cloud/kbrouter/internal/domain/intent"
	"github.com/sodam-cloud/kbrouter/internal/domain/metadata"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/result"
	domvocab "github.com/sodam-cloud/kbrouter/internal/domain/vocabulary"
	keyworduc "github.com/sodam-cloud/kbrouter/internal/usecase/keywordindex"
	retrievaluc "github.com/sodam-cloud/kbrouter/internal/usecase/retrieval"
	"github.com/sodam-cloud/kbrouter/internal/usecase/router"
)

type resolveRequest struct {
	Request          string   `json:"request"`
	Context          string   `json:"context,omitempty"`
	AvailableFilters []string `json:"available_filters,omitempty"`
}

type intentDTO struct {
	Intent     string       `json:"intent"`
	Entities   []string     `json:"entities,omitempty"`
	Confidence float64      `json:"confidence"`
	Parameters metadata.Map `json:"parameters,omitempty"`
}

type resultDTO struct {
	Content  string       `json:"content"`
	Source   string       `json:"source"`
	Score    float64      `json:"score"`
	Type     string       `json:"type"`
	Metadata metadata.Map `json:"metadata,omitempty"`
}

type resolveResponse struct {
	Intent      intentDTO    `json:"intent"`
	SearchQuery string       `json:"search_query"`
	Filters     metadata.Map `json:"filters,omitempty"`
	Reasoning   string       `json:"reasoning,omitempty"`
	Strategy    string       `json:"strategy"`
	Results     []resultDTO  `json:"results"`
	Confidence  float64      `json:"confidence"`
}

type searchRequest struct {
	Query    string `json:"query"`
	Strategy string `json:"strategy,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

type searchResponse struct {
	Strategy string      `json:"strategy"`
	Results  []resultDTO `json:"results"`
	Total    int         `json:"total"`
}

type moodSearchRequest struct {
	Emotion  string   `json:"emotion"`
	Tone     string   `json:"tone"`
	Audience []string `json:"audience,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

type indexDocumentRequest struct {
	Content  string       `json:"content"`
	Type     string       `json:"type"`
	Axis     string       `json:"axis,omitempty"`
	Metadata metadata.Map `json:"metadata,omitempty"`
}

type documentResponse struct {
	ID        string       `json:"id"`
	TenantID  string       `json:"tenant_id"`
	Content   string       `json:"content"`
	Type      string       `json:"type"`
	Axis      string       `json:"axis,omitempty"`
	Metadata  metadata.Map `json:"metadata,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	Revision  int          `json:"revision"`
}

type wordRequest struct {
	Word           string   `json:"word"`
	Category       string   `json:"category"`
	RelatedWords   []string `json:"related_words,omitempty"`
	Synonyms       []string `json:"synonyms,omitempty"`
	Antonyms       []string `json:"antonyms,omitempty"`
	UsageContext   string   `json:"usage_context,omitempty"`
	Intensity      int      `json:"intensity,omitempty"`
	TargetAudience []string `json:"target_audience,omitempty"`
}

type wordPatchRequest struct {
	RelatedWords   []string `json:"related_words,omitempty"`
	Synonyms       []string `json:"synonyms,omitempty"`
	Antonyms       []string `json:"antonyms,omitempty"`
	UsageContext   *string  `json:"usage_context,omitempty"`
	Intensity      *int     `json:"intensity,omitempty"`
	TargetAudience []string `json:"target_audience,omitempty"`
}

type entryResponse struct {
	Word           string   `json:"word"`
	Category       string   `json:"category"`
	RelatedWords   []string `json:"related_words,omitempty"`
	Synonyms       []string `json:"synonyms,omitempty"`
	Antonyms       []string `json:"antonyms,omitempty"`
	UsageContext   string   `json:"usage_context,omitempty"`
	Intensity      int      `json:"intensity"`
	TargetAudience []string `json:"target_audience,omitempty"`
}

type forbiddenCheckRequest struct {
	Text string `json:"text"`
}

type forbiddenCheckResponse struct {
	ForbiddenWords []string        `json:"forbidden_words"`
	Suggestions    []string        `json:"suggestions,omitempty"`
	Alternatives   []entryResponse `json:"alternatives,omitempty"`
}

type recommendRequest struct {
	Emotion  string   `json:"emotion"`
	Tone     string   `json:"tone"`
	Audience []string `json:"audience,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

type routerConfigDTO struct {
	VectorWeight  float64 `json:"vector_weight"`
	KeywordWeight float64 `json:"keyword_weight"`
	MaxResults    int     `json:"max_results"`
	MinScore      float64 `json:"min_score"`
}

type routerConfigPatchDTO struct {
	VectorWeight  *float64 `json:"vector_weight,omitempty"`
	KeywordWeight *float64 `json:"keyword_weight,omitempty"`
	MaxResults    *int     `json:"max_results,omitempty"`
	MinScore      *float64 `json:"min_score,omitempty"`
}

func intentToDTO(i intent.Intent) intentDTO {
	return intentDTO{
		Intent:     i.Intent,
		Entities:   i.Entities,
		Confidence: i.Confidence,
		Parameters: i.Parameters,
	}
}

func resultToDTO(r *result.Result) resultDTO {
	return resultDTO{
		Content:  r.Content(),
		Source:   r.Source(),
		Score:    r.Score(),
		Type:     string(r.ResultType()),
		Metadata: r.Metadata(),
	}
}

func resultsToDTO(results []result.Result) []resultDTO {
	out := make([]resultDTO, len(results))
	for i := range results {
		out[i] = resultToDTO(&results[i])
	}
	return out
}

func resolutionToDTO(res retrievaluc.Resolution) resolveResponse {
	return resolveResponse{
		Intent:      intentToDTO(res.Intent),
		SearchQuery: res.SearchQuery,
		Filters:     res.Query.Filters,
		Reasoning:   res.Query.Reasoning,
		Strategy:    string(res.Strategy),
		Results:     resultsToDTO(res.Results),
		Confidence:  res.Confidence,
	}
}

func documentToDTO(doc *domdoc.Document) documentResponse {
	return documentResponse{
		ID:        doc.ID(),
		TenantID:  doc.TenantID(),
		Content:   doc.Content(),
		Type:      string(doc.DocType()),
		Axis:      string(doc.Axis()),
		Metadata:  doc.Metadata(),
		CreatedAt: doc.CreatedAt(),
		Revision:  doc.Revision(),
	}
}

func entryToDTO(e *domvocab.Entry) entryResponse {
	return entryResponse{
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

func entriesToDTO(entries []domvocab.Entry) []entryResponse {
	out := make([]entryResponse, len(entries))
	for i := range entries {
		out[i] = entryToDTO(&entries[i])
	}
	return out
}

func reportToDTO(r keyworduc.AlternativeReport) forbiddenCheckResponse {
	resp := forbiddenCheckResponse{
		ForbiddenWords: r.ForbiddenWords,
		Suggestions:    r.Suggestions,
	}
	if resp.ForbiddenWords == nil {
		resp.ForbiddenWords = []string{}
	}
	if len(r.Alternatives) > 0 {
		resp.Alternatives = entriesToDTO(r.Alternatives)
	}
	return resp
}

func configToDTO(cfg router.Config) routerConfigDTO {
	return routerConfigDTO{
		VectorWeight:  cfg.VectorWeight,
		KeywordWeight: cfg.KeywordWeight,
		MaxResults:    cfg.MaxResults,
		MinScore:      cfg.MinScore,
	}
}

func (d routerConfigPatchDTO) toPatch() router.ConfigPatch {
	return router.ConfigPatch{
		VectorWeight:  d.VectorWeight,
		KeywordWeight: d.KeywordWeight,
		MaxResults:    d.MaxResults,
		MinScore:      d.MinScore,
	}
}
