// Package extractor converts free-text requests into structured queries via
// the language-model service. It never fails a request: a broken upstream
// response degrades to the zero query so callers fall back to the raw text.
package extractor

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/sodam-cloud/kbrouter/internal/domain"
	"github.com/sodam-cloud/kbrouter/internal/domain/metadata"
	"github.com/sodam-cloud/kbrouter/internal/domain/search/query"
)

// Service extracts structured queries from free text.
type Service struct {
	llm    domain.Completer
	logger *zap.Logger
}

// New creates a structured-query extractor.
func New(llm domain.Completer, logger *zap.Logger) *Service {
	return &Service{llm: llm, logger: logger}
}

// rawOutput mirrors the JSON schema the model is instructed to emit.
type rawOutput struct {
	SearchQuery string         `json:"searchQuery"`
	Filters     map[string]any `json:"filters"`
	Reasoning   string         `json:"reasoning"`
	Confidence  float64        `json:"confidence"`
}

// Extract asks the language model for a canonical search query plus filters.
// Upstream failures and malformed responses return the zero query ("no
// structured signal available"), never an error.
func (s *Service) Extract(
	ctx context.Context, freeText string, availableFilters []string, contextHint string,
) query.Structured {
	if len(availableFilters) == 0 {
		availableFilters = query.AllowedDimensions()
	}

	raw, err := s.llm.Complete(ctx, domain.CompletionRequest{
		System:   extractionSystem,
		Template: extractionTemplate,
		Variables: map[string]string{
			"query":            freeText,
			"availableFilters": strings.Join(availableFilters, ", "),
			"context":          contextHint,
		},
	})
	if err != nil {
		s.logger.Warn("Structured query extraction failed, degrading to raw text", zap.Error(err))
		return query.Zero()
	}

	parsed, ok := parseOutput(raw)
	if !ok {
		s.logger.Warn("Malformed extraction response, degrading to raw text",
			zap.String("response_head", head(raw, 120)))
		return query.Zero()
	}

	return query.Structured{
		SearchQuery: strings.TrimSpace(parsed.SearchQuery),
		Filters:     s.convertFilters(parsed.Filters),
		Reasoning:   parsed.Reasoning,
		Confidence:  parsed.Confidence,
	}.ClampConfidence()
}

// parseOutput decodes the model response, applying a repair pass before
// giving up on almost-valid JSON.
func parseOutput(raw string) (rawOutput, bool) {
	cleaned := sanitizeJSON(raw)

	var out rawOutput
	if err := json.Unmarshal([]byte(cleaned), &out); err == nil {
		return out, true
	}
	if err := json.Unmarshal([]byte(repairJSON(cleaned)), &out); err == nil {
		return out, true
	}
	return rawOutput{}, false
}

// convertFilters keeps only allowed dimensions with representable values.
func (s *Service) convertFilters(filters map[string]any) metadata.Map {
	out := metadata.Map{}
	for name, raw := range filters {
		if !query.IsAllowedDimension(name) {
			s.logger.Debug("Dropping filter outside the allowed dimension set", zap.String("dimension", name))
			continue
		}
		value, err := metadata.FromAny(raw)
		if err != nil {
			s.logger.Debug("Dropping unrepresentable filter value",
				zap.String("dimension", name), zap.Error(err))
			continue
		}
		out[name] = value
	}
	return out
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
