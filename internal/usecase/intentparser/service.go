// Package intentparser analyzes the intent behind a free-text request via
// the language-model service.
package intentparser

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/sodam-cloud/kbrouter/internal/domain"
	"github.com/sodam-cloud/kbrouter/internal/domain/intent"
	"github.com/sodam-cloud/kbrouter/internal/domain/metadata"
)

const parsingTemplate = `당신은 사용자의 요청에서 의도를 분석하는 전문가입니다.

사용자 요청: {text}
컨텍스트: {context}

JSON 형태로만 응답해주세요:
{
  "intent": "핵심 의도",
  "entities": ["엔티티1", "엔티티2"],
  "confidence": 0.95,
  "parameters": {
    "season": "여름",
    "purpose": "홍보",
    "tone": "친근한"
  }
}`

const parsingSystem = "의도 분석기. 반드시 유효한 JSON 객체 하나만 출력한다."

// Service parses user intent with the completion service.
type Service struct {
	llm    domain.Completer
	logger *zap.Logger
}

// New creates an intent parser.
func New(llm domain.Completer, logger *zap.Logger) *Service {
	return &Service{llm: llm, logger: logger}
}

type rawIntent struct {
	Intent     string         `json:"intent"`
	Entities   []string       `json:"entities"`
	Confidence float64        `json:"confidence"`
	Parameters map[string]any `json:"parameters"`
}

// Parse returns the parsed intent, or an error the orchestrator degrades on.
func (s *Service) Parse(ctx context.Context, text, contextHint string) (intent.Intent, error) {
	raw, err := s.llm.Complete(ctx, domain.CompletionRequest{
		System:   parsingSystem,
		Template: parsingTemplate,
		Variables: map[string]string{
			"text":    text,
			"context": contextHint,
		},
	})
	if err != nil {
		return intent.Intent{}, fmt.Errorf("intent completion: %w", err)
	}

	var parsed rawIntent
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return intent.Intent{}, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}

	params := metadata.Map{}
	for name, value := range parsed.Parameters {
		typed, convErr := metadata.FromAny(value)
		if convErr != nil {
			s.logger.Debug("Dropping unrepresentable intent parameter",
				zap.String("parameter", name), zap.Error(convErr))
			continue
		}
		params[name] = typed
	}

	out := intent.Intent{
		Intent:     parsed.Intent,
		Entities:   parsed.Entities,
		Confidence: parsed.Confidence,
		Parameters: params,
	}
	if out.Confidence <= 0 {
		out.Confidence = intent.DefaultConfidence
	}
	if out.Confidence > 1 {
		out.Confidence = 1
	}
	return out, nil
}
