// Package intent models the parsed user intent produced by the intent
// parsing collaborator.
package intent

import "github.com/sodam-cloud/kbrouter/internal/domain/metadata"

// DefaultConfidence substitutes a missing confidence signal.
const DefaultConfidence = 0.5

// Intent is the parsed intent of a free-text request.
type Intent struct {
	Intent     string
	Entities   []string
	Confidence float64
	Parameters metadata.Map
}

// Unknown returns the degraded intent used when parsing fails.
func Unknown() Intent {
	return Intent{Confidence: DefaultConfidence, Parameters: metadata.Map{}}
}
