// Package query models the structured query derived from a free-text
// request: a canonical search phrase plus metadata filters.
package query

import "github.com/sodam-cloud/kbrouter/internal/domain/metadata"

// Filter dimensions the extractor is allowed to emit.
const (
	DimensionSeason   = "season"
	DimensionPurpose  = "purpose"
	DimensionStyle    = "style"
	DimensionHasImage = "hasImage"
	DimensionCategory = "category"
)

// AllowedDimensions returns the closed set of filter dimensions.
func AllowedDimensions() []string {
	return []string{DimensionSeason, DimensionPurpose, DimensionStyle, DimensionHasImage, DimensionCategory}
}

// IsAllowedDimension reports whether the extractor may emit the dimension.
func IsAllowedDimension(name string) bool {
	switch name {
	case DimensionSeason, DimensionPurpose, DimensionStyle, DimensionHasImage, DimensionCategory:
		return true
	}
	return false
}

// Structured is a machine-usable search query plus filters.
// A zero value means "no structured signal available": callers fall back to
// the raw request text.
type Structured struct {
	SearchQuery string
	Filters     metadata.Map
	Reasoning   string
	Confidence  float64
}

// Zero returns the degraded "no signal" query.
func Zero() Structured {
	return Structured{Filters: metadata.Map{}}
}

// IsZero reports whether the extractor produced no usable signal.
func (s Structured) IsZero() bool {
	return s.SearchQuery == "" && s.Filters.IsEmpty() && s.Confidence == 0
}

// ClampConfidence bounds the confidence to [0,1].
func (s Structured) ClampConfidence() Structured {
	if s.Confidence < 0 {
		s.Confidence = 0
	}
	if s.Confidence > 1 {
		s.Confidence = 1
	}
	return s
}
