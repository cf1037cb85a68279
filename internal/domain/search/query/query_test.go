package query

import (
	"testing"

	"github.com/sodam-cloud/kbrouter/internal/domain/metadata"
)

func TestZero_IsZero(t *testing.T) {
	if !Zero().IsZero() {
		t.Error("Zero() must report IsZero")
	}

	withQuery := Structured{SearchQuery: "질의"}
	if withQuery.IsZero() {
		t.Error("a query with a search phrase is not zero")
	}
	withFilters := Structured{Filters: metadata.Map{"season": metadata.String("여름")}}
	if withFilters.IsZero() {
		t.Error("a query with filters is not zero")
	}
	withConfidence := Structured{Confidence: 0.4}
	if withConfidence.IsZero() {
		t.Error("a query with confidence is not zero")
	}
}

func TestClampConfidence(t *testing.T) {
	if got := (Structured{Confidence: 1.7}).ClampConfidence().Confidence; got != 1 {
		t.Errorf("confidence = %v, want 1", got)
	}
	if got := (Structured{Confidence: -0.3}).ClampConfidence().Confidence; got != 0 {
		t.Errorf("confidence = %v, want 0", got)
	}
	if got := (Structured{Confidence: 0.6}).ClampConfidence().Confidence; got != 0.6 {
		t.Errorf("confidence = %v, want unchanged 0.6", got)
	}
}

func TestIsAllowedDimension(t *testing.T) {
	for _, dim := range AllowedDimensions() {
		if !IsAllowedDimension(dim) {
			t.Errorf("dimension %q must be allowed", dim)
		}
	}
	if IsAllowedDimension("secret_field") {
		t.Error("unknown dimension must be rejected")
	}
}
