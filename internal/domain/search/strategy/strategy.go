package strategy

// Strategy is the retrieval strategy chosen for a query.
type Strategy string

// Retrieval strategies.
const (
	// Hybrid blends keyword and semantic retrieval via score fusion.
	Hybrid   Strategy = "hybrid"
	Keyword  Strategy = "keyword"
	Semantic Strategy = "semantic"
)

// IsValid checks if the strategy is one of the supported values.
func (s Strategy) IsValid() bool {
	return s == Hybrid || s == Keyword || s == Semantic
}
