package mode

import "github.com/kailas-cloud/finrag/internal/domain"

// Mode is the retrieval strategy.
type Mode string

// Retrieval mode constants.
const (
	// Semantic ranks by dense-vector inner product.
	Semantic Mode = "semantic"
	// Lexical ranks by tf-idf cosine similarity.
	Lexical Mode = "lexical"
	// Hybrid fuses semantic and lexical scores with fixed weights.
	Hybrid Mode = "hybrid"
)

// All lists the supported modes in display order.
func All() []Mode {
	return []Mode{Semantic, Lexical, Hybrid}
}

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Semantic || m == Lexical || m == Hybrid
}

// Parse converts a raw mode string. Matching is exact.
func Parse(s string) (Mode, error) {
	m := Mode(s)
	if !m.IsValid() {
		return "", &domain.InvalidModeError{Mode: s}
	}
	return m, nil
}
