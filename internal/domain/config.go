package domain

// VectorConfig holds internal vectorization settings, not exposed to clients.
type VectorConfig struct {
	Model          string
	Dimensions     int
	DistanceMetric string
}

// DefaultVectorConfig returns the defaults tuned for all-MiniLM-L6-v2.
// Vectors are compared by raw inner product, so normalized vectors give cosine similarity.
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{
		Model:          "sentence-transformers/all-MiniLM-L6-v2",
		Dimensions:     384,
		DistanceMetric: "ip",
	}
}
