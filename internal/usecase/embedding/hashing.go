package embedding

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/cespare/xxhash/v2"

	"github.com/kailas-cloud/finrag/internal/domain"
	"github.com/kailas-cloud/finrag/internal/metrics"
)

const (
	hashingProvider = "hashing"
	// HashingModel names the local model in metrics, cache keys and logs.
	HashingModel = "feature-hashing-v1"

	tokenWeight   = 1.0
	trigramWeight = 0.5
)

// HashingEmbedder is a deterministic local provider. Each word token and each of its
// character trigrams is hashed into one of dim signed buckets; the result is L2-normalized.
// Used for offline runs and tests without a model server.
type HashingEmbedder struct {
	dim int
}

// NewHashingEmbedder creates a hashing embedder producing dim-dimensional vectors.
func NewHashingEmbedder(dim int) *HashingEmbedder {
	if dim <= 0 {
		dim = domain.DefaultVectorConfig().Dimensions
	}
	return &HashingEmbedder{dim: dim}
}

// Dim returns the output dimension.
func (h *HashingEmbedder) Dim() int { return h.dim }

// Embed implements domain.Embedder. TotalTokens reports the number of word tokens.
func (h *HashingEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.EmbeddingResult{}, err //nolint:wrapcheck // context error passes through
	}
	start := time.Now()
	vec, tokens := h.vectorize(text)
	h.observe(start, tokens)
	return domain.EmbeddingResult{Embedding: vec, PromptTokens: tokens, TotalTokens: tokens}, nil
}

// BatchEmbed implements domain.BatchEmbedder.
func (h *HashingEmbedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.BatchEmbeddingResult{}, err //nolint:wrapcheck // context error passes through
	}
	start := time.Now()
	out := domain.BatchEmbeddingResult{Embeddings: make([][]float32, len(texts))}
	for i, t := range texts {
		vec, tokens := h.vectorize(t)
		out.Embeddings[i] = vec
		out.PromptTokens += tokens
		out.TotalTokens += tokens
	}
	h.observe(start, out.TotalTokens)
	return out, nil
}

// HealthCheck always succeeds; the embedder has no remote dependency.
func (h *HashingEmbedder) HealthCheck(context.Context) error { return nil }

func (h *HashingEmbedder) vectorize(text string) ([]float32, int) {
	vec := make([]float32, h.dim)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, w := range words {
		h.add(vec, "w:"+w, tokenWeight)
		padded := []rune("#" + w + "#")
		for i := 0; i+3 <= len(padded); i++ {
			h.add(vec, "t:"+string(padded[i:i+3]), trigramWeight)
		}
	}
	return Normalize(vec), len(words)
}

// add hashes feature into a bucket; the top bit of the hash picks the sign.
func (h *HashingEmbedder) add(vec []float32, feature string, weight float32) {
	sum := xxhash.Sum64String(feature)
	bucket := sum % uint64(h.dim)
	if sum>>63 == 1 {
		weight = -weight
	}
	vec[bucket] += weight
}

func (h *HashingEmbedder) observe(start time.Time, tokens int) {
	metrics.EmbeddingRequestsTotal.WithLabelValues(hashingProvider, HashingModel, "success").Inc()
	metrics.EmbeddingRequestDuration.WithLabelValues(hashingProvider, HashingModel).Observe(time.Since(start).Seconds())
	if tokens > 0 {
		metrics.EmbeddingTokensTotal.WithLabelValues(hashingProvider, HashingModel, "total").Add(float64(tokens))
	}
}
