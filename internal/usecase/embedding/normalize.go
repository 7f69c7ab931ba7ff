package embedding

import (
	"context"
	"fmt"
	"math"

	"github.com/kailas-cloud/finrag/internal/domain"
)

// NormalizedEmbedder scales every vector to unit L2 length so that inner product equals cosine.
// Zero vectors are returned unchanged.
type NormalizedEmbedder struct {
	inner domain.Embedder
}

// NewNormalizedEmbedder wraps inner with L2 normalization.
func NewNormalizedEmbedder(inner domain.Embedder) *NormalizedEmbedder {
	return &NormalizedEmbedder{inner: inner}
}

// Embed embeds text and normalizes the vector.
func (n *NormalizedEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	res, err := n.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("normalized embed: %w", err)
	}
	res.Embedding = Normalize(res.Embedding)
	return res, nil
}

// BatchEmbed embeds texts and normalizes every vector.
func (n *NormalizedEmbedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	res, err := domain.EmbedAll(ctx, n.inner, texts)
	if err != nil {
		return domain.BatchEmbeddingResult{}, fmt.Errorf("normalized batch embed: %w", err)
	}
	for i := range res.Embeddings {
		res.Embeddings[i] = Normalize(res.Embeddings[i])
	}
	return res, nil
}

// HealthCheck forwards to the inner embedder when it supports health checks.
func (n *NormalizedEmbedder) HealthCheck(ctx context.Context) error {
	if hc, ok := n.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}

// Normalize returns a unit-length copy of v. A zero vector is returned as is.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	inv := 1 / math.Sqrt(sum)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) * inv)
	}
	return out
}
