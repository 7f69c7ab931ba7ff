package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/finrag/internal/domain"
)

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

func TestHashingEmbedder_Deterministic(t *testing.T) {
	h := NewHashingEmbedder(64)
	a, err := h.Embed(context.Background(), "Equity fund returns")
	require.NoError(t, err)
	b, err := h.Embed(context.Background(), "Equity fund returns")
	require.NoError(t, err)

	assert.Equal(t, a.Embedding, b.Embedding)
	assert.Len(t, a.Embedding, 64)
	assert.Equal(t, 3, a.TotalTokens)
	assert.InDelta(t, 1.0, dot(a.Embedding, a.Embedding), 1e-5)
}

func TestHashingEmbedder_SimilarTextsCloser(t *testing.T) {
	h := NewHashingEmbedder(256)
	ctx := context.Background()

	q, err := h.Embed(ctx, "sharpe ratio of equity funds")
	require.NoError(t, err)
	near, err := h.Embed(ctx, "equity fund with a high sharpe ratio")
	require.NoError(t, err)
	far, err := h.Embed(ctx, "how do I reset my password")
	require.NoError(t, err)

	assert.Greater(t, dot(q.Embedding, near.Embedding), dot(q.Embedding, far.Embedding))
}

func TestHashingEmbedder_EmptyText(t *testing.T) {
	h := NewHashingEmbedder(8)
	res, err := h.Embed(context.Background(), "  ?! ")
	require.NoError(t, err)
	assert.Equal(t, make([]float32, 8), res.Embedding)
	assert.Zero(t, res.TotalTokens)
}

func TestHashingEmbedder_BatchMatchesSingle(t *testing.T) {
	h := NewHashingEmbedder(32)
	texts := []string{"alpha growth", "steady income"}

	batch, err := h.BatchEmbed(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, batch.Embeddings, 2)
	assert.Equal(t, 4, batch.TotalTokens)

	for i, text := range texts {
		single, err := h.Embed(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, single.Embedding, batch.Embeddings[i])
	}
}

func TestHashingEmbedder_DefaultDimension(t *testing.T) {
	assert.Equal(t, 384, NewHashingEmbedder(0).Dim())
}

func TestHashingEmbedder_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHashingEmbedder(8).Embed(ctx, "x")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNormalize(t *testing.T) {
	v := Normalize([]float32{3, 4})
	assert.InDelta(t, 0.6, v[0], 1e-6)
	assert.InDelta(t, 0.8, v[1], 1e-6)

	zero := []float32{0, 0}
	assert.Equal(t, zero, Normalize(zero))

	orig := []float32{2, 0}
	_ = Normalize(orig)
	assert.InDelta(t, 2.0, orig[0], 1e-9, "input must not be mutated")
	assert.False(t, math.IsNaN(float64(Normalize([]float32{1e-30})[0])))
}

func TestNormalizedEmbedder(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0, 5}}}
	n := NewNormalizedEmbedder(inner)

	res, err := n.Embed(context.Background(), "x")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Embedding[1], 1e-6)

	batch, err := n.BatchEmbed(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	for _, v := range batch.Embeddings {
		assert.InDelta(t, 1.0, dot(v, v), 1e-6)
	}
}
