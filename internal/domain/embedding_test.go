package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	result EmbeddingResult
	err    error
	got    []string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) (EmbeddingResult, error) {
	s.got = append(s.got, text)
	return s.result, s.err
}

type stubBatchEmbedder struct {
	stubEmbedder
	batchResult BatchEmbeddingResult
	batchErr    error
	batchTexts  []string
	healthErr   error
}

func (s *stubBatchEmbedder) BatchEmbed(_ context.Context, texts []string) (BatchEmbeddingResult, error) {
	s.batchTexts = texts
	return s.batchResult, s.batchErr
}

func (s *stubBatchEmbedder) HealthCheck(_ context.Context) error { return s.healthErr }

func TestInstructionEmbedder_PrependsInstruction(t *testing.T) {
	inner := &stubEmbedder{result: EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3}}}
	emb := NewInstructionEmbedder(inner, "query: ")

	result, err := emb.Embed(context.Background(), "what is cagr")
	require.NoError(t, err)
	assert.Equal(t, []string{"query: what is cagr"}, inner.got)
	assert.Len(t, result.Embedding, 3)
}

func TestInstructionEmbedder_ErrorPropagation(t *testing.T) {
	innerErr := errors.New("provider down")
	emb := NewInstructionEmbedder(&stubEmbedder{err: innerErr}, "query: ")

	_, err := emb.Embed(context.Background(), "hello")
	require.ErrorIs(t, err, innerErr)
}

func TestInstructionEmbedder_BatchEmbed_WithBatchInner(t *testing.T) {
	inner := &stubBatchEmbedder{
		batchResult: BatchEmbeddingResult{Embeddings: [][]float32{{0.1}, {0.2}}, TotalTokens: 20},
	}
	emb := NewInstructionEmbedder(inner, "passage: ")

	res, err := emb.BatchEmbed(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, res.Embeddings, 2)
	assert.Equal(t, []string{"passage: a", "passage: b"}, inner.batchTexts)
}

func TestInstructionEmbedder_BatchEmbed_FallbackToSingle(t *testing.T) {
	inner := &stubEmbedder{result: EmbeddingResult{Embedding: []float32{0.5}, PromptTokens: 3, TotalTokens: 3}}
	emb := NewInstructionEmbedder(inner, "q: ")

	res, err := emb.BatchEmbed(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, res.Embeddings, 2)
	assert.Equal(t, 6, res.TotalTokens)
	assert.Equal(t, []string{"q: a", "q: b"}, inner.got)
}

func TestInstructionEmbedder_HealthCheck(t *testing.T) {
	healthErr := errors.New("unreachable")
	emb := NewInstructionEmbedder(&stubBatchEmbedder{healthErr: healthErr}, "")
	require.ErrorIs(t, emb.HealthCheck(context.Background()), healthErr)

	plain := NewInstructionEmbedder(&stubEmbedder{}, "")
	require.NoError(t, plain.HealthCheck(context.Background()))
}

func TestBatchFallback(t *testing.T) {
	inner := &stubEmbedder{result: EmbeddingResult{Embedding: []float32{0.1, 0.2}, PromptTokens: 5, TotalTokens: 5}}
	res, err := BatchFallback(context.Background(), inner, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Len(t, res.Embeddings, 3)
	assert.Equal(t, 15, res.TotalTokens)
	assert.Equal(t, 15, res.PromptTokens)

	res, err = BatchFallback(context.Background(), inner, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Embeddings)
}

func TestBatchFallback_Error(t *testing.T) {
	innerErr := errors.New("fail")
	_, err := BatchFallback(context.Background(), &stubEmbedder{err: innerErr}, []string{"a"})
	require.ErrorIs(t, err, innerErr)
}

func TestEmbedAll_PrefersBatch(t *testing.T) {
	inner := &stubBatchEmbedder{batchResult: BatchEmbeddingResult{Embeddings: [][]float32{{1}}}}
	res, err := EmbedAll(context.Background(), inner, []string{"x"})
	require.NoError(t, err)
	assert.Len(t, res.Embeddings, 1)
	assert.Equal(t, []string{"x"}, inner.batchTexts)
	assert.Empty(t, inner.got)
}

func TestEmbeddingUsage(t *testing.T) {
	ctx, u := NewContextWithUsage(context.Background())
	UsageFromContext(ctx).AddTokens(7)
	assert.True(t, u.Used)
	assert.Equal(t, 7, u.TotalTokens)

	// nil collector is a no-op
	UsageFromContext(context.Background()).AddTokens(3)
}
