package retrieval

import (
	"context"

	"github.com/kailas-cloud/finrag/internal/domain"
	"github.com/kailas-cloud/finrag/internal/index"
)

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// DenseSearcher answers inner-product queries over corpus positions.
type DenseSearcher interface {
	Dim() int
	Len() int
	Search(query []float32, k int) ([]index.Hit, error)
}

// LexicalSearcher answers tf-idf queries over corpus positions.
type LexicalSearcher interface {
	Len() int
	Search(query string, k int) []index.Hit
}
