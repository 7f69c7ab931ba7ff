// Package dense implements an exact inner-product index over fixed-dimension vectors.
package dense

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/finrag/internal/domain"
	"github.com/kailas-cloud/finrag/internal/index"
)

const indexName = "dense"

// Index stores one vector per corpus position and answers brute-force
// inner-product queries. Scores are raw inner products; callers wanting cosine
// similarity must normalize vectors before building and querying.
// Index is read-only after Build and safe for concurrent use.
type Index struct {
	dim     int
	vectors [][]float32
}

// Build copies vectors into a new index. dim <= 0 takes the dimension of the first vector.
func Build(dim int, vectors [][]float32) (*Index, error) {
	if len(vectors) == 0 {
		return nil, domain.NewBuildError(indexName, errors.New("no vectors"))
	}
	if dim <= 0 {
		dim = len(vectors[0])
	}
	if dim == 0 {
		return nil, domain.NewBuildError(indexName, errors.New("zero-dimension vectors"))
	}

	stored := make([][]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return nil, domain.NewBuildError(indexName,
				fmt.Errorf("%w: vector %d has dimension %d, want %d", domain.ErrVectorDimMismatch, i, len(v), dim))
		}
		c := make([]float32, dim)
		copy(c, v)
		stored[i] = c
	}

	return &Index{dim: dim, vectors: stored}, nil
}

// Dim returns the vector dimension D.
func (x *Index) Dim() int { return x.dim }

// Len returns the number of indexed vectors.
func (x *Index) Len() int { return len(x.vectors) }

// Search returns the min(k, Len()) positions with the highest inner product,
// sorted descending with ties broken by ascending position.
func (x *Index) Search(query []float32, k int) ([]index.Hit, error) {
	if len(query) != x.dim {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d",
			domain.ErrVectorDimMismatch, len(query), x.dim)
	}
	if k <= 0 {
		return []index.Hit{}, nil
	}

	hits := make([]index.Hit, len(x.vectors))
	for i, v := range x.vectors {
		hits[i] = index.Hit{Position: i, Score: dot(v, query)}
	}
	return index.TopK(hits, k), nil
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
