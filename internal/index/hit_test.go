package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortHits_TiesByPosition(t *testing.T) {
	hits := []Hit{{3, 0.5}, {1, 0.9}, {2, 0.5}, {0, 0.5}}
	SortHits(hits)
	assert.Equal(t, []Hit{{1, 0.9}, {0, 0.5}, {2, 0.5}, {3, 0.5}}, hits)
}

func TestTopK(t *testing.T) {
	hits := []Hit{{0, 0.1}, {1, 0.3}, {2, 0.2}}
	assert.Equal(t, []Hit{{1, 0.3}, {2, 0.2}}, TopK(hits, 2))
}

func TestTopK_LargerThanInput(t *testing.T) {
	hits := []Hit{{0, 0.1}, {1, 0.3}}
	assert.Len(t, TopK(hits, 10), 2)
}

func TestTopK_NonPositive(t *testing.T) {
	assert.Empty(t, TopK([]Hit{{0, 1}}, 0))
	assert.Empty(t, TopK([]Hit{{0, 1}}, -1))
}
