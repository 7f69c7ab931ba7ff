package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/finrag/internal/index"
)

func TestFuseWeighted(t *testing.T) {
	tests := []struct {
		name     string
		semantic []index.Hit
		lexical  []index.Hit
		topK     int
		want     []index.Hit
	}{
		{
			name:     "both signals",
			semantic: []index.Hit{{Position: 0, Score: 1}},
			lexical:  []index.Hit{{Position: 0, Score: 1}},
			topK:     5,
			want:     []index.Hit{{Position: 0, Score: 1}},
		},
		{
			name:     "missing lexical contributes zero",
			semantic: []index.Hit{{Position: 3, Score: 0.5}},
			topK:     5,
			want:     []index.Hit{{Position: 3, Score: 0.35}},
		},
		{
			name:    "missing semantic contributes zero",
			lexical: []index.Hit{{Position: 1, Score: 0.5}},
			topK:    5,
			want:    []index.Hit{{Position: 1, Score: 0.15}},
		},
		{
			name:     "ties by ascending position",
			semantic: []index.Hit{{Position: 4, Score: 0.3}},
			lexical:  []index.Hit{{Position: 2, Score: 0.7}},
			topK:     5,
			want:     []index.Hit{{Position: 2, Score: 0.21}, {Position: 4, Score: 0.21}},
		},
		{
			name:     "truncated to topK",
			semantic: []index.Hit{{Position: 0, Score: 0.9}, {Position: 1, Score: 0.8}, {Position: 2, Score: 0.7}},
			topK:     2,
			want:     []index.Hit{{Position: 0, Score: 0.63}, {Position: 1, Score: 0.56}},
		},
		{
			name: "empty",
			topK: 5,
			want: []index.Hit{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fuseWeighted(tt.semantic, tt.lexical, 0.7, 0.3, tt.topK)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].Position, got[i].Position)
				assert.InDelta(t, tt.want[i].Score, got[i].Score, 1e-9)
			}
		})
	}
}
