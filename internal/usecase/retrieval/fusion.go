package retrieval

import "github.com/kailas-cloud/finrag/internal/index"

// fuseWeighted merges dense and lexical candidates by position.
// score(d) = ws*semantic(d) + wl*lexical(d); a position missing from one list contributes 0 for it.
// The union is sorted descending with ties by ascending position, then truncated to topK.
func fuseWeighted(semantic, lexical []index.Hit, ws, wl float64, topK int) []index.Hit {
	fused := make(map[int]float64, len(semantic)+len(lexical))
	for _, h := range semantic {
		fused[h.Position] += ws * h.Score
	}
	for _, h := range lexical {
		fused[h.Position] += wl * h.Score
	}

	hits := make([]index.Hit, 0, len(fused))
	for pos, s := range fused {
		hits = append(hits, index.Hit{Position: pos, Score: s})
	}
	return index.TopK(hits, topK)
}
