// Package index holds the in-memory similarity indices built over a corpus.
// Positions returned by every index refer to the corpus order the index was built from.
package index

import "sort"

// Hit is a scored corpus position.
type Hit struct {
	Position int
	Score    float64
}

// SortHits orders hits by descending score, ties by ascending position.
func SortHits(hits []Hit) {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Position < hits[j].Position
	})
}

// TopK sorts hits and truncates them to k. k <= 0 yields no hits.
func TopK(hits []Hit, k int) []Hit {
	if k <= 0 {
		return []Hit{}
	}
	SortHits(hits)
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}
