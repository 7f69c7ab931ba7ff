// Package lexical implements a tf-idf index scored by cosine similarity.
package lexical

import (
	"errors"
	"math"
	"sort"

	"github.com/kailas-cloud/finrag/internal/domain"
	"github.com/kailas-cloud/finrag/internal/index"
)

const indexName = "lexical"

// DefaultMaxFeatures caps the vocabulary size when Options.MaxFeatures is unset.
const DefaultMaxFeatures = 10000

// Options configures vocabulary fitting.
type Options struct {
	MaxFeatures int
}

type weight struct {
	term  int
	value float64
}

// vector is a sparse tf-idf vector sorted by term id.
type vector struct {
	weights []weight
	norm    float64
}

// Index holds the fitted vocabulary, idf table and one sparse vector per document.
// Read-only after Build and safe for concurrent use.
type Index struct {
	vocabulary map[string]int
	idf        []float64
	docs       []vector
}

// Build fits the vocabulary over texts and vectorizes every text.
func Build(texts []string, opts Options) (*Index, error) {
	if len(texts) == 0 {
		return nil, domain.NewBuildError(indexName, errors.New("no documents"))
	}
	maxFeatures := opts.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}

	tokenized := make([][]string, len(texts))
	df := make(map[string]int)
	tf := make(map[string]int)
	for i, text := range texts {
		tokens := Tokenize(text)
		tokenized[i] = tokens
		seen := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			tf[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		}
	}
	if len(df) == 0 {
		return nil, domain.NewBuildError(indexName, errors.New("empty vocabulary; documents contain only stop words"))
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	// Keep the most frequent terms corpus-wide; term ids follow lexical order for stability.
	sort.Slice(terms, func(i, j int) bool {
		if tf[terms[i]] != tf[terms[j]] {
			return tf[terms[i]] > tf[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(texts))
	x := &Index{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
		docs:       make([]vector, len(texts)),
	}
	for i, t := range terms {
		x.vocabulary[t] = i
		x.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	for i, tokens := range tokenized {
		x.docs[i] = x.vectorize(tokens)
	}
	return x, nil
}

// Len returns the number of indexed documents.
func (x *Index) Len() int { return len(x.docs) }

// VocabularySize returns the number of fitted terms.
func (x *Index) VocabularySize() int { return len(x.vocabulary) }

// Search returns up to k positions with cosine similarity > 0, sorted descending,
// ties by ascending position. An out-of-vocabulary query yields no hits.
func (x *Index) Search(query string, k int) []index.Hit {
	if k <= 0 {
		return []index.Hit{}
	}
	q := x.vectorize(Tokenize(query))
	if len(q.weights) == 0 {
		return []index.Hit{}
	}

	hits := make([]index.Hit, 0, len(x.docs))
	for i := range x.docs {
		if s := cosine(q, x.docs[i]); s > 0 {
			hits = append(hits, index.Hit{Position: i, Score: s})
		}
	}
	return index.TopK(hits, k)
}

func (x *Index) vectorize(tokens []string) vector {
	counts := make(map[int]int)
	for _, t := range tokens {
		if id, ok := x.vocabulary[t]; ok {
			counts[id]++
		}
	}
	v := vector{weights: make([]weight, 0, len(counts))}
	for id, c := range counts {
		w := float64(c) * x.idf[id]
		v.weights = append(v.weights, weight{term: id, value: w})
		v.norm += w * w
	}
	v.norm = math.Sqrt(v.norm)
	sort.Slice(v.weights, func(i, j int) bool { return v.weights[i].term < v.weights[j].term })
	return v
}

// cosine is dot(a, b) / (|a| |b|); a zero-magnitude side gives 0.
func cosine(a, b vector) float64 {
	if a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	i, j := 0, 0
	for i < len(a.weights) && j < len(b.weights) {
		switch {
		case a.weights[i].term == b.weights[j].term:
			dot += a.weights[i].value * b.weights[j].value
			i++
			j++
		case a.weights[i].term < b.weights[j].term:
			i++
		default:
			j++
		}
	}
	return dot / (a.norm * b.norm)
}
