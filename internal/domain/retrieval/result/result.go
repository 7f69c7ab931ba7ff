package result

import "github.com/kailas-cloud/finrag/internal/domain/document"

// Result is a retrieved document with its score.
// For hybrid retrieval the score is a fused composite, not a similarity on a single scale.
type Result struct {
	doc   document.Document
	score float64
}

// New creates a scored view of a document.
func New(doc document.Document, score float64) Result {
	return Result{doc: doc, score: score}
}

// Document returns the retrieved document.
func (r *Result) Document() document.Document { return r.doc }

// ID returns the document identifier.
func (r *Result) ID() string { return r.doc.ID() }

// Score returns the relevance score (higher is more relevant).
func (r *Result) Score() float64 { return r.score }
