package corpus

import (
	"fmt"

	"github.com/kailas-cloud/finrag/internal/domain"
	"github.com/kailas-cloud/finrag/internal/domain/document"
	"github.com/kailas-cloud/finrag/internal/domain/retrieval/mode"
)

// Corpus is the ordered, read-only document collection.
// A document's position is its identity inside both indices.
type Corpus struct {
	docs []document.Document
}

// Stats summarizes the corpus for the statistics endpoint.
type Stats struct {
	Total     int
	FAQCount  int
	FundCount int
	Modes     []mode.Mode
}

// New creates a Corpus from docs in the given order. Every document needs an id,
// content and a known type, and IDs must be unique.
func New(docs []document.Document) (Corpus, error) {
	seen := make(map[string]int, len(docs))
	for i := range docs {
		id := docs[i].ID()
		switch {
		case id == "":
			return Corpus{}, fmt.Errorf("%w: empty id at position %d", domain.ErrInvalidDocument, i)
		case docs[i].Content() == "":
			return Corpus{}, fmt.Errorf("%w: empty content for %q", domain.ErrInvalidDocument, id)
		case !docs[i].Type().IsValid():
			return Corpus{}, fmt.Errorf("%w: unknown type %q for %q", domain.ErrInvalidDocument, docs[i].Type(), id)
		}
		if prev, ok := seen[id]; ok {
			return Corpus{}, fmt.Errorf("%w: duplicate id %q at positions %d and %d",
				domain.ErrInvalidDocument, id, prev, i)
		}
		seen[id] = i
	}

	c := make([]document.Document, len(docs))
	copy(c, docs)
	return Corpus{docs: c}, nil
}

// Len returns the number of documents.
func (c Corpus) Len() int { return len(c.docs) }

// At returns the document at position i. Panics if i is out of range.
func (c Corpus) At(i int) document.Document { return c.docs[i] }

// Texts returns document contents in corpus order.
func (c Corpus) Texts() []string {
	out := make([]string, len(c.docs))
	for i := range c.docs {
		out[i] = c.docs[i].Content()
	}
	return out
}

// Stats counts documents per type.
func (c Corpus) Stats() Stats {
	s := Stats{Total: len(c.docs), Modes: mode.All()}
	for i := range c.docs {
		switch c.docs[i].Type() {
		case document.TypeFAQ:
			s.FAQCount++
		case document.TypeFund:
			s.FundCount++
		}
	}
	return s
}
