package document

import (
	"fmt"

	"github.com/kailas-cloud/finrag/internal/domain"
)

// Type is the corpus a document belongs to.
type Type string

const (
	// TypeFAQ marks a question/answer entry.
	TypeFAQ Type = "faq"
	// TypeFund marks a fund performance record.
	TypeFund Type = "fund"
)

// IsValid checks if the type is one of the supported values.
func (t Type) IsValid() bool {
	return t == TypeFAQ || t == TypeFund
}

// ParseType converts a raw tag into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: unknown document type %q", domain.ErrInvalidDocument, s)
	}
	return t, nil
}

// Metadata is the type-specific payload of a document.
// Implemented only by FAQMetadata and FundMetadata.
type Metadata interface {
	Type() Type
	isMetadata()
}

// FAQMetadata holds the source question and answer of an FAQ entry.
type FAQMetadata struct {
	Question string
	Answer   string
}

// Type returns TypeFAQ.
func (FAQMetadata) Type() Type { return TypeFAQ }
func (FAQMetadata) isMetadata() {}

// FundMetadata holds the performance figures of a fund.
// CAGR and Volatility are percentages (3-year CAGR).
type FundMetadata struct {
	FundID     string
	Name       string
	Category   string
	CAGR       float64
	Volatility float64
	Sharpe     float64
}

// Type returns TypeFund.
func (FundMetadata) Type() Type { return TypeFund }
func (FundMetadata) isMetadata() {}

// Document is the indexed unit (immutable value object).
type Document struct {
	id       string
	content  string
	docType  Type
	metadata Metadata
}

// New validates and creates a Document. The type tag is taken from the metadata variant.
func New(id, content string, metadata Metadata) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("%w: id is required", domain.ErrInvalidDocument)
	}
	if content == "" {
		return Document{}, fmt.Errorf("%w: document %q has empty content", domain.ErrInvalidDocument, id)
	}
	if metadata == nil {
		return Document{}, fmt.Errorf("%w: document %q has no metadata", domain.ErrInvalidDocument, id)
	}
	return Document{id: id, content: content, docType: metadata.Type(), metadata: metadata}, nil
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Content returns the indexed text.
func (d *Document) Content() string { return d.content }

// Type returns the document type tag.
func (d *Document) Type() Type { return d.docType }

// Metadata returns the type-specific payload.
func (d *Document) Metadata() Metadata { return d.metadata }

// FAQ returns the FAQ payload if the document is an FAQ entry.
func (d *Document) FAQ() (FAQMetadata, bool) {
	m, ok := d.metadata.(FAQMetadata)
	return m, ok
}

// Fund returns the fund payload if the document is a fund record.
func (d *Document) Fund() (FundMetadata, bool) {
	m, ok := d.metadata.(FundMetadata)
	return m, ok
}
