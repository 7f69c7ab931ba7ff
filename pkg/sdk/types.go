package finrag

import (
	"fmt"
	"strconv"

	domdoc "github.com/kailas-cloud/finrag/internal/domain/document"
	"github.com/kailas-cloud/finrag/internal/domain/retrieval/mode"
	"github.com/kailas-cloud/finrag/internal/domain/retrieval/result"
)

// Mode selects the retrieval strategy.
type Mode string

// Retrieval mode constants.
const (
	ModeSemantic Mode = Mode(mode.Semantic)
	ModeLexical  Mode = Mode(mode.Lexical)
	ModeHybrid   Mode = Mode(mode.Hybrid)
)

// DocumentType distinguishes FAQ entries from fund records.
type DocumentType string

// Document type constants.
const (
	TypeFAQ  DocumentType = DocumentType(domdoc.TypeFAQ)
	TypeFund DocumentType = DocumentType(domdoc.TypeFund)
)

// FundRecord holds the performance figures of a fund.
// CAGR and Volatility are percentages over three years.
type FundRecord struct {
	ID         string
	Name       string
	Category   string
	CAGR       float64
	Volatility float64
	Sharpe     float64
}

// Document is an indexable FAQ entry or fund record. Build one with FAQ, Fund or LoadCSV.
type Document struct {
	doc domdoc.Document
}

// FAQ creates an FAQ document. Its content is "Question: <q>\nAnswer: <a>".
func FAQ(id, question, answer string) (Document, error) {
	d, err := domdoc.New(id,
		fmt.Sprintf("Question: %s\nAnswer: %s", question, answer),
		domdoc.FAQMetadata{Question: question, Answer: answer},
	)
	if err != nil {
		return Document{}, fmt.Errorf("finrag: faq %q: %w", id, err)
	}
	return Document{doc: d}, nil
}

// Fund creates a fund document with id "fund_<ID>" and content
// "<name> (<category>) has 3-year CAGR: <x>%, volatility: <y>%, Sharpe ratio: <z>".
func Fund(f FundRecord) (Document, error) {
	content := fmt.Sprintf("%s (%s) has 3-year CAGR: %s%%, volatility: %s%%, Sharpe ratio: %s",
		f.Name, f.Category, formatFloat(f.CAGR), formatFloat(f.Volatility), formatFloat(f.Sharpe))
	d, err := domdoc.New("fund_"+f.ID, content, domdoc.FundMetadata{
		FundID:     f.ID,
		Name:       f.Name,
		Category:   f.Category,
		CAGR:       f.CAGR,
		Volatility: f.Volatility,
		Sharpe:     f.Sharpe,
	})
	if err != nil {
		return Document{}, fmt.Errorf("finrag: fund %q: %w", f.ID, err)
	}
	return Document{doc: d}, nil
}

// ID returns the document identifier.
func (d Document) ID() string { return d.doc.ID() }

// Content returns the indexed text.
func (d Document) Content() string { return d.doc.Content() }

// Type returns the document type.
func (d Document) Type() DocumentType { return DocumentType(d.doc.Type()) }

// Result is a single retrieved document.
// Question and Answer are set for FAQ results, Fund for fund results.
type Result struct {
	ID       string
	Type     DocumentType
	Content  string
	Score    float64
	Question string
	Answer   string
	Fund     *FundRecord
}

// Stats summarizes the indexed corpus.
type Stats struct {
	Total     int
	FAQCount  int
	FundCount int
	Modes     []Mode
}

func resultFromDomain(r *result.Result) Result {
	doc := r.Document()
	out := Result{
		ID:      doc.ID(),
		Type:    DocumentType(doc.Type()),
		Content: doc.Content(),
		Score:   r.Score(),
	}
	if faq, ok := doc.FAQ(); ok {
		out.Question, out.Answer = faq.Question, faq.Answer
	}
	if fund, ok := doc.Fund(); ok {
		out.Fund = &FundRecord{
			ID:         fund.FundID,
			Name:       fund.Name,
			Category:   fund.Category,
			CAGR:       fund.CAGR,
			Volatility: fund.Volatility,
			Sharpe:     fund.Sharpe,
		}
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
