package finrag

import (
	"fmt"
	"io"

	"github.com/kailas-cloud/finrag/internal/domain"
	domdoc "github.com/kailas-cloud/finrag/internal/domain/document"
	corpusrepo "github.com/kailas-cloud/finrag/internal/repository/corpus"
)

// LoadCSV parses an FAQ CSV (question, answer) and a fund CSV (fund_id, fund_name, category
// and optional "cagr_3yr (%)", "volatility (%)", sharpe_ratio) into documents, FAQs first.
// Either reader may be nil. Rows with missing or malformed values are skipped.
// An unreadable source or a missing required column fails with ErrLoad.
func LoadCSV(faqs, funds io.Reader) ([]Document, error) {
	var out []Document
	for _, src := range []struct {
		name string
		r    io.Reader
		read func(io.Reader) ([]domdoc.Document, []corpusrepo.Skip, error)
	}{
		{corpusrepo.SourceFAQ, faqs, corpusrepo.ReadFAQs},
		{corpusrepo.SourceFund, funds, corpusrepo.ReadFunds},
	} {
		if src.r == nil {
			continue
		}
		docs, _, err := src.read(src.r)
		if err != nil {
			return nil, fmt.Errorf("finrag: load %s csv: %w: %w", src.name, domain.ErrLoad, err)
		}
		for _, d := range docs {
			out = append(out, Document{doc: d})
		}
	}
	return out, nil
}
