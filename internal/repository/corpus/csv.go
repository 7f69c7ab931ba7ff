package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kailas-cloud/finrag/internal/domain/document"
)

// FAQ CSV columns.
const (
	colQuestion = "question"
	colAnswer   = "answer"
)

// Fund CSV columns. Metric columns are optional; their clauses are omitted when absent.
const (
	colFundID     = "fund_id"
	colFundName   = "fund_name"
	colCategory   = "category"
	colCAGR       = "cagr_3yr (%)"
	colVolatility = "volatility (%)"
	colSharpe     = "sharpe_ratio"
)

// Skip records a data row that was left out of the corpus.
type Skip struct {
	Row    int // zero-based data row, header excluded
	Reason string
}

// ReadFAQs parses an FAQ CSV. Data row i becomes document faq_<i>.
func ReadFAQs(r io.Reader) ([]document.Document, []Skip, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, nil, err
	}
	if err := requireColumns(header, colQuestion, colAnswer); err != nil {
		return nil, nil, err
	}
	qi, ai := header[colQuestion], header[colAnswer]

	var (
		docs  []document.Document
		skips []Skip
	)
	for i, row := range rows {
		q, a := strings.TrimSpace(field(row, qi)), strings.TrimSpace(field(row, ai))
		if q == "" || a == "" {
			skips = append(skips, Skip{Row: i, Reason: "empty question or answer"})
			continue
		}
		doc, err := document.New(
			fmt.Sprintf("faq_%d", i),
			fmt.Sprintf("Question: %s\nAnswer: %s", q, a),
			document.FAQMetadata{Question: q, Answer: a},
		)
		if err != nil {
			skips = append(skips, Skip{Row: i, Reason: err.Error()})
			continue
		}
		docs = append(docs, doc)
	}
	return docs, skips, nil
}

// ReadFunds parses a fund performance CSV. Each row becomes document fund_<fund_id> with content
// "<name> (<category>) has 3-year CAGR: <x>%, volatility: <y>%, Sharpe ratio: <z>".
// Metric values appear in the content exactly as written in the file.
func ReadFunds(r io.Reader) ([]document.Document, []Skip, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, nil, err
	}
	if err := requireColumns(header, colFundID, colFundName, colCategory); err != nil {
		return nil, nil, err
	}

	var (
		docs  []document.Document
		skips []Skip
	)
	for i, row := range rows {
		doc, err := fundDocument(header, row)
		if err != nil {
			skips = append(skips, Skip{Row: i, Reason: err.Error()})
			continue
		}
		docs = append(docs, doc)
	}
	return docs, skips, nil
}

func fundDocument(header map[string]int, row []string) (document.Document, error) {
	meta := document.FundMetadata{
		FundID:   strings.TrimSpace(field(row, header[colFundID])),
		Name:     strings.TrimSpace(field(row, header[colFundName])),
		Category: strings.TrimSpace(field(row, header[colCategory])),
	}
	if meta.FundID == "" || meta.Name == "" || meta.Category == "" {
		return document.Document{}, errors.New("empty fund_id, fund_name or category")
	}

	metrics := make([]string, 0, 3)
	for _, m := range []struct {
		col    string
		format string
		dst    *float64
	}{
		{colCAGR, "3-year CAGR: %s%%", &meta.CAGR},
		{colVolatility, "volatility: %s%%", &meta.Volatility},
		{colSharpe, "Sharpe ratio: %s", &meta.Sharpe},
	} {
		idx, ok := header[m.col]
		if !ok {
			continue
		}
		raw := strings.TrimSpace(field(row, idx))
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return document.Document{}, fmt.Errorf("column %q: invalid number %q", m.col, raw)
		}
		*m.dst = v
		metrics = append(metrics, fmt.Sprintf(m.format, raw))
	}

	content := fmt.Sprintf("%s (%s) has %s", meta.Name, meta.Category, strings.Join(metrics, ", "))
	return document.New("fund_"+meta.FundID, content, meta)
}

// readAll reads the header and all data rows. Header names are trimmed and matched exactly.
func readAll(r io.Reader) (map[string]int, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, errors.New("missing header row")
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := header[name]; !dup {
			header[name] = i
		}
	}
	return header, records[1:], nil
}

func requireColumns(header map[string]int, cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := header[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// field returns row[i] or "" when the row is short.
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
