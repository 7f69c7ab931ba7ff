package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/finrag/internal/domain"
)

func TestNew_FAQ(t *testing.T) {
	doc, err := New("faq_0", "Question: What is CAGR?\nAnswer: Compound Annual Growth Rate",
		FAQMetadata{Question: "What is CAGR?", Answer: "Compound Annual Growth Rate"})
	require.NoError(t, err)

	assert.Equal(t, "faq_0", doc.ID())
	assert.Equal(t, TypeFAQ, doc.Type())

	faq, ok := doc.FAQ()
	require.True(t, ok)
	assert.Equal(t, "Compound Annual Growth Rate", faq.Answer)

	_, ok = doc.Fund()
	assert.False(t, ok)
}

func TestNew_Fund(t *testing.T) {
	meta := FundMetadata{FundID: "F1", Name: "FundX", Category: "Equity", CAGR: 12.5, Volatility: 8, Sharpe: 1.1}
	doc, err := New("fund_F1", "FundX (Equity) has 3-year CAGR: 12.5%", meta)
	require.NoError(t, err)

	assert.Equal(t, TypeFund, doc.Type())
	fund, ok := doc.Fund()
	require.True(t, ok)
	assert.InDelta(t, 1.1, fund.Sharpe, 1e-9)
	assert.Equal(t, meta, doc.Metadata())
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		content string
		meta    Metadata
	}{
		{"empty id", "", "content", FAQMetadata{}},
		{"empty content", "faq_0", "", FAQMetadata{}},
		{"nil metadata", "faq_0", "content", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.id, tc.content, tc.meta)
			require.ErrorIs(t, err, domain.ErrInvalidDocument)
		})
	}
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("fund")
	require.NoError(t, err)
	assert.Equal(t, TypeFund, typ)

	_, err = ParseType("news")
	require.ErrorIs(t, err, domain.ErrInvalidDocument)
}
