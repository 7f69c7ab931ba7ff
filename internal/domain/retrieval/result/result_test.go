package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/finrag/internal/domain/document"
)

func TestResult_Accessors(t *testing.T) {
	doc, err := document.New("faq_1", "Question: q\nAnswer: a", document.FAQMetadata{Question: "q", Answer: "a"})
	require.NoError(t, err)

	r := New(doc, 0.42)
	assert.Equal(t, "faq_1", r.ID())
	assert.InDelta(t, 0.42, r.Score(), 1e-12)

	got := r.Document()
	assert.Equal(t, document.TypeFAQ, got.Type())
}
