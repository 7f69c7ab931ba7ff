package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/finrag/internal/domain"
	"github.com/kailas-cloud/finrag/internal/domain/document"
	"github.com/kailas-cloud/finrag/internal/domain/retrieval/mode"
)

func mustDoc(t *testing.T, id, content string, meta document.Metadata) document.Document {
	t.Helper()
	d, err := document.New(id, content, meta)
	require.NoError(t, err)
	return d
}

func TestNew_KeepsOrder(t *testing.T) {
	docs := []document.Document{
		mustDoc(t, "faq_0", "a", document.FAQMetadata{}),
		mustDoc(t, "fund_1", "b", document.FundMetadata{FundID: "1"}),
		mustDoc(t, "faq_1", "c", document.FAQMetadata{}),
	}
	c, err := New(docs)
	require.NoError(t, err)

	require.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"a", "b", "c"}, c.Texts())
	d := c.At(1)
	assert.Equal(t, "fund_1", d.ID())
}

func TestNew_CopiesInput(t *testing.T) {
	docs := []document.Document{mustDoc(t, "faq_0", "a", document.FAQMetadata{})}
	c, err := New(docs)
	require.NoError(t, err)

	docs[0] = mustDoc(t, "faq_9", "z", document.FAQMetadata{})
	d := c.At(0)
	assert.Equal(t, "faq_0", d.ID())
}

func TestNew_DuplicateID(t *testing.T) {
	docs := []document.Document{
		mustDoc(t, "faq_0", "a", document.FAQMetadata{}),
		mustDoc(t, "faq_0", "b", document.FAQMetadata{}),
	}
	_, err := New(docs)
	require.ErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestNew_RejectsIncompleteDocument(t *testing.T) {
	valid := mustDoc(t, "faq_0", "a", document.FAQMetadata{})

	_, err := New([]document.Document{valid, {}})
	require.ErrorIs(t, err, domain.ErrInvalidDocument)
	assert.Contains(t, err.Error(), "position 1")
}

func TestStats(t *testing.T) {
	c, err := New([]document.Document{
		mustDoc(t, "faq_0", "a", document.FAQMetadata{}),
		mustDoc(t, "faq_1", "b", document.FAQMetadata{}),
		mustDoc(t, "fund_1", "c", document.FundMetadata{FundID: "1"}),
	})
	require.NoError(t, err)

	s := c.Stats()
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.FAQCount)
	assert.Equal(t, 1, s.FundCount)
	assert.Equal(t, mode.All(), s.Modes)
}

func TestEmptyCorpus(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Stats().Total)
}
