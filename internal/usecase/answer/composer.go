// Package answer turns ranked documents into a short templated reply.
package answer

import (
	"strings"

	"github.com/kailas-cloud/finrag/internal/domain/document"
	"github.com/kailas-cloud/finrag/internal/domain/retrieval/result"
)

const (
	maxPerSection = 3

	fundHeader  = "Based on the available fund performance data:"
	noFundData  = "No specific fund performance data found for your query."
	faqHeader   = "\nRelated information:"
	noFAQData   = "\nNo specific FAQ information found for your query."
	noAnswerMsg = "I couldn't find specific information to answer your question. Please try rephrasing your query."
)

// fundKeywords mark a query as asking about fund performance.
var fundKeywords = []string{"fund", "return", "performance", "sharpe", "volatility", "cagr"}

// Compose builds the answer text for query from results, preserving their ranking order.
func Compose(query string, results []result.Result) string {
	var funds, faqs []document.Document
	for i := range results {
		doc := results[i].Document()
		switch doc.Type() {
		case document.TypeFund:
			funds = append(funds, doc)
		case document.TypeFAQ:
			faqs = append(faqs, doc)
		}
	}

	var parts []string
	if mentionsFunds(query) {
		if len(funds) > 0 {
			parts = append(parts, fundHeader)
			for i := range funds[:min(len(funds), maxPerSection)] {
				parts = append(parts, "- "+funds[i].Content())
			}
		} else {
			parts = append(parts, noFundData)
		}
	}

	if len(faqs) > 0 || len(funds) == 0 {
		if len(faqs) > 0 {
			parts = append(parts, faqHeader)
			for i := range faqs[:min(len(faqs), maxPerSection)] {
				parts = append(parts, "- "+faqAnswer(&faqs[i]))
			}
		} else {
			parts = append(parts, noFAQData)
		}
	}

	if len(parts) == 0 {
		return noAnswerMsg
	}
	return strings.Join(parts, "\n")
}

func mentionsFunds(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range fundKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// faqAnswer prefers the stored answer and falls back to the full content.
func faqAnswer(doc *document.Document) string {
	if meta, ok := doc.FAQ(); ok && meta.Answer != "" {
		return meta.Answer
	}
	return doc.Content()
}
