package chi

import (
	domdoc "github.com/kailas-cloud/finrag/internal/domain/document"
	"github.com/kailas-cloud/finrag/internal/domain/retrieval/result"
)

// ErrorCode is a machine-readable error identifier in ErrorResponse.
type ErrorCode string

// Error codes returned by the API.
const (
	CodeBadRequest           ErrorCode = "bad_request"
	CodeValidationFailed     ErrorCode = "validation_failed"
	CodeUnauthorized         ErrorCode = "unauthorized"
	CodeInvalidRetrievalMode ErrorCode = "invalid_retrieval_mode"
	CodeEmbeddingProviderErr ErrorCode = "embedding_provider_error"
	CodeTimeout              ErrorCode = "timeout"
	CodeInternalError        ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// QueryRequest is the body of POST /query.
// An omitted retrieval_mode means semantic; an omitted or zero top_k means the server default.
type QueryRequest struct {
	Query         string `json:"query" validate:"required"`
	RetrievalMode string `json:"retrieval_mode"`
	TopK          *int   `json:"top_k" validate:"omitempty,gte=0"`
}

// SourceResponse is one retrieved document.
type SourceResponse struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Type     string         `json:"type"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata"`
}

// QueryResponse is the body of a successful POST /query.
type QueryResponse struct {
	Answer           string           `json:"answer"`
	RetrievedSources []SourceResponse `json:"retrieved_sources"`
	RetrievalMode    string           `json:"retrieval_mode"`
}

// StatsResponse is the body of GET /stats.
type StatsResponse struct {
	TotalDocuments int      `json:"total_documents"`
	FAQCount       int      `json:"faq_count"`
	FundCount      int      `json:"fund_count"`
	RetrievalModes []string `json:"retrieval_modes"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// RootResponse is the body of GET /.
type RootResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func sourceFromResult(r *result.Result) SourceResponse {
	doc := r.Document()
	return SourceResponse{
		ID:       doc.ID(),
		Content:  doc.Content(),
		Type:     string(doc.Type()),
		Score:    r.Score(),
		Metadata: metadataToMap(&doc),
	}
}

// metadataToMap flattens the typed payload using the CSV column names.
func metadataToMap(doc *domdoc.Document) map[string]any {
	if faq, ok := doc.FAQ(); ok {
		return map[string]any{
			"question": faq.Question,
			"answer":   faq.Answer,
		}
	}
	if fund, ok := doc.Fund(); ok {
		return map[string]any{
			"fund_id":      fund.FundID,
			"fund_name":    fund.Name,
			"category":     fund.Category,
			"cagr_3yr":     fund.CAGR,
			"volatility":   fund.Volatility,
			"sharpe_ratio": fund.Sharpe,
		}
	}
	return map[string]any{}
}
