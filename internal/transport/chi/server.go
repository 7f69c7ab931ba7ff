package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/finrag/internal/domain"
	"github.com/kailas-cloud/finrag/internal/domain/corpus"
	"github.com/kailas-cloud/finrag/internal/domain/retrieval/mode"
	"github.com/kailas-cloud/finrag/internal/domain/retrieval/result"
	logpkg "github.com/kailas-cloud/finrag/internal/logger"
	"github.com/kailas-cloud/finrag/internal/usecase/answer"
	healthuc "github.com/kailas-cloud/finrag/internal/usecase/health"
)

// Retriever is the retrieval engine behind POST /query and GET /stats.
type Retriever interface {
	Retrieve(ctx context.Context, query string, m mode.Mode, k int) ([]result.Result, error)
	Stats() corpus.Stats
}

// HealthReporter aggregates component health for GET /health.
type HealthReporter interface {
	Check(ctx context.Context) healthuc.Report
}

// Options tunes request handling.
type Options struct {
	// MaxTopK rejects larger top_k values. 0 disables the cap.
	MaxTopK int
	// QueryTimeout bounds a single retrieval. 0 disables the deadline.
	QueryTimeout time.Duration
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the retrieval HTTP API.
type Server struct {
	retriever     Retriever
	health        HealthReporter
	opts          Options
	validate      *validator.Validate
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(retriever Retriever, health HealthReporter, opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		retriever: retriever,
		health:    health,
		opts:      opts,
		validate:  validator.New(),
		logger:    logger,
	}
	// Order matters: a provider call cut by the deadline matches both the deadline and the provider sentinel.
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidMode, http.StatusBadRequest, CodeInvalidRetrievalMode),
		sentinelHandler(context.DeadlineExceeded, http.StatusGatewayTimeout, CodeTimeout),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, CodeEmbeddingProviderErr),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Root)
	r.Post("/query", s.Query)
	r.Get("/stats", s.Stats)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{Message: "Financial RAG API", Status: "healthy"})
}

// Query handles POST /query.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	k := 0
	if req.TopK != nil {
		k = *req.TopK
	}
	if s.opts.MaxTopK > 0 && k > s.opts.MaxTopK {
		writeError(w, http.StatusBadRequest, CodeValidationFailed,
			fmt.Sprintf("top_k must not exceed %d", s.opts.MaxTopK))
		return
	}

	m := mode.Mode(req.RetrievalMode)
	if req.RetrievalMode == "" {
		m = mode.Semantic
	}

	ctx := r.Context()
	if s.opts.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.QueryTimeout)
		defer cancel()
	}
	ctx = logpkg.WithFields(ctx, zap.String("retrieval_mode", string(m)), zap.Int("top_k", k))
	ctx, usage := domain.NewContextWithUsage(ctx)

	results, err := s.retriever.Retrieve(ctx, req.Query, m, k)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	sources := make([]SourceResponse, len(results))
	for i := range results {
		sources[i] = sourceFromResult(&results[i])
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, QueryResponse{
		Answer:           answer.Compose(req.Query, results),
		RetrievedSources: sources,
		RetrievalMode:    string(m),
	})
}

// Stats handles GET /stats.
func (s *Server) Stats(w http.ResponseWriter, _ *http.Request) {
	st := s.retriever.Stats()
	modes := make([]string, len(st.Modes))
	for i, m := range st.Modes {
		modes[i] = string(m)
	}
	writeJSON(w, http.StatusOK, StatsResponse{
		TotalDocuments: st.Total,
		FAQCount:       st.FAQCount,
		FundCount:      st.FundCount,
		RetrievalModes: modes,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage != nil && usage.Used {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// writeValidationError reports every failed field by its JSON name.
func writeValidationError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "validation failed")
		return
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := jsonFieldNames[fe.Field()]
		if name == "" {
			name = fe.Field()
		}
		switch fe.Tag() {
		case "required":
			fields[name] = name + " is required"
		case "gte":
			fields[name] = name + " must be greater than or equal to " + fe.Param()
		default:
			fields[name] = fmt.Sprintf("%s failed on %q", name, fe.Tag())
		}
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    CodeValidationFailed,
		Message: "validation failed",
		Fields:  fields,
	})
}

var jsonFieldNames = map[string]string{
	"Query":         "query",
	"RetrievalMode": "retrieval_mode",
	"TopK":          "top_k",
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// The client sees the sentinel text only, never the wrapped chain.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
