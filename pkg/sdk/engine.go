package finrag

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domcorpus "github.com/kailas-cloud/finrag/internal/domain/corpus"
	domdoc "github.com/kailas-cloud/finrag/internal/domain/document"
	"github.com/kailas-cloud/finrag/internal/domain/retrieval/mode"
	"github.com/kailas-cloud/finrag/internal/domain/retrieval/result"
	"github.com/kailas-cloud/finrag/internal/usecase/answer"
	embeddinguc "github.com/kailas-cloud/finrag/internal/usecase/embedding"
	retrievaluc "github.com/kailas-cloud/finrag/internal/usecase/retrieval"
)

// retriever is the internal engine surface, replaceable in tests.
type retriever interface {
	Retrieve(ctx context.Context, query string, m mode.Mode, k int) ([]result.Result, error)
	Stats() domcorpus.Stats
}

// Engine is the finrag SDK entry point. It is safe for concurrent use.
type Engine struct {
	svc retriever
	obs *observer
}

// New embeds docs and builds both indices. Document order is kept and IDs must be unique.
// The provided context bounds the embedding calls made while building.
func New(ctx context.Context, docs []Document, opts ...Option) (eng *Engine, err error) {
	cfg := &engineConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	sp := startSpan("build", "")
	defer func() { obs.observe(sp, err) }()

	domDocs := make([]domdoc.Document, len(docs))
	for i := range docs {
		domDocs[i] = docs[i].doc
	}
	c, err := domcorpus.New(domDocs)
	if err != nil {
		return nil, fmt.Errorf("finrag: %w", err)
	}

	svc, err := retrievaluc.Build(ctx, c, buildEmbedder(cfg), retrievaluc.Options{
		TopK:                cfg.topK,
		SemanticWeight:      cfg.semanticWeight,
		LexicalWeight:       cfg.lexicalWeight,
		CandidateMultiplier: cfg.candidateMultiplier,
		MaxFeatures:         cfg.maxFeatures,
		Name:                cfg.name,
	}, zap.NewNop())
	if err != nil {
		return nil, fmt.Errorf("finrag: %w", err)
	}

	return &Engine{svc: svc, obs: obs}, nil
}

func buildEmbedder(cfg *engineConfig) retrievaluc.Embedder {
	if cfg.embedder != nil {
		return adaptEmbedder(cfg.embedder)
	}
	return embeddinguc.NewHashingEmbedder(cfg.hashDim)
}

// Retrieve returns up to topK documents for query, best first. topK <= 0 uses the
// configured default. An unknown mode fails with ErrInvalidMode.
func (e *Engine) Retrieve(ctx context.Context, query string, m Mode, topK int) (out []Result, err error) {
	sp := startSpan("retrieve", m)
	defer func() { e.obs.observe(sp, err) }()

	res, err := e.retrieve(ctx, query, m, topK)
	if err != nil {
		return nil, err
	}
	sp.results = len(res)
	out = make([]Result, len(res))
	for i := range res {
		out[i] = resultFromDomain(&res[i])
	}
	return out, nil
}

// Answer retrieves like Retrieve and composes a plain-text answer from the results:
// fund figures when the query asks about performance, FAQ answers otherwise.
func (e *Engine) Answer(ctx context.Context, query string, m Mode, topK int) (text string, out []Result, err error) {
	sp := startSpan("answer", m)
	defer func() { e.obs.observe(sp, err) }()

	res, err := e.retrieve(ctx, query, m, topK)
	if err != nil {
		return "", nil, err
	}
	sp.results = len(res)
	out = make([]Result, len(res))
	for i := range res {
		out[i] = resultFromDomain(&res[i])
	}
	return answer.Compose(query, res), out, nil
}

// Stats reports the corpus composition and the supported modes.
func (e *Engine) Stats() Stats {
	st := e.svc.Stats()
	modes := make([]Mode, len(st.Modes))
	for i, m := range st.Modes {
		modes[i] = Mode(m)
	}
	return Stats{Total: st.Total, FAQCount: st.FAQCount, FundCount: st.FundCount, Modes: modes}
}

func (e *Engine) retrieve(ctx context.Context, query string, m Mode, topK int) ([]result.Result, error) {
	res, err := e.svc.Retrieve(ctx, query, mode.Mode(m), topK)
	if err != nil {
		return nil, fmt.Errorf("finrag: retrieve: %w", err)
	}
	return res, nil
}
