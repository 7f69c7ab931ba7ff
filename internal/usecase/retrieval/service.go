package retrieval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/finrag/internal/domain"
	"github.com/kailas-cloud/finrag/internal/domain/corpus"
	"github.com/kailas-cloud/finrag/internal/domain/retrieval/mode"
	"github.com/kailas-cloud/finrag/internal/domain/retrieval/result"
	"github.com/kailas-cloud/finrag/internal/index"
	"github.com/kailas-cloud/finrag/internal/logger"
	"github.com/kailas-cloud/finrag/internal/metrics"
)

// Defaults applied by Options.withDefaults.
const (
	DefaultTopK                = 5
	DefaultSemanticWeight      = 0.7
	DefaultLexicalWeight       = 0.3
	DefaultCandidateMultiplier = 2
	DefaultBatchSize           = 256
	DefaultEngineName          = "default"
)

// Options tunes retrieval. Zero values fall back to the defaults above.
type Options struct {
	TopK                int
	SemanticWeight      float64
	LexicalWeight       float64
	CandidateMultiplier int
	MaxFeatures         int
	BatchSize           int
	// Name labels the index gauges so several engines in one process stay apart.
	Name string
}

func (o Options) withDefaults() Options {
	if o.TopK <= 0 {
		o.TopK = DefaultTopK
	}
	if o.SemanticWeight == 0 && o.LexicalWeight == 0 {
		o.SemanticWeight = DefaultSemanticWeight
		o.LexicalWeight = DefaultLexicalWeight
	}
	if o.CandidateMultiplier <= 0 {
		o.CandidateMultiplier = DefaultCandidateMultiplier
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Name == "" {
		o.Name = DefaultEngineName
	}
	return o
}

// Service answers retrieval queries over a corpus in semantic, lexical or hybrid mode.
// It is immutable after construction and safe for concurrent use.
type Service struct {
	corpus  corpus.Corpus
	dense   DenseSearcher
	lexical LexicalSearcher
	embed   Embedder
	opts    Options
}

// New wires prebuilt indices into a retrieval service.
// Both indices must cover exactly the corpus positions.
func New(c corpus.Corpus, d DenseSearcher, l LexicalSearcher, e Embedder, opts Options) (*Service, error) {
	if d.Len() != c.Len() || l.Len() != c.Len() {
		return nil, fmt.Errorf("%w: index sizes dense=%d lexical=%d do not match corpus size %d",
			domain.ErrBuild, d.Len(), l.Len(), c.Len())
	}
	return &Service{corpus: c, dense: d, lexical: l, embed: e, opts: opts.withDefaults()}, nil
}

// Retrieve returns up to k documents ranked for query. k <= 0 uses the configured TopK.
func (s *Service) Retrieve(ctx context.Context, query string, m mode.Mode, k int) ([]result.Result, error) {
	if !m.IsValid() {
		metrics.RetrievalRequestsTotal.WithLabelValues("invalid", "error").Inc()
		return nil, &domain.InvalidModeError{Mode: string(m)}
	}
	if k <= 0 {
		k = s.opts.TopK
	}
	k = min(k, s.corpus.Len())

	start := time.Now()
	var (
		hits []index.Hit
		err  error
	)
	switch m {
	case mode.Semantic:
		hits, err = s.searchSemantic(ctx, query, k)
	case mode.Lexical:
		hits = s.lexical.Search(query, k)
	case mode.Hybrid:
		hits, err = s.searchHybrid(ctx, query, k)
	}

	metrics.RetrievalDuration.WithLabelValues(string(m)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RetrievalRequestsTotal.WithLabelValues(string(m), "error").Inc()
		logger.FromContext(ctx).Warn("retrieval failed", zap.String("mode", string(m)), zap.Error(err))
		return nil, err
	}
	metrics.RetrievalRequestsTotal.WithLabelValues(string(m), "ok").Inc()
	metrics.RetrievalResults.WithLabelValues(string(m)).Observe(float64(len(hits)))

	results := make([]result.Result, len(hits))
	for i, h := range hits {
		results[i] = result.New(s.corpus.At(h.Position), h.Score)
	}

	logger.FromContext(ctx).Debug("retrieval done",
		zap.String("mode", string(m)),
		zap.Int("k", k),
		zap.Int("results", len(results)),
		zap.Duration("took", time.Since(start)),
	)
	return results, nil
}

// Stats reports corpus composition and the supported modes.
func (s *Service) Stats() corpus.Stats { return s.corpus.Stats() }

// Corpus returns the indexed corpus.
func (s *Service) Corpus() corpus.Corpus { return s.corpus }

func (s *Service) searchSemantic(ctx context.Context, query string, k int) ([]index.Hit, error) {
	vec, err := s.embedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	hits, err := s.dense.Search(vec, k)
	if err != nil {
		return nil, fmt.Errorf("dense search: %w", err)
	}
	return hits, nil
}

// searchHybrid runs dense and lexical search concurrently over an enlarged candidate pool,
// then fuses them by weighted sum.
func (s *Service) searchHybrid(ctx context.Context, query string, k int) ([]index.Hit, error) {
	candidates := candidatePool(k, s.opts.CandidateMultiplier, s.corpus.Len())

	var semantic, lexical []index.Hit
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hits, err := s.searchSemantic(gctx, query, candidates)
		if err != nil {
			return err
		}
		semantic = hits
		return nil
	})
	g.Go(func() error {
		lexical = s.lexical.Search(query, candidates)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("hybrid search: %w", err)
	}

	return fuseWeighted(semantic, lexical, s.opts.SemanticWeight, s.opts.LexicalWeight, k), nil
}

// candidatePool returns multiplier*k capped at n, without overflowing.
func candidatePool(k, multiplier, n int) int {
	if k >= n || multiplier > n/k {
		return n
	}
	return k * multiplier
}

// embedQuery embeds query and checks the vector against the dense index dimension.
func (s *Service) embedQuery(ctx context.Context, query string) ([]float32, error) {
	res, err := s.embed.Embed(ctx, query)
	if err != nil {
		if !errors.Is(err, domain.ErrEmbeddingProviderError) {
			err = fmt.Errorf("%w: %w", domain.ErrEmbeddingProviderError, err)
		}
		return nil, fmt.Errorf("vectorize query: %w", err)
	}
	domain.UsageFromContext(ctx).AddTokens(res.TotalTokens)

	if len(res.Embedding) != s.dense.Dim() {
		return nil, fmt.Errorf("%w: %w: query vector has dimension %d, index has %d",
			domain.ErrEmbeddingProviderError, domain.ErrVectorDimMismatch, len(res.Embedding), s.dense.Dim())
	}
	return res.Embedding, nil
}
