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
	"github.com/kailas-cloud/finrag/internal/domain/document"
	"github.com/kailas-cloud/finrag/internal/index/dense"
	"github.com/kailas-cloud/finrag/internal/index/lexical"
	"github.com/kailas-cloud/finrag/internal/metrics"
)

// Build embeds every document, builds the dense and lexical indices over the same
// corpus order and returns a ready service. Any failure here is fatal to startup.
func Build(ctx context.Context, c corpus.Corpus, e Embedder, opts Options, log *zap.Logger) (*Service, error) {
	return BuildWithDocumentEmbedder(ctx, c, e, e, opts, log)
}

// BuildWithDocumentEmbedder is Build with separate embedders for the corpus and for queries,
// for models that expect different instruction prefixes on each side.
func BuildWithDocumentEmbedder(
	ctx context.Context, c corpus.Corpus, docs, queries Embedder, opts Options, log *zap.Logger,
) (*Service, error) {
	opts = opts.withDefaults()
	if c.Len() == 0 {
		return nil, domain.NewBuildError("corpus", errors.New("no documents"))
	}
	texts := c.Texts()

	var (
		denseIdx   *dense.Index
		lexicalIdx *lexical.Index
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		vectors, err := embedCorpus(gctx, docs, texts, opts.BatchSize, log)
		if err != nil {
			return err
		}
		denseIdx, err = dense.Build(0, vectors)
		if err != nil {
			return fmt.Errorf("build dense index: %w", err)
		}
		metrics.IndexBuildDuration.WithLabelValues(opts.Name, "dense").Set(time.Since(start).Seconds())
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		var err error
		lexicalIdx, err = lexical.Build(texts, lexical.Options{MaxFeatures: opts.MaxFeatures})
		if err != nil {
			return fmt.Errorf("build lexical index: %w", err)
		}
		metrics.IndexBuildDuration.WithLabelValues(opts.Name, "lexical").Set(time.Since(start).Seconds())
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := c.Stats()
	metrics.IndexedDocuments.WithLabelValues(opts.Name, string(document.TypeFAQ)).Set(float64(stats.FAQCount))
	metrics.IndexedDocuments.WithLabelValues(opts.Name, string(document.TypeFund)).Set(float64(stats.FundCount))
	metrics.LexicalVocabularySize.WithLabelValues(opts.Name).Set(float64(lexicalIdx.VocabularySize()))

	log.Info("indices built",
		zap.String("engine", opts.Name),
		zap.Int("documents", c.Len()),
		zap.Int("faq", stats.FAQCount),
		zap.Int("fund", stats.FundCount),
		zap.Int("dim", denseIdx.Dim()),
		zap.Int("vocabulary", lexicalIdx.VocabularySize()),
	)

	return New(c, denseIdx, lexicalIdx, queries, opts)
}

// embedCorpus embeds texts in chunks of batchSize and validates the provider output:
// one vector per text and a single consistent dimension.
func embedCorpus(ctx context.Context, e Embedder, texts []string, batchSize int, log *zap.Logger) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	dim := 0
	for start := 0; start < len(texts); start += batchSize {
		end := min(start+batchSize, len(texts))
		chunk := texts[start:end]

		res, err := domain.EmbedAll(ctx, e, chunk)
		if err != nil {
			if !errors.Is(err, domain.ErrEmbeddingProviderError) {
				err = fmt.Errorf("%w: %w", domain.ErrEmbeddingProviderError, err)
			}
			return nil, fmt.Errorf("embed documents [%d:%d]: %w", start, end, err)
		}
		if len(res.Embeddings) != len(chunk) {
			return nil, fmt.Errorf("%w: provider returned %d vectors for %d texts",
				domain.ErrEmbeddingProviderError, len(res.Embeddings), len(chunk))
		}
		for i, v := range res.Embeddings {
			if dim == 0 {
				dim = len(v)
			}
			if len(v) == 0 || len(v) != dim {
				return nil, fmt.Errorf("%w: %w: vector %d has dimension %d, want %d",
					domain.ErrEmbeddingProviderError, domain.ErrVectorDimMismatch, start+i, len(v), dim)
			}
		}
		vectors = append(vectors, res.Embeddings...)

		log.Debug("embedded chunk",
			zap.Int("from", start), zap.Int("to", end), zap.Int("tokens", res.TotalTokens))
	}
	return vectors, nil
}
