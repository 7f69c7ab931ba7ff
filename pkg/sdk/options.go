package finrag

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Engine.
type Option interface {
	apply(*engineConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*engineConfig)

func (f optionFunc) apply(c *engineConfig) { f(c) }

type engineConfig struct {
	embedder Embedder
	hashDim  int

	topK                int
	semanticWeight      float64
	lexicalWeight       float64
	candidateMultiplier int
	maxFeatures         int
	name                string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithEmbedder sets the text embedding provider used for documents and queries.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *engineConfig) {
		c.embedder = e
	})
}

// WithHashingEmbedder uses the local feature-hashing embedder with dim buckets.
// dim <= 0 means 384. Ignored when WithEmbedder is also given.
func WithHashingEmbedder(dim int) Option {
	return optionFunc(func(c *engineConfig) {
		c.hashDim = dim
	})
}

// WithTopK sets the result count used when Retrieve gets topK <= 0. Default: 5.
func WithTopK(k int) Option {
	return optionFunc(func(c *engineConfig) {
		c.topK = k
	})
}

// WithWeights sets the hybrid fusion weights. Default: 0.7 semantic, 0.3 lexical.
func WithWeights(semantic, lexical float64) Option {
	return optionFunc(func(c *engineConfig) {
		c.semanticWeight = semantic
		c.lexicalWeight = lexical
	})
}

// WithCandidateMultiplier sets how many candidates per requested result each
// side of a hybrid query contributes. Default: 2.
func WithCandidateMultiplier(m int) Option {
	return optionFunc(func(c *engineConfig) {
		c.candidateMultiplier = m
	})
}

// WithMaxFeatures caps the lexical vocabulary size. Default: 10000.
func WithMaxFeatures(n int) Option {
	return optionFunc(func(c *engineConfig) {
		c.maxFeatures = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *engineConfig) {
		c.logger = l
	})
}

// WithName labels this engine's index gauges (indexed documents, vocabulary size,
// build duration). Engines sharing a registry need distinct names, otherwise the last
// build overwrites the gauges. Defaults to "default".
func WithName(name string) Option {
	return optionFunc(func(c *engineConfig) {
		c.name = name
	})
}

// WithMetrics registers SDK metrics (operation counts and durations) together with
// the engine's embedding and retrieval metrics on the given registerer.
// Index gauges are labelled by WithName. Pass nil to disable (default).
func WithMetrics(reg prometheus.Registerer) Option {
	return optionFunc(func(c *engineConfig) {
		c.metricsReg = reg
	})
}
