// Package corpus loads the FAQ and fund CSV sources into a domain corpus.
package corpus

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/kailas-cloud/finrag/internal/domain"
	domcorpus "github.com/kailas-cloud/finrag/internal/domain/corpus"
	"github.com/kailas-cloud/finrag/internal/domain/document"
)

// Source names used in LoadError and logs.
const (
	SourceFAQ  = "faq"
	SourceFund = "fund"
)

// Policy decides what a source failure does to the whole load.
type Policy string

const (
	// PolicyFail aborts the load on the first source failure.
	PolicyFail Policy = "fail"
	// PolicyWarn logs the failure and continues with that source empty.
	PolicyWarn Policy = "warn"
)

// IsValid reports whether p is a known policy.
func (p Policy) IsValid() bool { return p == PolicyFail || p == PolicyWarn }

// Config points the loader at its sources.
type Config struct {
	FAQPath  string
	FundPath string
	OnError  Policy
}

// Loader reads both CSV sources from disk.
type Loader struct {
	cfg    Config
	logger *zap.Logger
}

// NewLoader creates a loader. An unset policy means PolicyFail.
func NewLoader(cfg Config, logger *zap.Logger) *Loader {
	if cfg.OnError == "" {
		cfg.OnError = PolicyFail
	}
	return &Loader{cfg: cfg, logger: logger}
}

// Load reads FAQs then funds and returns them as one corpus in that order.
func (l *Loader) Load() (domcorpus.Corpus, error) {
	faqs, err := l.loadSource(SourceFAQ, l.cfg.FAQPath, ReadFAQs)
	if err != nil {
		return domcorpus.Corpus{}, err
	}
	funds, err := l.loadSource(SourceFund, l.cfg.FundPath, ReadFunds)
	if err != nil {
		return domcorpus.Corpus{}, err
	}

	docs := make([]document.Document, 0, len(faqs)+len(funds))
	docs = append(docs, faqs...)
	docs = append(docs, funds...)

	c, err := domcorpus.New(docs)
	if err != nil {
		return domcorpus.Corpus{}, fmt.Errorf("assemble corpus: %w", err)
	}
	l.logger.Info("corpus loaded",
		zap.Int("faq", len(faqs)),
		zap.Int("fund", len(funds)),
		zap.Int("total", c.Len()),
	)
	return c, nil
}

type readFunc func(io.Reader) ([]document.Document, []Skip, error)

func (l *Loader) loadSource(source, path string, read readFunc) ([]document.Document, error) {
	docs, skips, err := readFile(path, read)
	if err != nil {
		loadErr := &domain.LoadError{Source: source, Path: path, Err: err}
		if l.cfg.OnError == PolicyWarn {
			l.logger.Warn("document source unavailable, continuing without it",
				zap.String("source", source),
				zap.String("path", path),
				zap.Error(err),
			)
			return nil, nil
		}
		return nil, loadErr
	}

	for _, s := range skips {
		l.logger.Warn("skipping row",
			zap.String("source", source),
			zap.Int("row", s.Row),
			zap.String("reason", s.Reason),
		)
	}
	l.logger.Debug("source loaded", zap.String("source", source), zap.Int("documents", len(docs)))
	return docs, nil
}

func readFile(path string, read readFunc) ([]document.Document, []Skip, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	return read(f)
}
