package finrag

import "github.com/kailas-cloud/finrag/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrBuild                  = domain.ErrBuild
	ErrInvalidMode            = domain.ErrInvalidMode
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrVectorDimMismatch      = domain.ErrVectorDimMismatch
	ErrInvalidDocument        = domain.ErrInvalidDocument
	ErrLoad                   = domain.ErrLoad
)
