package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrBuild signals that an index could not be constructed from its input.
	ErrBuild = errors.New("index build failed")
	// ErrInvalidMode signals an unrecognized retrieval mode.
	ErrInvalidMode = errors.New("invalid retrieval mode")
	// ErrEmbeddingProviderError signals an embedding provider failure or contract violation.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrInvalidDocument signals a document that violates the corpus contract.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrLoad signals a document source that could not be read.
	ErrLoad = errors.New("load failed")
)

// BuildError reports which index failed to build and why.
// Matches both ErrBuild and the underlying cause.
type BuildError struct {
	Index string
	Err   error
}

// NewBuildError creates a BuildError for the named index.
func NewBuildError(index string, err error) error {
	return &BuildError{Index: index, Err: err}
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %s index: %v", ErrBuild.Error(), e.Index, e.Err)
}

func (e *BuildError) Unwrap() []error { return []error{ErrBuild, e.Err} }

// InvalidModeError carries the rejected mode value.
type InvalidModeError struct {
	Mode string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidMode.Error(), e.Mode)
}

func (e *InvalidModeError) Unwrap() error { return ErrInvalidMode }

// LoadError reports a document source failure.
type LoadError struct {
	Source string
	Path   string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s source %s: %v", ErrLoad.Error(), e.Source, e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error { return []error{ErrLoad, e.Err} }
