package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCatalogLoad signals that the catalog document could not be fetched or parsed.
	// The catalog stays empty and unusable for the rest of the process.
	ErrCatalogLoad = errors.New("catalog load failed")
	// ErrCatalogNotReady signals that the one-shot catalog load has not finished yet.
	ErrCatalogNotReady = errors.New("catalog not ready")
	// ErrInvalidRequest signals a malformed search request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidPageSize signals a non-positive page size.
	ErrInvalidPageSize = errors.New("page size must be positive")
	// ErrSourceNotFound signals that the catalog document does not exist at the source.
	ErrSourceNotFound = errors.New("catalog source not found")
)

// LoadError carries the source description alongside the load failure.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if errors.Is(e.Err, ErrCatalogLoad) {
		return fmt.Sprintf("%v (source %s)", e.Err, e.Source)
	}
	return fmt.Sprintf("%s: %s: %v", ErrCatalogLoad.Error(), e.Source, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause to errors.Is.
func (e *LoadError) Unwrap() []error { return []error{ErrCatalogLoad, e.Err} }

// NewLoadError wraps err as a catalog load failure for the given source.
func NewLoadError(source string, err error) error {
	return &LoadError{Source: source, Err: err}
}
