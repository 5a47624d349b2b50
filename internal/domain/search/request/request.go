package request

import (
	"fmt"

	"github.com/kailas-cloud/catalog/internal/domain"
	"github.com/kailas-cloud/catalog/internal/domain/search/query"
)

// Paging defaults.
const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// Limits bounds the page size accepted from callers.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultLimits returns the built-in paging limits.
func DefaultLimits() Limits {
	return Limits{DefaultPageSize: DefaultPageSize, MaxPageSize: MaxPageSize}
}

// Request is a validated, paged search.
type Request struct {
	query    query.Query
	pageSize int
	page     int
}

// New validates and normalizes search parameters.
// Invalid paging input is never an error: a non-positive page size takes the
// default, an oversized one is clamped, a non-positive page becomes 1.
func New(rawText string, types, platforms []string, pageSize, page int, limits Limits) (Request, error) {
	if len(rawText) > query.MaxTextLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d bytes)", domain.ErrInvalidRequest, query.MaxTextLength)
	}

	limits = limits.withDefaults()
	if pageSize <= 0 {
		pageSize = limits.DefaultPageSize
	}
	if pageSize > limits.MaxPageSize {
		pageSize = limits.MaxPageSize
	}
	if page <= 0 {
		page = 1
	}

	return Request{
		query:    query.New(rawText, types, platforms),
		pageSize: pageSize,
		page:     page,
	}, nil
}

func (l Limits) withDefaults() Limits {
	if l.MaxPageSize <= 0 {
		l.MaxPageSize = MaxPageSize
	}
	if l.DefaultPageSize <= 0 {
		l.DefaultPageSize = DefaultPageSize
	}
	if l.DefaultPageSize > l.MaxPageSize {
		l.DefaultPageSize = l.MaxPageSize
	}
	return l
}

// Query returns the filter part of the request.
func (r *Request) Query() query.Query { return r.query }

// PageSize returns the number of items per page.
func (r *Request) PageSize() int { return r.pageSize }

// Page returns the requested 1-indexed page (before clamping to the result size).
func (r *Request) Page() int { return r.page }
