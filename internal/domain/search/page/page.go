package page

import (
	"fmt"

	"github.com/kailas-cloud/catalog/internal/domain"
)

// Page is one window of an ordered result set.
type Page[T any] struct {
	Items      []T
	Number     int // effective 1-indexed page
	Size       int
	Total      int // length of the full result set
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// Offset returns the index of the first item of the page in the full result set.
func (p Page[T]) Offset() int { return (p.Number - 1) * p.Size }

// TotalPages returns max(1, ceil(total/size)).
func TotalPages(total, size int) int {
	if size < 1 || total <= 0 {
		return 1
	}
	n := total / size
	if total%size != 0 {
		n++
	}
	return n
}

// Clamp restricts requested to [1, totalPages].
func Clamp(requested, totalPages int) int {
	if requested < 1 {
		return 1
	}
	if requested > totalPages {
		return totalPages
	}
	return requested
}

// Paginate slices results into the requested page. Out-of-range pages are clamped,
// an empty result set yields page 1 of 1. The returned Items share the backing
// array with results.
func Paginate[T any](results []T, size, requested int) (Page[T], error) {
	if size < 1 {
		return Page[T]{}, fmt.Errorf("%w: got %d", domain.ErrInvalidPageSize, size)
	}

	total := len(results)
	totalPages := TotalPages(total, size)
	number := Clamp(requested, totalPages)

	start := (number - 1) * size
	end := start + min(size, total-start)

	return Page[T]{
		Items:      results[start:end:end],
		Number:     number,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
