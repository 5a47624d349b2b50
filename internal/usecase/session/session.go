// Package session models one interactive browsing session as an immutable
// value: the pending inputs the user is editing and the last executed search.
//
// Editing inputs never re-filters. Only Search turns pending inputs into a
// result set, and only Clear returns to the initial state.
package session

import (
	"slices"
	"strconv"
	"strings"

	"github.com/kailas-cloud/catalog/internal/domain/item"
	"github.com/kailas-cloud/catalog/internal/domain/search/page"
	"github.com/kailas-cloud/catalog/internal/domain/search/query"
	"github.com/kailas-cloud/catalog/internal/domain/search/request"
)

// State is the display phase of a session.
type State int

const (
	// Initial means no search has been executed since start or the last Clear.
	Initial State = iota
	// Searched means a result set (possibly empty) is shown.
	Searched
)

func (s State) String() string {
	switch s {
	case Initial:
		return "initial"
	case Searched:
		return "searched"
	default:
		return "unknown"
	}
}

// Status messages.
const (
	StatusFilterChanged  = "Filter changed. Click Search to apply."
	StatusPerPageChanged = "Per-page changed. Click Search to apply."
	StatusFiltersReset   = "Filters reset. Click Search to apply."
	StatusResults        = "Results"
)

// Searcher runs a query over a loaded catalog.
type Searcher interface {
	Search(q query.Query) []item.Item
}

// Session is an immutable browsing session. Every operation returns a new value.
type Session struct {
	text        string
	types       []string // selection order
	platforms   []string
	pendingSize int

	state    State
	results  []item.Item
	pageSize int
	page     int
	status   string
}

// New creates a session in the Initial state. pageSize <= 0 means the default.
func New(pageSize int) Session {
	if pageSize <= 0 {
		pageSize = request.DefaultPageSize
	}
	return Session{pendingSize: pageSize, pageSize: pageSize, page: 1}
}

// WithQuery sets the pending query text.
func (s Session) WithQuery(text string) Session {
	s.text = text
	return s
}

// WithType selects or deselects a type facet value.
func (s Session) WithType(value string, selected bool) Session {
	s.types = toggle(s.types, value, selected)
	s.status = StatusFilterChanged
	return s
}

// WithPlatform selects or deselects a platform facet value.
func (s Session) WithPlatform(value string, selected bool) Session {
	s.platforms = toggle(s.platforms, value, selected)
	s.status = StatusFilterChanged
	return s
}

// WithPageSize sets the pending page size. n <= 0 is ignored.
func (s Session) WithPageSize(n int) Session {
	if n <= 0 {
		return s
	}
	s.pendingSize = n
	s.status = StatusPerPageChanged
	return s
}

// ResetFilters clears both facet selections. Query text and results are kept.
func (s Session) ResetFilters() Session {
	s.types = nil
	s.platforms = nil
	s.status = StatusFiltersReset
	return s
}

// Search executes the pending inputs against cat and shows page 1.
func (s Session) Search(cat Searcher) Session {
	q := query.New(s.text, s.types, s.platforms)
	s.results = cat.Search(q)
	s.pageSize = s.pendingSize
	s.page = 1
	s.state = Searched
	s.status = s.resultsStatus()
	return s
}

// Clear discards the query, facet selections and results and returns to Initial.
// The pending page size is kept.
func (s Session) Clear() Session {
	s.text = ""
	s.types = nil
	s.platforms = nil
	s.results = nil
	s.page = 1
	s.state = Initial
	s.status = ""
	return s
}

// Next moves one page forward, clamped to the last page.
func (s Session) Next() Session {
	return s.goTo(s.page + 1)
}

// Prev moves one page back, clamped to the first page.
func (s Session) Prev() Session {
	return s.goTo(s.page - 1)
}

// GoTo jumps to the page number in raw. Non-numeric, zero or negative input is ignored.
func (s Session) GoTo(raw string) Session {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return s
	}
	return s.goTo(n)
}

func (s Session) goTo(n int) Session {
	s.page = page.Clamp(n, page.TotalPages(len(s.results), s.pageSize))
	return s
}

// View returns the current page of the executed result set.
func (s Session) View() page.Page[item.Item] {
	p, err := page.Paginate(s.results, s.pageSize, s.page)
	if err != nil {
		// pageSize is always positive.
		return page.Page[item.Item]{Number: 1, Size: s.pageSize, TotalPages: 1}
	}
	return p
}

// State returns the display phase.
func (s Session) State() State { return s.state }

// Status returns the status line.
func (s Session) Status() string { return s.status }

// Matches returns the size of the executed result set.
func (s Session) Matches() int { return len(s.results) }

// Text returns the pending query text.
func (s Session) Text() string { return s.text }

// PageSize returns the pending page size.
func (s Session) PageSize() int { return s.pendingSize }

// TypeSelected reports whether a type value is selected.
func (s Session) TypeSelected(value string) bool { return slices.Contains(s.types, value) }

// PlatformSelected reports whether a platform value is selected.
func (s Session) PlatformSelected(value string) bool { return slices.Contains(s.platforms, value) }

// SelectedTypes returns the selected types in selection order.
func (s Session) SelectedTypes() []string { return slices.Clone(s.types) }

// SelectedPlatforms returns the selected platforms in selection order.
func (s Session) SelectedPlatforms() []string { return slices.Clone(s.platforms) }

func (s Session) resultsStatus() string {
	var parts []string
	if q := strings.TrimSpace(s.text); q != "" {
		parts = append(parts, `"`+q+`"`)
	}
	if len(s.types) > 0 {
		parts = append(parts, "Types: "+strings.Join(s.types, ", "))
	}
	if len(s.platforms) > 0 {
		parts = append(parts, "Platforms: "+strings.Join(s.platforms, ", "))
	}
	if len(parts) == 0 {
		return StatusResults
	}
	return "Results for " + strings.Join(parts, " • ")
}

// toggle returns a new slice; the receiver's slice is never modified in place.
func toggle(values []string, value string, selected bool) []string {
	i := slices.Index(values, value)
	switch {
	case selected && i < 0:
		out := make([]string, len(values), len(values)+1)
		copy(out, values)
		return append(out, value)
	case !selected && i >= 0:
		return slices.Delete(slices.Clone(values), i, i+1)
	default:
		return values
	}
}
