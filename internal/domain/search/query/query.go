package query

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/catalog/internal/domain/item"
)

// MaxTextLength is the maximum allowed free-text query length in bytes.
const MaxTextLength = 4096

// Query is the normalized filter part of a search: free text plus facet selections.
// An empty facet set means "no filter" for that facet.
type Query struct {
	text      string
	types     set
	platforms set
}

// New normalizes the free text (trimmed, lower-cased) and collects facet selections.
// Facet values are matched exactly, so they are stored verbatim.
func New(text string, types, platforms []string) Query {
	return Query{
		text:      Normalize(text),
		types:     newSet(types),
		platforms: newSet(platforms),
	}
}

// Normalize trims and lower-cases free text.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Text returns the normalized free text.
func (q Query) Text() string { return q.text }

// Types returns the selected type values, sorted.
func (q Query) Types() []string { return q.types.sorted() }

// Platforms returns the selected platform values, sorted.
func (q Query) Platforms() []string { return q.platforms.sorted() }

// HasType reports whether the type value is selected.
func (q Query) HasType(v string) bool { return q.types.has(v) }

// HasPlatform reports whether the platform value is selected.
func (q Query) HasPlatform(v string) bool { return q.platforms.has(v) }

// IsEmpty reports whether the query matches every item.
func (q Query) IsEmpty() bool {
	return q.text == "" && len(q.types) == 0 && len(q.platforms) == 0
}

// Matches reports whether it satisfies every active part of the query:
// facet membership (when a set is non-empty) and substring containment of the text.
func (q Query) Matches(it *item.Item) bool {
	if len(q.types) > 0 && !q.types.has(it.Type()) {
		return false
	}
	if len(q.platforms) > 0 && !q.platforms.has(it.Platform()) {
		return false
	}
	if q.text != "" && !strings.Contains(it.SearchText(), q.text) {
		return false
	}
	return true
}

// Filter returns the matching items in input order. The input is not modified.
func (q Query) Filter(items []item.Item) []item.Item {
	out := make([]item.Item, 0)
	for i := range items {
		if q.Matches(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

type set map[string]struct{}

func newSet(values []string) set {
	s := make(set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s set) has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s set) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
