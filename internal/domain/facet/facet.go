// Package facet derives categorical filter values and their item counts.
package facet

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale orders facet values when no locale is configured.
var DefaultLocale = language.English

// Facet is a distinct non-empty field value with the number of items carrying it.
type Facet struct {
	value string
	count int
}

// New creates a Facet.
func New(value string, count int) Facet {
	return Facet{value: value, count: count}
}

// Value returns the exact (trimmed, case-sensitive) field value.
func (f Facet) Value() string { return f.value }

// Count returns the number of items whose field equals Value.
func (f Facet) Count() int { return f.count }

// Build counts exact occurrences of each non-empty value and returns the distinct
// values in locale-aware ascending order. Values must already be normalized.
func Build(values []string, tag language.Tag) []Facet {
	counts := make(map[string]int)
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
	}

	distinct := make([]string, 0, len(counts))
	for v := range counts {
		distinct = append(distinct, v)
	}
	Sort(distinct, tag)

	out := make([]Facet, len(distinct))
	for i, v := range distinct {
		out[i] = Facet{value: v, count: counts[v]}
	}
	return out
}

// Sort orders values in place using the collation rules of tag.
// Values that collate equal fall back to byte order so the result is deterministic.
func Sort(values []string, tag language.Tag) {
	// A Collator keeps internal buffers and is not safe for concurrent use.
	c := collate.New(tag)
	sort.SliceStable(values, func(i, j int) bool {
		if r := c.CompareString(values[i], values[j]); r != 0 {
			return r < 0
		}
		return values[i] < values[j]
	})
}
