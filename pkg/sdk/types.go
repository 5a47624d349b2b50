package catalog

import "time"

// Query selects items. Zero values mean "no constraint", page 1 and the
// default page size.
type Query struct {
	Text      string   // case-insensitive substring of title, type, platform or tags
	Types     []string // exact type values, any of
	Platforms []string // exact platform values, any of
	Page      int
	PageSize  int
}

// Item is a catalog record as stored in the source document.
// Type and Platform are trimmed; the other fields are verbatim.
type Item struct {
	Title     string
	Type      string
	Platform  string
	Tags      []string
	Link      string
	Thumbnail string
}

// Page is one page of search results.
type Page struct {
	Items      []Item
	Number     int // effective page after clamping
	Size       int
	Total      int
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Facet is a distinct type or platform value and the number of items carrying it.
type Facet struct {
	Value string
	Count int
}

// Facets holds both facet lists in locale order.
type Facets struct {
	Types     []Facet
	Platforms []Facet
}

// Info describes the loaded catalog snapshot.
type Info struct {
	SnapshotID string
	Source     string
	Items      int
	LoadedAt   time.Time
}
