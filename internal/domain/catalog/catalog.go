// Package catalog holds the loaded item set and its derived facet index.
package catalog

import (
	"slices"
	"time"

	"golang.org/x/text/language"

	"github.com/kailas-cloud/catalog/internal/domain/facet"
	"github.com/kailas-cloud/catalog/internal/domain/item"
	"github.com/kailas-cloud/catalog/internal/domain/search/query"
)

// Catalog is an immutable snapshot of the loaded items. Safe for concurrent reads.
type Catalog struct {
	id        string
	source    string
	loadedAt  time.Time
	items     []item.Item
	types     []facet.Facet
	platforms []facet.Facet
}

// New builds a catalog snapshot and its type and platform facets.
// Facet values are ordered by the collation rules of locale.
func New(id string, items []item.Item, locale language.Tag, source string, loadedAt time.Time) *Catalog {
	owned := make([]item.Item, len(items))
	copy(owned, items)

	types := make([]string, len(owned))
	platforms := make([]string, len(owned))
	for i := range owned {
		types[i] = owned[i].Type()
		platforms[i] = owned[i].Platform()
	}

	return &Catalog{
		id:        id,
		source:    source,
		loadedAt:  loadedAt,
		items:     owned,
		types:     facet.Build(types, locale),
		platforms: facet.Build(platforms, locale),
	}
}

// FromRaw normalizes raw records and builds a catalog from them.
func FromRaw(id string, raws []item.Raw, locale language.Tag, source string, loadedAt time.Time) *Catalog {
	items := make([]item.Item, len(raws))
	for i, r := range raws {
		items[i] = item.New(r)
	}
	return New(id, items, locale, source, loadedAt)
}

// ID returns the snapshot identifier.
func (c *Catalog) ID() string { return c.id }

// Source describes where the catalog document came from.
func (c *Catalog) Source() string { return c.source }

// LoadedAt returns the load completion time.
func (c *Catalog) LoadedAt() time.Time { return c.loadedAt }

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// Items returns a copy of all items in source order.
func (c *Catalog) Items() []item.Item {
	out := make([]item.Item, len(c.items))
	copy(out, c.items)
	return out
}

// Types returns a copy of the type facets.
func (c *Catalog) Types() []facet.Facet { return slices.Clone(c.types) }

// Platforms returns a copy of the platform facets.
func (c *Catalog) Platforms() []facet.Facet { return slices.Clone(c.platforms) }

// Search returns the items matching q in source order, as a new slice.
func (c *Catalog) Search(q query.Query) []item.Item {
	return q.Filter(c.items)
}
