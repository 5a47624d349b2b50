package item

import "strings"

// Display fallbacks for records with missing fields.
const (
	UntitledTitle   = "Untitled"
	UnknownType     = "Unknown type"
	UnknownPlatform = "Unknown platform"
	NoLink          = "#"

	// PlaceholderThumbnail is a square "No Image" SVG used when a record has no thumbnail.
	PlaceholderThumbnail = "data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' " +
		"width='800' height='800'%3E%3Crect width='100%25' height='100%25' fill='%23121a26'/%3E" +
		"%3Ctext x='50%25' y='50%25' dominant-baseline='middle' text-anchor='middle' " +
		"fill='%239fb0c5' font-family='Arial' font-size='20'%3ENo Image%3C/text%3E%3C/svg%3E"
)

// Item is a normalized catalog record (immutable value object).
// Identity is positional: the catalog keeps items in source order.
type Item struct {
	title      string
	itemType   string
	platform   string
	tags       string
	link       string
	thumbnail  string
	searchText string
}

// New normalizes a raw record. Type and platform are trimmed, the remaining
// fields are kept verbatim, and the search text is derived once.
func New(r Raw) Item {
	return Reconstruct(r.Title(), r.Type(), r.Platform(), r.Tags(), r.Link(), r.Thumbnail())
}

// Reconstruct builds an Item from already-extracted fields.
func Reconstruct(title, itemType, platform, tags, link, thumbnail string) Item {
	it := Item{
		title:     title,
		itemType:  strings.TrimSpace(itemType),
		platform:  strings.TrimSpace(platform),
		tags:      tags,
		link:      link,
		thumbnail: thumbnail,
	}
	it.searchText = SearchText(it.title, it.itemType, it.platform, it.tags)
	return it
}

// SearchText builds the lower-case haystack for substring matching:
// title, type, platform and every non-empty tag token joined by single spaces.
func SearchText(title, itemType, platform, tags string) string {
	parts := []string{
		normalize(title),
		normalize(itemType),
		normalize(platform),
		strings.Join(SplitTags(tags), " "),
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// SplitTags lower-cases a comma-separated tag string and returns its non-empty tokens.
func SplitTags(tags string) []string {
	raw := strings.Split(normalize(tags), ",")
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Title returns the title as given by the source.
func (i *Item) Title() string { return i.title }

// Type returns the trimmed type facet value.
func (i *Item) Type() string { return i.itemType }

// Platform returns the trimmed platform facet value.
func (i *Item) Platform() string { return i.platform }

// Tags returns the raw comma-separated tags.
func (i *Item) Tags() string { return i.tags }

// Link returns the outbound URL.
func (i *Item) Link() string { return i.link }

// Thumbnail returns the thumbnail URL, possibly empty.
func (i *Item) Thumbnail() string { return i.thumbnail }

// SearchText returns the derived lower-case search text.
func (i *Item) SearchText() string { return i.searchText }

// DisplayTitle returns the title or "Untitled".
func (i *Item) DisplayTitle() string { return orDefault(i.title, UntitledTitle) }

// DisplayType returns the type or "Unknown type".
func (i *Item) DisplayType() string { return orDefault(i.itemType, UnknownType) }

// DisplayPlatform returns the platform or "Unknown platform".
func (i *Item) DisplayPlatform() string { return orDefault(i.platform, UnknownPlatform) }

// DisplayLink returns the link or "#".
func (i *Item) DisplayLink() string { return orDefault(i.link, NoLink) }

// DisplayThumbnail returns the thumbnail or the placeholder image.
func (i *Item) DisplayThumbnail() string { return orDefault(i.thumbnail, PlaceholderThumbnail) }

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
