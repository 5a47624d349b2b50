package item

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/catalog/internal/domain"
)

// Raw is a loosely-typed catalog record as it appears in the source document.
// Keys are lower-cased so lookups tolerate `Title` vs `title` and `Tags` vs `tags`.
type Raw map[string]json.RawMessage

// Field aliases, in lookup order.
var (
	titleKeys     = []string{"title"}
	typeKeys      = []string{"type"}
	platformKeys  = []string{"platform"}
	tagsKeys      = []string{"tags"}
	linkKeys      = []string{"link"}
	thumbnailKeys = []string{"thumnail", "thumbnail"}
)

// ParseDocument decodes a catalog document into raw records.
// Invalid JSON is a load error. A valid document whose top level is not an array
// yields zero records, and array elements that are not objects yield empty records.
func ParseDocument(data []byte) ([]Raw, error) {
	var top json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: parse document: %w", domain.ErrCatalogLoad, err)
	}

	trimmed := bytes.TrimSpace(top)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, fmt.Errorf("%w: parse records: %w", domain.ErrCatalogLoad, err)
	}

	records := make([]Raw, 0, len(elems))
	for _, e := range elems {
		records = append(records, parseRecord(e))
	}
	return records, nil
}

func parseRecord(data json.RawMessage) Raw {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return Raw{}
	}
	r := make(Raw, len(fields))
	for k, v := range fields {
		key := strings.ToLower(k)
		// An exact lower-case key wins over a differently-cased duplicate.
		if _, seen := r[key]; seen && k != key {
			continue
		}
		r[key] = v
	}
	return r
}

// Title returns the title field.
func (r Raw) Title() string { return r.lookup(titleKeys) }

// Type returns the type field.
func (r Raw) Type() string { return r.lookup(typeKeys) }

// Platform returns the platform field.
func (r Raw) Platform() string { return r.lookup(platformKeys) }

// Tags returns the comma-separated tags field.
// A JSON array of strings is joined with commas.
func (r Raw) Tags() string {
	for _, k := range tagsKeys {
		v, ok := r[k]
		if !ok {
			continue
		}
		var list []string
		if err := json.Unmarshal(v, &list); err == nil {
			return strings.Join(list, ",")
		}
		return scalar(v)
	}
	return ""
}

// Link returns the outbound link field.
func (r Raw) Link() string { return r.lookup(linkKeys) }

// Thumbnail returns the thumbnail URL, preferring the historical `thumnail` spelling.
func (r Raw) Thumbnail() string {
	for _, k := range thumbnailKeys {
		if s := scalar(r[k]); s != "" {
			return s
		}
	}
	return ""
}

func (r Raw) lookup(keys []string) string {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			return scalar(v)
		}
	}
	return ""
}

// scalar renders a JSON scalar as text: strings verbatim, numbers and booleans
// in their literal form, anything else as "".
func scalar(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return ""
	}
	switch v[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return ""
		}
		return s
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(v, &b); err != nil {
			return ""
		}
		return strconv.FormatBool(b)
	case 'n', '{', '[':
		return ""
	default:
		var n json.Number
		if err := json.Unmarshal(v, &n); err != nil {
			return ""
		}
		return n.String()
	}
}
