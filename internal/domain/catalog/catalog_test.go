package catalog

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/catalog/internal/domain/facet"
	"github.com/kailas-cloud/catalog/internal/domain/item"
	"github.com/kailas-cloud/catalog/internal/domain/search/query"
)

const exampleDoc = `[
	{"title": "Lego Set", "type": "Toy", "platform": "Store", "Tags": "kids,building"},
	{"title": "Nintendo Switch", "type": "Console", "platform": "Nintendo", "Tags": "gaming"}
]`

func load(t *testing.T, doc string) *Catalog {
	t.Helper()
	raws, err := item.ParseDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	return FromRaw("snap-1", raws, facet.DefaultLocale, "test", time.Unix(0, 0))
}

func titles(items []item.Item) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].Title()
	}
	return out
}

type facetView struct {
	Value string
	Count int
}

func facets(ff []facet.Facet) []facetView {
	out := make([]facetView, len(ff))
	for i, f := range ff {
		out[i] = facetView{f.Value(), f.Count()}
	}
	return out
}

func TestSearch_Examples(t *testing.T) {
	c := load(t, exampleDoc)

	got := c.Search(query.New("switch", nil, nil))
	if diff := cmp.Diff([]string{"Nintendo Switch"}, titles(got)); diff != "" {
		t.Errorf("text search mismatch (-want +got):\n%s", diff)
	}

	got = c.Search(query.New("", []string{"Toy"}, nil))
	if diff := cmp.Diff([]string{"Lego Set"}, titles(got)); diff != "" {
		t.Errorf("facet search mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_EmptyQueryReturnsAllInOrder(t *testing.T) {
	c := load(t, exampleDoc)
	got := c.Search(query.New("", nil, nil))
	if diff := cmp.Diff(titles(c.Items()), titles(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_ResultIsFreshSlice(t *testing.T) {
	c := load(t, exampleDoc)
	got := c.Search(query.New("", nil, nil))
	got[0] = item.Reconstruct("Mutated", "", "", "", "", "")
	if c.Items()[0].Title() != "Lego Set" {
		t.Error("mutating search results changed the catalog")
	}
}

func TestNew_Facets(t *testing.T) {
	c := load(t, `[
		{"title": "a", "type": " Toy ", "platform": "Store"},
		{"title": "b", "type": "Console", "platform": ""},
		{"title": "c", "type": "Toy", "platform": "store"},
		{"title": "d"}
	]`)

	wantTypes := []facetView{{"Console", 1}, {"Toy", 2}}
	if diff := cmp.Diff(wantTypes, facets(c.Types())); diff != "" {
		t.Errorf("types mismatch (-want +got):\n%s", diff)
	}
	wantPlatforms := []facetView{{"store", 1}, {"Store", 1}}
	if diff := cmp.Diff(wantPlatforms, facets(c.Platforms())); diff != "" {
		t.Errorf("platforms mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_Metadata(t *testing.T) {
	c := load(t, exampleDoc)
	if c.ID() != "snap-1" || c.Source() != "test" || c.Len() != 2 {
		t.Errorf("got id=%q source=%q len=%d", c.ID(), c.Source(), c.Len())
	}
	if !c.LoadedAt().Equal(time.Unix(0, 0)) {
		t.Errorf("LoadedAt() = %v", c.LoadedAt())
	}
}

func TestNew_NonArrayDocumentIsEmpty(t *testing.T) {
	c := load(t, `{"not": "a list"}`)
	if c.Len() != 0 || len(c.Types()) != 0 || len(c.Platforms()) != 0 {
		t.Errorf("expected empty catalog, got %d items", c.Len())
	}
	if got := c.Search(query.New("", nil, nil)); len(got) != 0 {
		t.Errorf("expected no results, got %d", len(got))
	}
}

func TestFacets_CallerCannotMutateSnapshot(t *testing.T) {
	c := load(t, exampleDoc)
	c.Types()[0] = facet.New("Mutated", 99)
	c.Platforms()[0] = facet.New("Mutated", 99)

	if got := c.Types()[0].Value(); got != "Console" {
		t.Errorf("Types()[0] = %q, want Console", got)
	}
	if got := c.Platforms()[0].Value(); got != "Nintendo" {
		t.Errorf("Platforms()[0] = %q, want Nintendo", got)
	}
}
