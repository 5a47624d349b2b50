// Package catalog embeds the product catalog in a Go program.
//
// The catalog document is loaded once, when the client is created, from a
// local file, an HTTP(S) URL, or a key in Redis/Valkey. A failed load is
// returned by New and is never retried.
//
//	c, err := catalog.New(ctx, catalog.WithFile("./data.json"))
//	if err != nil {
//	    return err // errors.Is(err, catalog.ErrCatalogLoad)
//	}
//	defer c.Close()
//
//	page, _ := c.Search(ctx, catalog.Query{Text: "switch", Types: []string{"Console"}})
//	for _, it := range page.Items {
//	    fmt.Println(it.Title, it.Platform)
//	}
//
// Matching is case-insensitive substring containment over title, type,
// platform and tags, combined with exact facet filters. Results keep the
// order of the source document.
package catalog
