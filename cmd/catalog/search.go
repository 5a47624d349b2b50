package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/catalog/internal/domain/item"
	"github.com/kailas-cloud/catalog/internal/domain/search/page"
	chiTransport "github.com/kailas-cloud/catalog/internal/transport/chi"
	"github.com/kailas-cloud/catalog/internal/usecase/session"
)

type searchOptions struct {
	types     []string
	platforms []string
	page      int
	pageSize  int
	asJSON    bool
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	so := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Run one search and print a page of results",
		Example: `  catalog search switch
  catalog search --type Toy --platform Store
  catalog search lego --page 2 --page-size 25 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts, so, strings.Join(args, " "))
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&so.types, "type", nil, "type facet to match (repeatable)")
	f.StringSliceVar(&so.platforms, "platform", nil, "platform facet to match (repeatable)")
	f.IntVar(&so.page, "page", 1, "page number")
	f.IntVar(&so.pageSize, "page-size", 0, "results per page (default catalog.default_page_size)")
	f.BoolVar(&so.asJSON, "json", false, "print the page as JSON")
	return cmd
}

func runSearch(cmd *cobra.Command, opts *rootOptions, so *searchOptions, text string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	logger, err := cliLogger(opts.env)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	a, err := newApp(cmd.Context(), cfg, logger, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	cat, err := a.catalog.Load(cmd.Context())
	if err != nil {
		return err
	}

	sess := session.New(pageSizeFor(so.pageSize, cfg.Catalog)).WithQuery(text)
	for _, t := range so.types {
		sess = sess.WithType(t, true)
	}
	for _, p := range so.platforms {
		sess = sess.WithPlatform(p, true)
	}
	sess = sess.Search(cat).GoTo(strconv.Itoa(so.page))

	if so.asJSON {
		return writeJSON(cmd.OutOrStdout(), chiTransport.NewItemPage(sess.View()))
	}
	printResults(cmd.OutOrStdout(), sess.Status(), sess.View())
	return nil
}

func printResults(w io.Writer, status string, p page.Page[item.Item]) {
	fmt.Fprintln(w, status)
	if p.Total == 0 {
		fmt.Fprintln(w, "No results")
		return
	}
	fmt.Fprintf(w, "Page %d / %d • %d matches\n", p.Number, p.TotalPages, p.Total)

	offset := p.Offset()
	for i := range p.Items {
		it := &p.Items[i]
		fmt.Fprintf(w, "%4d. %s  [%s • %s]", offset+i+1, it.DisplayTitle(), it.DisplayType(), it.DisplayPlatform())
		if tags := item.SplitTags(it.Tags()); len(tags) > 0 {
			fmt.Fprintf(w, "  %s", strings.Join(tags, ", "))
		}
		fmt.Fprintln(w)
	}
}
