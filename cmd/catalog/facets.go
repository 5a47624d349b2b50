package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/catalog/internal/domain/facet"
	chiTransport "github.com/kailas-cloud/catalog/internal/transport/chi"
)

func newFacetsCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "facets",
		Short: "Print the type and platform facets with their counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			if _, err := a.catalog.Load(cmd.Context()); err != nil {
				return err
			}
			f, err := a.catalog.Facets(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), chiTransport.NewFacetsResponse(f))
			}
			printFacets(cmd.OutOrStdout(), "Types", f.Types)
			printFacets(cmd.OutOrStdout(), "Platforms", f.Platforms)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the facets as JSON")
	return cmd
}

func printFacets(w io.Writer, title string, ff []facet.Facet) {
	fmt.Fprintf(w, "%s:\n", title)
	if len(ff) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, f := range ff {
		fmt.Fprintf(w, "  %s (%d)\n", f.Value(), f.Count())
	}
}
