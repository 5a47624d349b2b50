package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/catalog/internal/config"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	env        string
	configPath string
	file       string
	url        string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Search and browse a product catalog",
		Long: `catalog loads a JSON document of product records once, builds type and
platform facets from it, and answers text and facet searches. It runs as an
HTTP API, an interactive terminal browser, or one-shot commands.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.env, "env", config.GetEnv(), "environment name, selects config/<env>.yaml")
	f.StringVar(&opts.configPath, "config", "", "explicit config file path (overrides --env lookup)")
	f.StringVar(&opts.file, "file", "", "read the catalog from this JSON file")
	f.StringVar(&opts.url, "url", "", "read the catalog from this HTTP(S) URL")
	cmd.MarkFlagsMutuallyExclusive("file", "url")

	cmd.AddCommand(
		newServeCmd(opts),
		newBrowseCmd(opts),
		newSearchCmd(opts),
		newFacetsCmd(opts),
		newPushCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig reads the config file and applies the source override flags.
func (o *rootOptions) loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load(o.env)
	}
	if err != nil {
		return config.Config{}, err
	}

	switch {
	case o.file != "":
		cfg.Catalog.Source = config.SourceConfig{Kind: config.SourceFile, Path: o.file}
	case o.url != "":
		cfg.Catalog.Source = config.SourceConfig{Kind: config.SourceHTTP, URL: o.url}
	}
	return cfg, nil
}
