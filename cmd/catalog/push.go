package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/catalog/internal/config"
	"github.com/kailas-cloud/catalog/internal/domain/item"
	"github.com/kailas-cloud/catalog/internal/source"
)

func newPushCmd(opts *rootOptions) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "push <file>",
		Short: "Validate a catalog document and store it under a Redis/Valkey key",
		Long: `push reads a JSON catalog document, checks that it parses, and writes it
to the configured database so that servers using the kv source can load it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(filepath.Clean(args[0]))
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			records, err := item.ParseDocument(data)
			if err != nil {
				return err
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if key == "" {
				key = cfg.Catalog.Source.Key
			}
			if key == "" {
				key = config.DefaultSourceKey
			}
			if len(cfg.Database.Addrs) == 0 {
				return fmt.Errorf("database.addrs is required to push")
			}

			logger, err := cliLogger(opts.env)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			store, err := openStore(cmd.Context(), cfg.Database, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			kv := source.NewKV(store, key)
			if err := kv.Push(cmd.Context(), data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pushed %d records to %s\n", len(records), kv)
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "destination key (default catalog.source.key)")
	return cmd
}
