package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	logpkg "github.com/kailas-cloud/catalog/internal/logger"
	"github.com/kailas-cloud/catalog/internal/tui"
)

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	var (
		logFile  string
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog in an interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			// The terminal belongs to the UI, so logs go to a file.
			logger, err := logpkg.NewLogger(opts.env, logpkg.Options{
				Level:       cfg.Logging.Level,
				OutputPaths: []string{logFile},
			})
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			a, err := newApp(cmd.Context(), cfg, logger, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			a.catalog.Start(context.Background())

			m := tui.New(a.catalog, pageSizeFor(pageSize, cfg.Catalog))
			if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("terminal UI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", filepath.Join(os.TempDir(), "catalog-browse.log"), "file receiving logs while the UI runs")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "initial results per page (default catalog.default_page_size, capped at catalog.max_page_size)")
	return cmd
}
