package main

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/kailas-cloud/catalog/internal/config"
	logpkg "github.com/kailas-cloud/catalog/internal/logger"
)

// cliLogger logs warnings and errors to stderr so stdout stays clean for results.
func cliLogger(env string) (*zap.Logger, error) {
	logger, err := logpkg.NewLogger(env, logpkg.Options{
		Level:       "warn",
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// pageSizeFor applies the configured default to a non-positive flag value and
// caps it at the configured maximum.
func pageSizeFor(flag int, cfg config.CatalogConfig) int {
	if flag <= 0 {
		flag = cfg.DefaultPageSize
	}
	return min(flag, cfg.MaxPageSize)
}
