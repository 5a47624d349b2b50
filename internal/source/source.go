// Package source fetches the raw catalog document from a file, an HTTP(S) URL
// or a key in Redis/Valkey.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kailas-cloud/catalog/internal/config"
	"github.com/kailas-cloud/catalog/internal/db"
	"github.com/kailas-cloud/catalog/internal/domain"
)

// Source yields the bytes of a catalog document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// DefaultHTTPTimeout bounds a single document download.
const DefaultHTTPTimeout = 30 * time.Second

// Open builds the source selected by cfg.Kind. store is only used by the kv kind.
func Open(cfg config.SourceConfig, store db.KVStore) (Source, error) {
	switch cfg.Kind {
	case config.SourceFile, "":
		return NewFile(cfg.Path), nil
	case config.SourceHTTP:
		return NewHTTP(cfg.URL, &http.Client{Timeout: DefaultHTTPTimeout}), nil
	case config.SourceKV:
		if store == nil {
			return nil, errors.New("source: kv source requires a store")
		}
		return NewKV(store, cfg.Key), nil
	default:
		return nil, fmt.Errorf("source: unknown kind %q", cfg.Kind)
	}
}

func notFound(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrSourceNotFound, what, err)
}
