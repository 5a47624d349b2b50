package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogStatus reports the one-shot load state: "loading", "ready" or "failed".
type CatalogStatus interface {
	LoadState() string
}
