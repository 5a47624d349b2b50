package catalog

import "github.com/kailas-cloud/catalog/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrCatalogLoad     = domain.ErrCatalogLoad
	ErrCatalogNotReady = domain.ErrCatalogNotReady
	ErrSourceNotFound  = domain.ErrSourceNotFound
	ErrInvalidRequest  = domain.ErrInvalidRequest
)

// LoadError is returned by New when the catalog cannot be loaded.
// It names the source and matches ErrCatalogLoad.
type LoadError = domain.LoadError
