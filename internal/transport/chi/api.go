package chi

import "time"

// ErrorCode is the machine-readable error code of an ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest         ErrorCode = "bad_request"
	ErrorCodeValidationFailed   ErrorCode = "validation_failed"
	ErrorCodeUnauthorized       ErrorCode = "unauthorized"
	ErrorCodeRateLimited        ErrorCode = "rate_limited"
	ErrorCodeNotFound           ErrorCode = "not_found"
	ErrorCodeCatalogLoading     ErrorCode = "catalog_loading"
	ErrorCodeCatalogUnavailable ErrorCode = "catalog_unavailable"
	ErrorCodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every error.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Item is one catalog entry with display defaults applied.
type Item struct {
	Title     string   `json:"title"`
	Type      string   `json:"type"`
	Platform  string   `json:"platform"`
	Tags      []string `json:"tags"`
	Link      string   `json:"link"`
	Thumbnail string   `json:"thumbnail"`
}

// ItemPage is the response of GET /api/v1/items.
type ItemPage struct {
	Items      []Item `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	HasPrev    bool   `json:"has_prev"`
	HasNext    bool   `json:"has_next"`
}

// Facet is one facet value with its item count.
type Facet struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FacetsResponse is the response of GET /api/v1/facets.
type FacetsResponse struct {
	Types     []Facet `json:"types"`
	Platforms []Facet `json:"platforms"`
}

// CatalogResponse is the response of GET /api/v1/catalog.
type CatalogResponse struct {
	SnapshotID string    `json:"snapshot_id"`
	Source     string    `json:"source"`
	Items      int       `json:"items"`
	LoadedAt   time.Time `json:"loaded_at"`
}

// HealthResponse is the response of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
