package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalog/internal/domain"
	domcat "github.com/kailas-cloud/catalog/internal/domain/catalog"
	"github.com/kailas-cloud/catalog/internal/domain/facet"
	"github.com/kailas-cloud/catalog/internal/domain/item"
	"github.com/kailas-cloud/catalog/internal/domain/search/page"
	"github.com/kailas-cloud/catalog/internal/domain/search/request"
	cataloguc "github.com/kailas-cloud/catalog/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/catalog/internal/usecase/health"
)

// CatalogService is the read side of the catalog used by the API.
type CatalogService interface {
	Catalog() (*domcat.Catalog, error)
	Search(ctx context.Context, req *request.Request) (page.Page[item.Item], error)
	Facets(ctx context.Context) (cataloguc.Facets, error)
	Limits() request.Limits
}

// HealthChecker produces the health report.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the read-only catalog API.
type Server struct {
	catalog       CatalogService
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(catalog CatalogService, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		catalog: catalog,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrCatalogNotReady, http.StatusServiceUnavailable, ErrorCodeCatalogLoading),
		sentinelHandler(domain.ErrCatalogLoad, http.StatusServiceUnavailable, ErrorCodeCatalogUnavailable),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidPageSize, http.StatusBadRequest, ErrorCodeValidationFailed),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/items", s.ListItems)
		r.Get("/facets", s.ListFacets)
		r.Get("/catalog", s.GetCatalog)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, "method not allowed")
	})
}

// ListItems handles GET /api/v1/items.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	params, err := bindListItemsParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid query parameters")
		return
	}

	req, err := request.New(
		derefString(params.Q), params.Type, params.Platform,
		derefInt(params.PageSize), derefInt(params.Page), s.catalog.Limits(),
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	p, err := s.catalog.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NewItemPage(p))
}

// ListFacets handles GET /api/v1/facets.
func (s *Server) ListFacets(w http.ResponseWriter, r *http.Request) {
	f, err := s.catalog.Facets(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NewFacetsResponse(f))
}

// GetCatalog handles GET /api/v1/catalog.
func (s *Server) GetCatalog(w http.ResponseWriter, _ *http.Request) {
	cat, err := s.catalog.Catalog()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CatalogResponse{
		SnapshotID: cat.ID(),
		Source:     cat.Source(),
		Items:      cat.Len(),
		LoadedAt:   cat.LoadedAt().UTC(),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrCatalogNotReady,
		domain.ErrCatalogLoad,
		domain.ErrInvalidPageSize,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	// Validation messages describe the caller's input only.
	if errors.Is(err, domain.ErrInvalidRequest) {
		return err.Error()
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

func itemToResponse(it *item.Item) Item {
	tags := item.SplitTags(it.Tags())
	if tags == nil {
		tags = []string{}
	}
	return Item{
		Title:     it.DisplayTitle(),
		Type:      it.DisplayType(),
		Platform:  it.DisplayPlatform(),
		Tags:      tags,
		Link:      it.DisplayLink(),
		Thumbnail: it.DisplayThumbnail(),
	}
}

// NewItemPage converts a result page to its wire form.
func NewItemPage(p page.Page[item.Item]) ItemPage {
	items := make([]Item, len(p.Items))
	for i := range p.Items {
		items[i] = itemToResponse(&p.Items[i])
	}
	return ItemPage{
		Items:      items,
		Page:       p.Number,
		PageSize:   p.Size,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		HasPrev:    p.HasPrev(),
		HasNext:    p.HasNext(),
	}
}

// NewFacetsResponse converts both facet lists to their wire form.
func NewFacetsResponse(f cataloguc.Facets) FacetsResponse {
	return FacetsResponse{
		Types:     facetsToResponse(f.Types),
		Platforms: facetsToResponse(f.Platforms),
	}
}

func facetsToResponse(ff []facet.Facet) []Facet {
	out := make([]Facet, len(ff))
	for i, f := range ff {
		out[i] = Facet{Value: f.Value(), Count: f.Count()}
	}
	return out
}
