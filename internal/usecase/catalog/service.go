package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/catalog/internal/domain"
	domcat "github.com/kailas-cloud/catalog/internal/domain/catalog"
	"github.com/kailas-cloud/catalog/internal/domain/facet"
	"github.com/kailas-cloud/catalog/internal/domain/item"
	"github.com/kailas-cloud/catalog/internal/domain/search/page"
	"github.com/kailas-cloud/catalog/internal/domain/search/request"
	"github.com/kailas-cloud/catalog/internal/logger"
)

// State is the lifecycle phase of the one-shot load.
type State string

const (
	// Loading means the load is pending or in flight.
	Loading State = "loading"
	// Ready means the catalog is available.
	Ready State = "ready"
	// Failed means the load failed; the catalog stays unavailable.
	Failed State = "failed"
)

// Status describes the current load outcome.
type Status struct {
	State      State
	Err        error
	SnapshotID string
	Source     string
	Items      int
	LoadedAt   time.Time
}

// Facets holds the type and platform facet lists of the loaded catalog.
type Facets struct {
	Types     []facet.Facet
	Platforms []facet.Facet
}

// Service owns the one-shot catalog load and serves searches over the result.
type Service struct {
	src      Source
	recorder Recorder
	logger   *zap.Logger
	locale   language.Tag
	limits   request.Limits
	timeout  time.Duration
	now      func() time.Time
	newID    func() string

	once sync.Once
	done chan struct{}
	cat  *domcat.Catalog
	err  error
}

// New creates a catalog service. recorder and logger may be nil.
func New(src Source, recorder Recorder, logger *zap.Logger) *Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		src:      src,
		recorder: recorder,
		logger:   logger,
		locale:   facet.DefaultLocale,
		limits:   request.DefaultLimits(),
		now:      time.Now,
		newID:    uuid.NewString,
		done:     make(chan struct{}),
	}
}

// WithLocale sets the collation locale for facet ordering.
func (s *Service) WithLocale(tag language.Tag) *Service {
	s.locale = tag
	return s
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.limits.DefaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.limits.MaxPageSize = maxPageSize
	}
	return s
}

// WithLoadTimeout bounds the fetch. Zero means no extra bound beyond the Start context.
func (s *Service) WithLoadTimeout(d time.Duration) *Service {
	s.timeout = d
	return s
}

// Limits returns the page size limits used to build requests.
func (s *Service) Limits() request.Limits { return s.limits }

// Start launches the load in the background. Only the first call has an effect;
// ctx bounds the fetch.
func (s *Service) Start(ctx context.Context) {
	s.once.Do(func() {
		go s.load(ctx)
	})
}

// Load starts the load if needed and waits for it.
func (s *Service) Load(ctx context.Context) (*domcat.Catalog, error) {
	s.Start(ctx)
	return s.Wait(ctx)
}

// Wait blocks until the load completes or ctx is done.
func (s *Service) Wait(ctx context.Context) (*domcat.Catalog, error) {
	select {
	case <-s.done:
		return s.cat, s.err
	case <-ctx.Done():
		return nil, fmt.Errorf("wait for catalog: %w", ctx.Err())
	}
}

// Done is closed once the load has completed, successfully or not.
func (s *Service) Done() <-chan struct{} { return s.done }

// Catalog returns the loaded catalog without blocking.
// It returns ErrCatalogNotReady while loading and the LoadError after a failure.
func (s *Service) Catalog() (*domcat.Catalog, error) {
	select {
	case <-s.done:
		return s.cat, s.err
	default:
		return nil, domain.ErrCatalogNotReady
	}
}

// Status reports the load state.
func (s *Service) Status() Status {
	cat, err := s.Catalog()
	switch {
	case err == nil:
		return Status{
			State:      Ready,
			SnapshotID: cat.ID(),
			Source:     cat.Source(),
			Items:      cat.Len(),
			LoadedAt:   cat.LoadedAt(),
		}
	case s.isDone():
		return Status{State: Failed, Err: err, Source: s.src.String()}
	default:
		return Status{State: Loading, Source: s.src.String()}
	}
}

// LoadState returns the current State as a string.
func (s *Service) LoadState() string { return string(s.Status().State) }

// Search filters the catalog and returns the requested page.
func (s *Service) Search(ctx context.Context, req *request.Request) (page.Page[item.Item], error) {
	cat, err := s.Catalog()
	if err != nil {
		return page.Page[item.Item]{}, err
	}

	start := s.now()
	results := cat.Search(req.Query())
	p, err := page.Paginate(results, req.PageSize(), req.Page())
	if err != nil {
		return page.Page[item.Item]{}, fmt.Errorf("paginate: %w", err)
	}
	dur := s.now().Sub(start)
	s.recorder.Searched(dur, len(results))

	logger.FromContext(ctx).Debug("catalog search",
		zap.String("query", req.Query().Text()),
		zap.Strings("types", req.Query().Types()),
		zap.Strings("platforms", req.Query().Platforms()),
		zap.Int("matches", len(results)),
		zap.Int("page", p.Number),
		zap.Duration("duration", dur),
	)
	return p, nil
}

// Facets returns the facet lists of the loaded catalog.
func (s *Service) Facets(_ context.Context) (Facets, error) {
	cat, err := s.Catalog()
	if err != nil {
		return Facets{}, err
	}
	return Facets{Types: cat.Types(), Platforms: cat.Platforms()}, nil
}

func (s *Service) isDone() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *Service) load(ctx context.Context) {
	defer close(s.done)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	desc := s.src.String()
	start := s.now()
	s.logger.Info("Loading catalog", zap.String("source", desc))

	cat, err := s.fetch(ctx, desc)
	dur := s.now().Sub(start)
	if err != nil {
		s.err = domain.NewLoadError(desc, err)
		s.recorder.LoadFailed(desc, dur)
		s.logger.Error("Catalog load failed",
			zap.String("source", desc),
			zap.Duration("duration", dur),
			zap.Error(err),
		)
		return
	}

	s.cat = cat
	s.recorder.LoadCompleted(desc, dur, cat.Len(), len(cat.Types()), len(cat.Platforms()))
	s.logger.Info("Catalog loaded",
		zap.String("source", desc),
		zap.String("snapshot_id", cat.ID()),
		zap.Int("items", cat.Len()),
		zap.Int("types", len(cat.Types())),
		zap.Int("platforms", len(cat.Platforms())),
		zap.Duration("duration", dur),
	)
}

func (s *Service) fetch(ctx context.Context, desc string) (*domcat.Catalog, error) {
	data, err := s.src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	raws, err := item.ParseDocument(data)
	if err != nil {
		return nil, err //nolint:wrapcheck // already carries ErrCatalogLoad context
	}
	return domcat.FromRaw(s.newID(), raws, s.locale, desc, s.now()), nil
}
