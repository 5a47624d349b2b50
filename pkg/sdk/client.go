package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/catalog/internal/config"
	"github.com/kailas-cloud/catalog/internal/db"
	dbRedis "github.com/kailas-cloud/catalog/internal/db/redis"
	domcat "github.com/kailas-cloud/catalog/internal/domain/catalog"
	"github.com/kailas-cloud/catalog/internal/domain/facet"
	"github.com/kailas-cloud/catalog/internal/domain/item"
	"github.com/kailas-cloud/catalog/internal/domain/search/page"
	"github.com/kailas-cloud/catalog/internal/domain/search/request"
	"github.com/kailas-cloud/catalog/internal/source"
	cataloguc "github.com/kailas-cloud/catalog/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/catalog/internal/usecase/health"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces for substitution in tests.
type catalogUseCase interface {
	Search(ctx context.Context, req *request.Request) (page.Page[item.Item], error)
	Limits() request.Limits
}

// Client is the catalog SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store // nil unless the source is Redis/Valkey
	svc       catalogUseCase
	cat       *domcat.Catalog
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and loads the catalog. The provided context bounds the
// store readiness check and the load. A failed load returns a *LoadError.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		source: config.SourceConfig{Kind: config.SourceFile, Path: source.DefaultPath},
		locale: "en",
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	tag, err := language.Parse(cfg.locale)
	if err != nil {
		return nil, fmt.Errorf("catalog: invalid locale %q: %w", cfg.locale, err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if cfg.source.Kind == config.SourceKV {
		store, err = createStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	c, err := wireClient(ctx, cfg, tag, store, obs)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}
	return c, nil
}

func createStore(ctx context.Context, cfg *clientConfig) (db.Store, error) {
	if len(cfg.addrs) == 0 || cfg.addrs[0] == "" {
		return nil, errors.New("catalog: database address required")
	}
	switch cfg.driver {
	case "valkey", "redis":
	default:
		return nil, fmt.Errorf("catalog: unknown driver %q", cfg.driver)
	}

	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.addrs,
		Password:   cfg.password,
		Standalone: cfg.standalone,
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: create %s store: %w", cfg.driver, err)
	}

	if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		s.Close()
		return nil, fmt.Errorf("catalog: database not ready: %w", err)
	}
	return s, nil
}

func wireClient(ctx context.Context, cfg *clientConfig, tag language.Tag, store db.Store, obs *observer) (*Client, error) {
	src, err := openSource(cfg, store)
	if err != nil {
		return nil, err
	}

	svc := cataloguc.New(src, obs, zap.NewNop()).
		WithLocale(tag).
		WithPagination(cfg.defaultPageSize, cfg.maxPageSize)

	cat, err := svc.Load(ctx)
	if err != nil {
		return nil, err
	}

	// Pass a nil interface, not a typed nil pointer, when there is no store.
	var pinger healthuc.DBPinger
	if store != nil {
		pinger = store
	}

	return &Client{
		store:     store,
		svc:       svc,
		cat:       cat,
		healthSvc: healthuc.New(svc, pinger),
		obs:       obs,
	}, nil
}

func openSource(cfg *clientConfig, store db.Store) (cataloguc.Source, error) {
	if cfg.source.Kind == config.SourceHTTP && cfg.httpClient != nil {
		return source.NewHTTP(cfg.source.URL, cfg.httpClient), nil
	}
	var kv db.KVStore
	if store != nil {
		kv = store
	}
	src, err := source.Open(cfg.source, kv)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return src, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Search returns one page of the items matching q, in source order.
// The page number is clamped to the result size.
func (c *Client) Search(ctx context.Context, q Query) (p Page, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	req, err := request.New(q.Text, q.Types, q.Platforms, q.PageSize, q.Page, c.svc.Limits())
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}

	res, err := c.svc.Search(ctx, &req)
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}
	return pageFromDomain(res), nil
}

// Facets returns the type and platform facets of the loaded catalog.
func (c *Client) Facets(_ context.Context) Facets {
	return Facets{
		Types:     facetsFromDomain(c.cat.Types()),
		Platforms: facetsFromDomain(c.cat.Platforms()),
	}
}

// Info describes the loaded snapshot.
func (c *Client) Info() Info {
	return Info{
		SnapshotID: c.cat.ID(),
		Source:     c.cat.Source(),
		Items:      c.cat.Len(),
		LoadedAt:   c.cat.LoadedAt(),
	}
}

func itemFromDomain(it *item.Item) Item {
	return Item{
		Title:     it.Title(),
		Type:      it.Type(),
		Platform:  it.Platform(),
		Tags:      item.SplitTags(it.Tags()),
		Link:      it.Link(),
		Thumbnail: it.Thumbnail(),
	}
}

func pageFromDomain(p page.Page[item.Item]) Page {
	items := make([]Item, len(p.Items))
	for i := range p.Items {
		items[i] = itemFromDomain(&p.Items[i])
	}
	return Page{
		Items:      items,
		Number:     p.Number,
		Size:       p.Size,
		Total:      p.Total,
		TotalPages: p.TotalPages,
	}
}

func facetsFromDomain(ff []facet.Facet) []Facet {
	out := make([]Facet, len(ff))
	for i, f := range ff {
		out[i] = Facet{Value: f.Value(), Count: f.Count()}
	}
	return out
}
