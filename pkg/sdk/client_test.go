package catalog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/catalog/internal/config"
	dbRedis "github.com/kailas-cloud/catalog/internal/db/redis"
	"github.com/kailas-cloud/catalog/internal/domain/item"
	"github.com/kailas-cloud/catalog/internal/domain/search/page"
	"github.com/kailas-cloud/catalog/internal/domain/search/request"
)

const exampleDoc = `[
	{"Title": "Lego Set", "type": "Toy", "platform": "Store", "Tags": "kids,building"},
	{"Title": "Nintendo Switch", "type": "Console", "platform": "Nintendo", "Tags": "gaming"},
	{"Title": "Duplo Bricks", "type": "Toy", "platform": "Store"}
]`

// --- Mocks ---

type mockCatalogUC struct {
	err error
}

func (m *mockCatalogUC) Search(context.Context, *request.Request) (page.Page[item.Item], error) {
	return page.Page[item.Item]{}, m.err
}

func (m *mockCatalogUC) Limits() request.Limits { return request.DefaultLimits() }

// --- Helpers ---

func writeDoc(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func newFileClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithFile(writeDoc(t, exampleDoc))}, opts...)
	c, err := New(context.Background(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func titles(items []Item) string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return strings.Join(out, ",")
}

// --- New ---

func TestNew_File(t *testing.T) {
	path := writeDoc(t, exampleDoc)
	c, err := New(context.Background(), WithFile(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	info := c.Info()
	if info.Items != 3 {
		t.Errorf("Items = %d, want 3", info.Items)
	}
	if info.Source != "file:"+path {
		t.Errorf("Source = %q", info.Source)
	}
	if info.SnapshotID == "" || info.LoadedAt.IsZero() {
		t.Errorf("missing snapshot metadata: %+v", info)
	}
}

func TestNew_DefaultSourceMissing(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error: ./data.json does not exist here")
	}
	if !errors.Is(err, ErrCatalogLoad) || !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("error = %v, want ErrCatalogLoad and ErrSourceNotFound", err)
	}
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if le.Source != "file:./data.json" {
		t.Errorf("Source = %q", le.Source)
	}
}

func TestNew_InvalidJSON(t *testing.T) {
	_, err := New(context.Background(), WithFile(writeDoc(t, "{nope")))
	if !errors.Is(err, ErrCatalogLoad) {
		t.Fatalf("error = %v, want ErrCatalogLoad", err)
	}
}

func TestNew_InvalidLocale(t *testing.T) {
	_, err := New(context.Background(), WithFile(writeDoc(t, exampleDoc)), WithLocale("not a locale!"))
	if err == nil || !strings.Contains(err.Error(), "invalid locale") {
		t.Fatalf("error = %v, want invalid locale", err)
	}
}

func TestNew_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cache-Control") != "no-store" {
			t.Errorf("Cache-Control = %q", r.Header.Get("Cache-Control"))
		}
		_, _ = w.Write([]byte(exampleDoc))
	}))
	defer srv.Close()

	c, err := New(context.Background(), WithURL(srv.URL+"/data.json"), WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	if c.Info().Items != 3 {
		t.Errorf("Items = %d", c.Info().Items)
	}
}

func TestNew_URLStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(context.Background(), WithURL(srv.URL))
	if !errors.Is(err, ErrCatalogLoad) {
		t.Fatalf("error = %v, want ErrCatalogLoad", err)
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error should name the status: %v", err)
	}
}

func TestNew_RedisNoAddress(t *testing.T) {
	_, err := New(context.Background(), WithRedis("", "", ""))
	if err == nil || !strings.Contains(err.Error(), "address required") {
		t.Fatalf("error = %v", err)
	}
}

func TestCreateStore_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "memcached", addrs: []string{"localhost:1234"}}
	if _, err := createStore(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestStoreOption_DefaultKey(t *testing.T) {
	cfg := &clientConfig{}
	WithValkey("localhost:6379", "pw", "").apply(cfg)
	if cfg.source.Kind != config.SourceKV || cfg.source.Key != config.DefaultSourceKey {
		t.Errorf("source = %+v", cfg.source)
	}
	if cfg.driver != "valkey" || cfg.password != "pw" {
		t.Errorf("driver=%q password=%q", cfg.driver, cfg.password)
	}
}

func TestWireClient_KV(t *testing.T) {
	ctrl := gomock.NewController(t)
	rc := mock.NewClient(ctrl)

	rc.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "catalog:data")).
		Return(mock.Result(mock.RedisBlobString(exampleDoc)))
	rc.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))
	rc.EXPECT().Close()

	cfg := &clientConfig{source: config.SourceConfig{Kind: config.SourceKV, Key: config.DefaultSourceKey}}
	obs, _ := newObserver(nil, nil)
	c, err := wireClient(context.Background(), cfg, language.English, dbRedis.NewStoreForTest(rc), obs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	if c.Info().Source != "kv:catalog:data" {
		t.Errorf("Source = %q", c.Info().Source)
	}
	h := c.Health(context.Background())
	if h.Status != "ok" || h.Checks["database"] != "ok" || h.Checks["catalog"] != "ok" {
		t.Errorf("health = %+v", h)
	}
}

// --- Search ---

func TestSearch(t *testing.T) {
	c := newFileClient(t)
	ctx := context.Background()

	tests := []struct {
		name string
		q    Query
		want string
	}{
		{"all in source order", Query{}, "Lego Set,Nintendo Switch,Duplo Bricks"},
		{"text", Query{Text: "  SWITCH "}, "Nintendo Switch"},
		{"tag", Query{Text: "kids"}, "Lego Set"},
		{"type facet", Query{Types: []string{"Toy"}}, "Lego Set,Duplo Bricks"},
		{"facets are exact", Query{Types: []string{"toy"}}, ""},
		{"text and facets", Query{Text: "duplo", Platforms: []string{"Store"}}, "Duplo Bricks"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := c.Search(ctx, tt.q)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := titles(p.Items); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSearch_Paging(t *testing.T) {
	c := newFileClient(t)

	p, err := c.Search(context.Background(), Query{PageSize: 2, Page: 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Number != 2 || p.TotalPages != 2 || p.Total != 3 || len(p.Items) != 1 {
		t.Errorf("page = %+v", p)
	}
	if !p.HasPrev() || p.HasNext() {
		t.Errorf("HasPrev=%v HasNext=%v", p.HasPrev(), p.HasNext())
	}
	if p.Items[0].Title != "Duplo Bricks" || len(p.Items[0].Tags) != 0 {
		t.Errorf("item = %+v", p.Items[0])
	}
}

func TestSearch_QueryTooLong(t *testing.T) {
	c := newFileClient(t)
	_, err := c.Search(context.Background(), Query{Text: strings.Repeat("x", 5000)})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("error = %v, want ErrInvalidRequest", err)
	}
}

func TestSearch_ServiceError(t *testing.T) {
	obs, _ := newObserver(nil, nil)
	c := &Client{svc: &mockCatalogUC{err: ErrCatalogNotReady}, obs: obs}

	_, err := c.Search(context.Background(), Query{})
	if !errors.Is(err, ErrCatalogNotReady) {
		t.Fatalf("error = %v, want ErrCatalogNotReady", err)
	}
}

// --- Facets, Info, Health ---

func TestFacets(t *testing.T) {
	c := newFileClient(t)
	f := c.Facets(context.Background())

	if len(f.Types) != 2 || f.Types[0] != (Facet{"Console", 1}) || f.Types[1] != (Facet{"Toy", 2}) {
		t.Errorf("types = %+v", f.Types)
	}
	if len(f.Platforms) != 2 || f.Platforms[1] != (Facet{"Store", 2}) {
		t.Errorf("platforms = %+v", f.Platforms)
	}
}

func TestHealth_File(t *testing.T) {
	c := newFileClient(t)
	h := c.Health(context.Background())
	if h.Status != "ok" || !h.Ready() {
		t.Errorf("health = %+v", h)
	}
	if _, ok := h.Checks[CheckDatabase]; ok {
		t.Error("file source should not report a database check")
	}
}

// --- Observability ---

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newFileClient(t, WithMetricsRegisterer(reg))

	if _, err := c.Search(context.Background(), Query{Text: "lego"}); err != nil {
		t.Fatal(err)
	}
	_, _ = c.Search(context.Background(), Query{Text: strings.Repeat("x", 5000)})

	m := c.obs.metrics
	if got := testutil.ToFloat64(m.operations.WithLabelValues("load", "ok")); got != 1 {
		t.Errorf("load ok = %v", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("search", "ok")); got != 1 {
		t.Errorf("search ok = %v", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("search", "error")); got != 1 {
		t.Errorf("search error = %v", got)
	}
	if got := testutil.ToFloat64(m.items); got != 3 {
		t.Errorf("items = %v", got)
	}
}

func TestMetrics_ReuseRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := newFileClient(t, WithMetricsRegisterer(reg))
	b := newFileClient(t, WithMetricsRegisterer(reg))

	if a.obs.metrics.operations != b.obs.metrics.operations {
		t.Error("second client should reuse the registered counter")
	}
	if got := testutil.ToFloat64(a.obs.metrics.operations.WithLabelValues("load", "ok")); got != 2 {
		t.Errorf("load ok = %v, want 2", got)
	}
}

func TestRegisterOrReuse_IncompatibleType(t *testing.T) {
	reg := prometheus.NewRegistry()
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "catalog", Subsystem: "sdk", Name: "items", Help: "x"})
	if err := registerOrReuse(reg, &gauge); err != nil {
		t.Fatal(err)
	}

	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "catalog", Subsystem: "sdk", Name: "items", Help: "x"}, nil)
	if err := registerOrReuse(reg, &counter); err == nil {
		t.Fatal("expected error for incompatible collector")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := newFileClient(t, WithLogger(logger))

	_, _ = c.Search(context.Background(), Query{Text: strings.Repeat("x", 5000)})

	out := buf.String()
	for _, want := range []string{"catalog loaded", "items=3", "operation failed", "op=search"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestObserver_LoadFailed(t *testing.T) {
	var buf bytes.Buffer
	obs, _ := newObserver(slog.New(slog.NewTextHandler(&buf, nil)), nil)
	obs.LoadFailed("file:x.json", time.Millisecond)
	if !strings.Contains(buf.String(), "file:x.json") {
		t.Errorf("log output = %s", buf.String())
	}
}

func TestObserver_Nil(t *testing.T) {
	var o *observer
	o.observe("search", time.Now(), nil) // must not panic
}
