package catalog

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/catalog/internal/config"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	source     config.SourceConfig
	httpClient *http.Client

	driver     string // "valkey" or "redis"
	addrs      []string
	password   string
	standalone bool

	locale          string
	defaultPageSize int
	maxPageSize     int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithFile reads the catalog from a local JSON file. This is the default,
// with path ./data.json.
func WithFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.source = config.SourceConfig{Kind: config.SourceFile, Path: path}
	})
}

// WithURL reads the catalog from an HTTP(S) URL.
func WithURL(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.source = config.SourceConfig{Kind: config.SourceHTTP, URL: url}
	})
}

// WithHTTPClient sets the client used by WithURL. Defaults to one with a 30s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithRedis reads the catalog from key in a Redis instance.
// An empty key means "catalog:data".
func WithRedis(addr, password, key string) Option {
	return storeOption("redis", addr, password, key)
}

// WithValkey reads the catalog from key in a Valkey instance.
// An empty key means "catalog:data".
func WithValkey(addr, password, key string) Option {
	return storeOption("valkey", addr, password, key)
}

func storeOption(driver, addr, password, key string) Option {
	return optionFunc(func(c *clientConfig) {
		if key == "" {
			key = config.DefaultSourceKey
		}
		c.source = config.SourceConfig{Kind: config.SourceKV, Key: key}
		c.driver = driver
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithStandalone disables cluster topology discovery for WithRedis/WithValkey.
func WithStandalone() Option {
	return optionFunc(func(c *clientConfig) {
		c.standalone = true
	})
}

// WithLocale sets the BCP 47 tag used to order facet values. Default: "en".
func WithLocale(tag string) Option {
	return optionFunc(func(c *clientConfig) {
		c.locale = tag
	})
}

// WithPagination sets the default and maximum page sizes. Defaults: 100 and 1000.
func WithPagination(defaultPageSize, maxPageSize int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultPageSize = defaultPageSize
		c.maxPageSize = maxPageSize
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithMetricsRegisterer registers SDK metrics (operation counts, durations and
// catalog size) on the given registerer. Pass nil to disable (default).
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
