package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// sdkMetrics holds prometheus metrics registered for the SDK.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	items      prometheus.Gauge
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Total SDK operations by type and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "catalog",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		items: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "catalog",
			Subsystem: "sdk",
			Name:      "items",
			Help:      "Number of items in the loaded catalog.",
		}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.items); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("catalog: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("catalog: register metric: %w", err)
	}
	return nil
}

// errLoadFailed marks a failed load in the operation log; New returns the real error.
var errLoadFailed = errors.New("load failed")

// observer provides logging and metrics for SDK operations.
// It also receives load measurements from the catalog service.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func (o *observer) observe(op string, start time.Time, err error) {
	o.record(op, time.Since(start), err)
}

func (o *observer) record(op string, dur time.Duration, err error) {
	if o == nil {
		return
	}

	if o.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		o.metrics.operations.WithLabelValues(op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger != nil {
		if err != nil {
			o.logger.Warn("operation failed",
				"op", op,
				"duration", dur,
				"error", err,
			)
		} else {
			o.logger.Debug("operation completed",
				"op", op,
				"duration", dur,
			)
		}
	}
}

// LoadCompleted records a successful catalog load.
func (o *observer) LoadCompleted(source string, dur time.Duration, items, types, platforms int) {
	o.record("load", dur, nil)
	if o.metrics != nil {
		o.metrics.items.Set(float64(items))
	}
	if o.logger != nil {
		o.logger.Info("catalog loaded",
			"source", source,
			"items", items,
			"types", types,
			"platforms", platforms,
		)
	}
}

// LoadFailed records a failed catalog load.
func (o *observer) LoadFailed(source string, dur time.Duration) {
	o.record("load", dur, fmt.Errorf("%s: %w", source, errLoadFailed))
}

// Searched is a no-op: Client.Search observes searches itself, errors included.
func (o *observer) Searched(time.Duration, int) {}
