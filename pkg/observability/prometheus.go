package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "famlayout"

// Metrics implements every hook interface on top of Prometheus collectors.
// All collectors are registered on the registry passed to [NewMetrics], so
// several instances can coexist in tests.
type Metrics struct {
	gatherer prometheus.Gatherer

	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec

	layoutPeople    prometheus.Histogram
	layoutConflicts *prometheus.CounterVec

	storeOps   *prometheus.CounterVec
	storeBytes prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpErrors   *prometheus.CounterVec
}

// NewMetrics registers the famlayout collectors on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,

		stageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"stage"}),
		stageErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_errors_total",
			Help:      "Pipeline stage failures",
		}, []string{"stage"}),

		layoutPeople: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "positioned_people",
			Help:      "People positioned per layout",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		layoutConflicts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "conflicts_total",
			Help:      "Conflicts left in finished layouts",
		}, []string{"kind"}),

		storeOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Family store operations by backend and result",
		}, []string{"backend", "result"}),
		storeBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the family store",
		}),

		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP responses by route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "errors_total",
			Help:      "Handler failures by route",
		}, []string{"method", "route"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// =============================================================================
// PipelineHooks
// =============================================================================

func (m *Metrics) OnLoadStart(context.Context, string) {}

func (m *Metrics) OnLoadComplete(_ context.Context, _ string, _ int, d time.Duration, err error) {
	m.stage("load", d, err)
}

func (m *Metrics) OnLayoutStart(context.Context, string, int) {}

func (m *Metrics) OnLayoutComplete(_ context.Context, _ string, s LayoutStats, d time.Duration, err error) {
	m.stage("layout", d, err)
	if err != nil {
		return
	}
	m.layoutPeople.Observe(float64(s.Positioned))
	m.layoutConflicts.WithLabelValues("position").Add(float64(s.PositionConflicts))
	m.layoutConflicts.WithLabelValues("connection").Add(float64(s.ConnectionConflicts))
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	m.stage("render", d, err)
}

func (m *Metrics) stage(name string, d time.Duration, err error) {
	m.stageDuration.WithLabelValues(name).Observe(d.Seconds())
	if err != nil {
		m.stageErrors.WithLabelValues(name).Inc()
	}
}

// =============================================================================
// StoreHooks
// =============================================================================

func (m *Metrics) OnStoreHit(_ context.Context, backend string) {
	m.storeOps.WithLabelValues(backend, "hit").Inc()
}

func (m *Metrics) OnStoreMiss(_ context.Context, backend string) {
	m.storeOps.WithLabelValues(backend, "miss").Inc()
}

func (m *Metrics) OnStorePut(_ context.Context, backend string, size int) {
	m.storeOps.WithLabelValues(backend, "put").Inc()
	m.storeBytes.Add(float64(size))
}

// =============================================================================
// HTTPHooks
// =============================================================================

func (m *Metrics) OnRequest(context.Context, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, method, route string, _ error) {
	m.httpErrors.WithLabelValues(method, route).Inc()
}

var (
	_ PipelineHooks = (*Metrics)(nil)
	_ StoreHooks    = (*Metrics)(nil)
	_ HTTPHooks     = (*Metrics)(nil)
)
