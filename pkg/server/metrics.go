package server

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/seqalign/pkg/observability"
)

// =============================================================================
// Prometheus Metrics
// =============================================================================

// Metrics records pipeline, cache and HTTP events as Prometheus metrics.
// It implements every observability hook interface; register it with
// observability.SetPipelineHooks and friends.
type Metrics struct {
	alignDuration     *prometheus.HistogramVec
	alignCells        prometheus.Histogram
	tracebackDuration *prometheus.HistogramVec
	alignments        prometheus.Histogram
	renderDuration    *prometheus.HistogramVec
	cacheEvents       *prometheus.CounterVec
	cacheBytes        *prometheus.CounterVec
	requests          *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		alignDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "seqalign",
			Subsystem: "pipeline",
			Name:      "fill_duration_seconds",
			Help:      "Matrix fill duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"status"}),
		alignCells: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "seqalign",
			Subsystem: "pipeline",
			Name:      "matrix_cells",
			Help:      "Number of cells in filled matrices",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 10),
		}),
		tracebackDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "seqalign",
			Subsystem: "pipeline",
			Name:      "traceback_duration_seconds",
			Help:      "Traceback duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"status"}),
		alignments: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "seqalign",
			Subsystem: "pipeline",
			Name:      "optimal_alignments",
			Help:      "Number of optimal alignments per traceback",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		renderDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "seqalign",
			Subsystem: "pipeline",
			Name:      "render_duration_seconds",
			Help:      "Render duration in seconds per batch of formats",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		cacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seqalign",
			Subsystem: "cache",
			Name:      "events_total",
			Help:      "Cache lookups and writes by key type and result",
		}, []string{"key_type", "event"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seqalign",
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache by key type",
		}, []string{"key_type"}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seqalign",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "seqalign",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Register installs m as the global pipeline, cache and HTTP hooks.
func (m *Metrics) Register() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnAlignStart(ctx context.Context, rows, cols int) {}

func (m *Metrics) OnAlignComplete(ctx context.Context, rows, cols int, d time.Duration, err error) {
	m.alignDuration.WithLabelValues(status(err)).Observe(d.Seconds())
	if err == nil {
		m.alignCells.Observe(float64(rows * cols))
	}
}

func (m *Metrics) OnTracebackComplete(ctx context.Context, n int, d time.Duration, err error) {
	m.tracebackDuration.WithLabelValues(status(err)).Observe(d.Seconds())
	if err == nil {
		m.alignments.Observe(float64(n))
	}
}

func (m *Metrics) OnRenderStart(ctx context.Context, formats []string) {}

func (m *Metrics) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	m.renderDuration.WithLabelValues(status(err)).Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(ctx context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(ctx context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(ctx context.Context, keyType string, size int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Metrics) OnRequest(ctx context.Context, method, route string) {}

func (m *Metrics) OnResponse(ctx context.Context, method, route string, code int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)
