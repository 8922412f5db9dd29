package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "weft").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "weft",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus instruments for Weft.
type metrics struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	eventsTotal   *prometheus.CounterVec
	eventDuration *prometheus.HistogramVec
	flushesTotal  prometheus.Counter
	flushSize     prometheus.Histogram
	mutationsSent prometheus.Counter
	buildsTotal   prometheus.Counter
	buildDuration prometheus.Histogram

	activeSessions prometheus.Gauge
	sessionsTotal  prometheus.Counter
	wsErrors       *prometheus.CounterVec
}

// globalMetrics is the singleton instrument set, created on the first
// Prometheus() call. Recording helpers are no-ops before that.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_requests_total",
			Help:        "Total HTTP requests by path and status code",
			ConstLabels: config.ConstLabels,
		}, []string{"path", "code"}),

		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"path"}),

		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total client events dispatched, by type and status",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Event dispatch duration in seconds, flush included",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"type"}),

		flushesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushes_total",
			Help:        "Total scheduler flushes that produced mutations",
			ConstLabels: config.ConstLabels,
		}),

		flushSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_mutations",
			Help:        "Mutations per flushed batch",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{1, 5, 10, 25, 50, 100, 250, 1000},
		}),

		mutationsSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mutations_sent_total",
			Help:        "Total tree mutations sent to clients",
			ConstLabels: config.ConstLabels,
		}),

		buildsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "builds_total",
			Help:        "Total blueprint builds",
			ConstLabels: config.ConstLabels,
		}),

		buildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "build_duration_seconds",
			Help:        "Blueprint build duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of active remote sessions",
			ConstLabels: config.ConstLabels,
		}),

		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "sessions_total",
			Help:        "Total remote sessions ever opened",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total websocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Prometheus creates HTTP middleware that records request metrics and
// initializes the instrument set the recording helpers feed.
//
// Metrics collected:
//   - weft_http_requests_total / weft_http_request_duration_seconds
//   - weft_events_total / weft_event_duration_seconds
//   - weft_flushes_total / weft_flush_mutations / weft_mutations_sent_total
//   - weft_builds_total / weft_build_duration_seconds
//   - weft_active_sessions / weft_sessions_total
//   - weft_websocket_errors_total
//
// Example:
//
//	r := chi.NewRouter()
//	r.Use(middleware.Prometheus(middleware.WithNamespace("myapp")))
//	r.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) func(http.Handler) http.Handler {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "" {
				path = "/"
			}

			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(sw, r)

			m.httpDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
			m.httpRequests.WithLabelValues(path, strconv.Itoa(sw.code)).Inc()
		})
	}
}

// statusWriter captures the response code for the request counter.
type statusWriter struct {
	http.ResponseWriter
	code    int
	written bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.written {
		w.code = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// =============================================================================
// Recording helpers
// =============================================================================

// RecordEvent records one dispatched client event.
func RecordEvent(evType string, d time.Duration, ok bool) {
	if globalMetrics == nil {
		return
	}
	status := "success"
	if !ok {
		status = "error"
	}
	globalMetrics.eventsTotal.WithLabelValues(evType, status).Inc()
	globalMetrics.eventDuration.WithLabelValues(evType).Observe(d.Seconds())
}

// RecordFlush records one mutation batch leaving the scheduler.
func RecordFlush(mutations int) {
	if globalMetrics == nil {
		return
	}
	globalMetrics.flushesTotal.Inc()
	globalMetrics.flushSize.Observe(float64(mutations))
	globalMetrics.mutationsSent.Add(float64(mutations))
}

// RecordBuild records one blueprint build.
func RecordBuild(d time.Duration) {
	if globalMetrics == nil {
		return
	}
	globalMetrics.buildsTotal.Inc()
	globalMetrics.buildDuration.Observe(d.Seconds())
}

// RecordSessionOpen records a new remote session.
func RecordSessionOpen() {
	if globalMetrics == nil {
		return
	}
	globalMetrics.activeSessions.Inc()
	globalMetrics.sessionsTotal.Inc()
}

// RecordSessionClose records a remote session ending.
func RecordSessionClose() {
	if globalMetrics == nil {
		return
	}
	globalMetrics.activeSessions.Dec()
}

// RecordWebSocketError records a websocket error by category.
func RecordWebSocketError(errorType string) {
	if globalMetrics == nil {
		return
	}
	globalMetrics.wsErrors.WithLabelValues(errorType).Inc()
}
