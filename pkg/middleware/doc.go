// Package middleware provides production middleware for Weft servers.
//
// This package includes:
//   - Prometheus metrics middleware and recording helpers
//   - OpenTelemetry tracing middleware and per-event spans
//
// # Prometheus Metrics
//
// The Prometheus middleware records HTTP request metrics and initializes
// the instruments the runtime-side recording helpers feed (events,
// flushes, builds, sessions):
//
//	r := chi.NewRouter()
//	r.Use(middleware.Prometheus())
//	r.Handle("/metrics", promhttp.Handler())
//
// The recording helpers (RecordEvent, RecordFlush, RecordSessionOpen,
// ...) are safe to call before initialization; they no-op until the
// middleware has run once.
//
// # OpenTelemetry
//
// The OpenTelemetry middleware traces HTTP requests and enables a span
// per remote event dispatch via StartEventSpan. It uses the global
// tracer provider; configure one in main() before serving.
package middleware
