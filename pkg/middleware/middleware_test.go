package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// the instrument set is a package singleton, so one test exercises the
// full surface against one private registry.
func TestPrometheusMiddlewareAndRecorders(t *testing.T) {
	reg := prometheus.NewRegistry()
	mw := Prometheus(WithRegistry(reg), WithNamespace("wefttest"))

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("middleware swallowed the response: code = %d", rec.Code)
	}

	m := globalMetrics
	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("/ws", "418")); got != 1 {
		t.Errorf("http_requests_total = %v, want 1", got)
	}

	RecordEvent("click", 2*time.Millisecond, true)
	RecordEvent("click", time.Millisecond, false)
	if got := testutil.ToFloat64(m.eventsTotal.WithLabelValues("click", "success")); got != 1 {
		t.Errorf("events_total{success} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.eventsTotal.WithLabelValues("click", "error")); got != 1 {
		t.Errorf("events_total{error} = %v, want 1", got)
	}

	RecordFlush(7)
	if got := testutil.ToFloat64(m.mutationsSent); got != 7 {
		t.Errorf("mutations_sent_total = %v, want 7", got)
	}
	if got := testutil.ToFloat64(m.flushesTotal); got != 1 {
		t.Errorf("flushes_total = %v, want 1", got)
	}

	RecordSessionOpen()
	RecordSessionOpen()
	RecordSessionClose()
	if got := testutil.ToFloat64(m.activeSessions); got != 1 {
		t.Errorf("active_sessions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.sessionsTotal); got != 2 {
		t.Errorf("sessions_total = %v, want 2", got)
	}

	RecordWebSocketError("read")
	if got := testutil.ToFloat64(m.wsErrors.WithLabelValues("read")); got != 1 {
		t.Errorf("websocket_errors_total{read} = %v, want 1", got)
	}
}

func TestRecordersNoOpBeforeInit(t *testing.T) {
	// Cannot reset the singleton; just verify the nil guard shape by
	// calling through a fresh copy of the guard logic.
	saved := globalMetrics
	globalMetrics = nil
	defer func() { globalMetrics = saved }()

	RecordEvent("click", time.Millisecond, true)
	RecordFlush(1)
	RecordBuild(time.Millisecond)
	RecordSessionOpen()
	RecordSessionClose()
	RecordWebSocketError("x")
}

func TestStartEventSpanBeforeInitIsNoOp(t *testing.T) {
	globalOTelMu.Lock()
	saved, savedTracer := globalOTel, globalTracer
	globalOTel, globalTracer = nil, nil
	globalOTelMu.Unlock()
	defer func() {
		globalOTelMu.Lock()
		globalOTel, globalTracer = saved, savedTracer
		globalOTelMu.Unlock()
	}()

	ctx, end := StartEventSpan(context.Background(), "sid", "click", 3)
	if ctx == nil {
		t.Fatalf("StartEventSpan returned nil context")
	}
	end(nil)
}

func TestOpenTelemetryMiddlewarePassesThrough(t *testing.T) {
	mw := OpenTelemetry(
		WithTracerName("wefttest"),
		WithEventFilter(func(evType string) bool { return evType != "mousemove" }),
	)

	called := false
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if !called {
		t.Fatalf("wrapped handler never ran")
	}

	// Filtered events produce usable no-ops.
	_, end := StartEventSpan(context.Background(), "sid", "mousemove", 1)
	end(nil)

	_, end = StartEventSpan(context.Background(), "sid", "click", 1)
	end(nil)
}
