package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for Weft applications.
const defaultTracerName = "weft"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "weft").
	TracerName string

	// IncludeSessionID includes the remote session id in spans.
	// Enabled by default.
	IncludeSessionID bool

	// Filter determines which events to trace. Return true to trace.
	// If nil, all events are traced.
	Filter func(evType string) bool

	// AttributeExtractor adds custom attributes to every event span.
	AttributeExtractor func(sessionID, evType string) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeSessionID enables/disables session ids in spans.
func WithIncludeSessionID(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeSessionID = include
	}
}

// WithEventFilter sets a filter for event spans by event type.
func WithEventFilter(filter func(evType string) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(sessionID, evType string) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:       defaultTracerName,
		IncludeSessionID: true,
	}
}

// Tracing state resolved by OpenTelemetry(); event spans are no-ops
// before initialization.
var (
	globalOTel   *OTelConfig
	globalTracer trace.Tracer
	globalOTelMu sync.Mutex
)

// OpenTelemetry creates HTTP middleware that traces requests and
// enables per-event spans through StartEventSpan.
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it
// in main() before starting the server:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) func(http.Handler) http.Handler {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalOTelMu.Lock()
	globalOTel = &config
	globalTracer = otel.Tracer(config.TracerName)
	tracer := globalTracer
	globalOTelMu.Unlock()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(
				r.Context(),
				fmt.Sprintf("weft %s", r.URL.Path),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attribute.String("http.path", r.URL.Path)),
			)
			defer span.End()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StartEventSpan starts a span for one remote event dispatch. end must
// be called with the dispatch outcome. Before OpenTelemetry() runs, or
// when the filter rejects the event, both returns are usable no-ops.
func StartEventSpan(ctx context.Context, sessionID, evType string, node uint32) (context.Context, func(err error)) {
	globalOTelMu.Lock()
	config := globalOTel
	tracer := globalTracer
	globalOTelMu.Unlock()

	if config == nil || (config.Filter != nil && !config.Filter(evType)) {
		return ctx, func(error) {}
	}

	attrs := []attribute.KeyValue{
		attribute.String("weft.event_type", evType),
		attribute.Int64("weft.event_target", int64(node)),
	}
	if config.IncludeSessionID {
		attrs = append(attrs, attribute.String("weft.session_id", sessionID))
	}
	if config.AttributeExtractor != nil {
		attrs = append(attrs, config.AttributeExtractor(sessionID, evType)...)
	}

	spanCtx, span := tracer.Start(
		ctx,
		fmt.Sprintf("weft.event %s", evType),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...),
	)

	return spanCtx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}
