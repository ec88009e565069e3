package telemetry

import (
	"context"
	"fmt"

	"goa.design/clue/log"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
	oteltrace "go.opentelemetry.io/otel/trace"
)

func attributeFor(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}

// ClueLogger wraps goa.design/clue/log. Configure the context passed to its
// methods beforehand with log.Context / log.WithFormat / log.WithDebug as the
// host application requires; ClueLogger itself holds no state.
type ClueLogger struct{}

// NewClueLogger returns a Logger backed by clue's structured logger.
func NewClueLogger() Logger { return ClueLogger{} }

func (ClueLogger) Debug(ctx context.Context, msg string, kv ...any) {
	log.Debug(ctx, msg, toClueKV(kv)...)
}

func (ClueLogger) Info(ctx context.Context, msg string, kv ...any) {
	log.Info(ctx, msg, toClueKV(kv)...)
}

func (ClueLogger) Error(ctx context.Context, msg string, kv ...any) {
	log.Error(ctx, msg, toClueKV(kv)...)
}

func toClueKV(kv []any) []log.Fielder {
	fields := make([]log.Fielder, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		fields = append(fields, log.KV{K: key, V: kv[i+1]})
	}
	return fields
}

// OtelTracer wraps an OpenTelemetry tracer.
type OtelTracer struct {
	tracer oteltrace.Tracer
}

// NewOtelTracer returns a Tracer backed by the given OpenTelemetry tracer.
func NewOtelTracer(tracer oteltrace.Tracer) Tracer {
	return OtelTracer{tracer: tracer}
}

func (t OtelTracer) Start(ctx context.Context, name string) (context.Context, Span) {
	spanCtx, span := t.tracer.Start(ctx, name)
	return spanCtx, otelSpan{span: span}
}

type otelSpan struct {
	span oteltrace.Span
}

func (s otelSpan) SetAttribute(key string, value any) {
	s.span.SetAttributes(attributeFor(key, value))
}

func (s otelSpan) RecordError(err error) {
	s.span.RecordError(err)
}

func (s otelSpan) End() {
	s.span.End()
}

// OtelMetrics wraps an OpenTelemetry meter, lazily creating instruments per
// counter/histogram name on first use.
type OtelMetrics struct {
	meter otelmetric.Meter
}

// NewOtelMetrics returns a Metrics backed by the given OpenTelemetry meter.
func NewOtelMetrics(meter otelmetric.Meter) Metrics {
	return OtelMetrics{meter: meter}
}

func (m OtelMetrics) IncrCounter(name string, delta int64, tags ...string) {
	counter, err := m.meter.Int64Counter(name)
	if err != nil {
		return
	}
	counter.Add(nil, delta) //nolint:staticcheck // nil context acceptable for fire-and-forget counters.
	_ = tags
}

func (m OtelMetrics) ObserveDuration(name string, seconds float64, tags ...string) {
	hist, err := m.meter.Float64Histogram(name)
	if err != nil {
		return
	}
	hist.Record(nil, seconds) //nolint:staticcheck
	_ = tags
}
