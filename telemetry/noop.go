package telemetry

import "context"

type (
	noopLogger struct{}
	noopTracer struct{}
	noopSpan   struct{}
	noopMetrics struct{}
)

// NewNoopLogger returns a Logger that discards everything. Useful as the
// default in tests and for callers that have not wired telemetry.
func NewNoopLogger() Logger { return noopLogger{} }

func (noopLogger) Debug(context.Context, string, ...any) {}
func (noopLogger) Info(context.Context, string, ...any)  {}
func (noopLogger) Error(context.Context, string, ...any) {}

// NewNoopTracer returns a Tracer whose spans record nothing.
func NewNoopTracer() Tracer { return noopTracer{} }

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, noopSpan{}
}

func (noopSpan) SetAttribute(string, any) {}
func (noopSpan) RecordError(error)        {}
func (noopSpan) End()                     {}

// NewNoopMetrics returns a Metrics that discards every observation.
func NewNoopMetrics() Metrics { return noopMetrics{} }

func (noopMetrics) IncrCounter(string, int64, ...string)     {}
func (noopMetrics) ObserveDuration(string, float64, ...string) {}
