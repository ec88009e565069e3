// Package telemetry defines the structured logging, tracing, and metrics
// facade used throughout the generator and orchestrator. Concrete
// implementations live alongside this file (Noop for tests, Clue/OTel-backed
// for production); callers depend only on these interfaces.
package telemetry

import "context"

type (
	// Logger emits structured, leveled log entries as key-value pairs.
	Logger interface {
		// Debug logs low-level diagnostic detail.
		Debug(ctx context.Context, msg string, kv ...any)
		// Info logs a routine operational event.
		Info(ctx context.Context, msg string, kv ...any)
		// Error logs a failure; kv should include the error under key "error".
		Error(ctx context.Context, msg string, kv ...any)
	}

	// Tracer creates spans bracketing a unit of work (a heartbeat, a tool
	// dispatch, a scenario load).
	Tracer interface {
		Start(ctx context.Context, name string) (context.Context, Span)
	}

	// Span is a single traced operation.
	Span interface {
		// SetAttribute attaches a key-value pair to the span.
		SetAttribute(key string, value any)
		// RecordError marks the span as failed.
		RecordError(err error)
		// End finishes the span.
		End()
	}

	// Metrics records counters and durations for operational monitoring.
	Metrics interface {
		// IncrCounter increments a named counter by delta.
		IncrCounter(name string, delta int64, tags ...string)
		// ObserveDuration records a duration sample in seconds.
		ObserveDuration(name string, seconds float64, tags ...string)
	}
)
