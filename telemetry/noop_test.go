package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/crisisbench/crisisbench/telemetry"
)

func TestNoopImplementationsDoNotPanic(t *testing.T) {
	logger := telemetry.NewNoopLogger()
	logger.Debug(context.Background(), "debug", "k", "v")
	logger.Info(context.Background(), "info")
	logger.Error(context.Background(), "error", "error", errors.New("boom"))

	tracer := telemetry.NewNoopTracer()
	ctx, span := tracer.Start(context.Background(), "op")
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	span.SetAttribute("k", "v")
	span.RecordError(errors.New("boom"))
	span.End()

	metrics := telemetry.NewNoopMetrics()
	metrics.IncrCounter("count", 1, "tag")
	metrics.ObserveDuration("duration", 0.5, "tag")
}
