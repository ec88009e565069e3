package runtime

import (
	"context"

	"github.com/crisisbench/crisisbench/telemetry"
)

// Handler is the capability pair every tool handler implements: whether it
// serves a given tool name, and how it serves a call to one it claims.
// Deliberately an interface, not a base class with overrides — handler
// registration is an ordered list, not a hierarchy.
type Handler interface {
	Name() string
	CanHandle(toolName string) bool
	Handle(ctx context.Context, toolName string, args map[string]any) ToolResponse
}

// ToolRouter dispatches a tool call to the first registered handler willing
// to serve it (§4.3.4). Handler order is a deterministic tiebreak; handlers
// in this version are chosen so no two overlap on a tool name, but the
// router itself doesn't enforce that — it just takes the first match.
type ToolRouter struct {
	handlers []Handler
	tracer   telemetry.Tracer
	metrics  telemetry.Metrics
}

// NewToolRouter constructs a router over handlers, in registration order.
// Tracing/metrics default to noop; the orchestrator wires real ones in via
// SetTelemetry once constructed.
func NewToolRouter(handlers ...Handler) *ToolRouter {
	return &ToolRouter{handlers: handlers, tracer: telemetry.NewNoopTracer(), metrics: telemetry.NewNoopMetrics()}
}

// SetTelemetry replaces the router's tracer and metrics sink. Called once by
// NewOrchestrator; nil arguments leave the corresponding noop in place.
func (r *ToolRouter) SetTelemetry(tracer telemetry.Tracer, metrics telemetry.Metrics) {
	if tracer != nil {
		r.tracer = tracer
	}
	if metrics != nil {
		r.metrics = metrics
	}
}

// Dispatch routes one tool call and reports which handler served it.
// routedTo is "" when no handler matched. The dispatch is wrapped in a span
// so a trace backend can show per-tool latency alongside the heartbeat that
// triggered it.
func (r *ToolRouter) Dispatch(ctx context.Context, toolName string, args map[string]any) (resp ToolResponse, routedTo string) {
	ctx, span := r.tracer.Start(ctx, "tool_dispatch")
	span.SetAttribute("tool_name", toolName)
	defer span.End()

	for _, h := range r.handlers {
		if h.CanHandle(toolName) {
			resp = h.Handle(ctx, toolName, args)
			routedTo = h.Name()
			span.SetAttribute("routed_to", routedTo)
			r.metrics.IncrCounter("tool_dispatch_total", 1, "tool", toolName, "routed_to", routedTo)
			return resp, routedTo
		}
	}
	span.SetAttribute("routed_to", "")
	r.metrics.IncrCounter("tool_dispatch_unrouted_total", 1, "tool", toolName)
	return ErrorResponse("Unknown tool"), ""
}
