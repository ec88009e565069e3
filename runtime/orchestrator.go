package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/crisisbench/crisisbench/internal/schemavalidate"
	"github.com/crisisbench/crisisbench/runtime/llm"
	"github.com/crisisbench/crisisbench/scenario"
	"github.com/crisisbench/crisisbench/telemetry"
)

// Orchestrator replays a loaded scenario against an LLM agent: single-task
// cooperative async, one heartbeat processed to completion before the next
// begins (§4.3.2). It holds exactly one in-process mutable resource across a
// run, the action log, plus the on-disk working memory directory.
type Orchestrator struct {
	pkg             *scenario.ScenarioPackage
	workDir         string
	systemPrompt    *SystemPrompt
	client          llm.Client
	config          RunConfig
	actionLog       *ActionLog
	router          *ToolRouter
	scenarioHandler *ScenarioDataHandler
	toolSchemas     map[string]*jsonschema.Schema
	logger          telemetry.Logger
	tracer          telemetry.Tracer
	metrics         telemetry.Metrics
}

// OrchestratorOption configures optional telemetry on an Orchestrator. Like
// the teacher's RuntimeOption pattern, unset options fall back to noop
// implementations rather than requiring every caller to thread them through.
type OrchestratorOption func(*Orchestrator)

// WithTracer sets the span tracer used to bracket each heartbeat and tool
// dispatch.
func WithTracer(tracer telemetry.Tracer) OrchestratorOption {
	return func(o *Orchestrator) { o.tracer = tracer }
}

// WithMetrics sets the counter/histogram sink used for heartbeat and tool
// dispatch metrics.
func WithMetrics(metrics telemetry.Metrics) OrchestratorOption {
	return func(o *Orchestrator) { o.metrics = metrics }
}

// NewOrchestrator constructs an Orchestrator over a loaded scenario. The
// system prompt is rendered once here and reused, byte-identical, for every
// heartbeat (§4.3.8).
func NewOrchestrator(loaded *LoadedScenario, client llm.Client, config RunConfig, logger telemetry.Logger, opts ...OrchestratorOption) (*Orchestrator, error) {
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	prompt, err := BuildSystemPrompt(loaded.Package.Person(), loaded.Package.AgentIdentity())
	if err != nil {
		return nil, err
	}
	scenarioHandler := NewScenarioDataHandler(loaded.Package)
	memoryHandler := NewMemoryHandler(loaded.WorkDir)

	schemas := make(map[string]*jsonschema.Schema, len(loaded.Package.ToolDefinitions()))
	for _, t := range loaded.Package.ToolDefinitions() {
		schema, err := t.Schema()
		if err != nil {
			return nil, fmt.Errorf("runtime: compiling schema for tool %q: %w", t.Name(), err)
		}
		schemas[t.Name()] = schema
	}

	router := NewToolRouter(scenarioHandler, memoryHandler)

	o := &Orchestrator{
		pkg:             loaded.Package,
		workDir:         loaded.WorkDir,
		systemPrompt:    prompt,
		client:          client,
		config:          config.WithDefaults(),
		actionLog:       NewActionLog(),
		router:          router,
		scenarioHandler: scenarioHandler,
		toolSchemas:     schemas,
		logger:          logger,
		tracer:          telemetry.NewNoopTracer(),
		metrics:         telemetry.NewNoopMetrics(),
	}
	for _, opt := range opts {
		opt(o)
	}
	router.SetTelemetry(o.tracer, o.metrics)

	return o, nil
}

// ActionLog exposes the orchestrator's rolling action log, primarily for
// tests and for callers that want to inspect it after a run completes.
func (o *Orchestrator) ActionLog() *ActionLog { return o.actionLog }

// RunBenchmark is the importable entry point: load scenarioDirectory, drive
// the heartbeat loop against client under config, and return the completed
// transcript (§4.3.1).
func RunBenchmark(ctx context.Context, scenarioDirectory string, config RunConfig, client llm.Client, logger telemetry.Logger, opts ...OrchestratorOption) (*RunTranscript, error) {
	tracer, _ := resolveTelemetryOptions(opts)

	loaded, err := LoadScenario(scenarioDirectory, WithLoadTracer(tracer))
	if err != nil {
		return nil, err
	}
	orch, err := NewOrchestrator(loaded, client, config, logger, opts...)
	if err != nil {
		return nil, err
	}
	return orch.Run(ctx)
}

// resolveTelemetryOptions applies opts to a throwaway Orchestrator and
// returns the tracer/metrics they selected (noop if none), so callers that
// need telemetry before an Orchestrator exists — RunBenchmark's LoadScenario
// call — can share the same options the orchestrator itself will use.
func resolveTelemetryOptions(opts []OrchestratorOption) (telemetry.Tracer, telemetry.Metrics) {
	o := &Orchestrator{tracer: telemetry.NewNoopTracer(), metrics: telemetry.NewNoopMetrics()}
	for _, opt := range opts {
		opt(o)
	}
	return o.tracer, o.metrics
}

// Run drives the full heartbeat loop (§4.3.3) and returns the completed
// RunTranscript.
func (o *Orchestrator) Run(ctx context.Context) (*RunTranscript, error) {
	transcript := &RunTranscript{
		ScenarioID: o.pkg.ScenarioID(),
		RunID:      uuid.NewString(),
		RunConfig:  o.config,
	}

	for i, hb := range o.pkg.Heartbeats() {
		if hb.HeartbeatID()-o.pkg.CrisisHeartbeatID() > o.config.MaxPostCrisisHeartbeats {
			break
		}
		o.scenarioHandler.SetCurrentHeartbeat(i)

		hbCtx, span := o.tracer.Start(ctx, "heartbeat")
		span.SetAttribute("heartbeat_id", hb.HeartbeatID())
		start := time.Now()

		hbTranscript, err := o.runHeartbeat(hbCtx, hb)

		o.metrics.ObserveDuration("heartbeat_duration_seconds", time.Since(start).Seconds())
		if err != nil {
			span.RecordError(err)
			span.End()
			return nil, err
		}
		span.End()
		transcript.Heartbeats = append(transcript.Heartbeats, *hbTranscript)
	}

	return transcript, nil
}

func (o *Orchestrator) runHeartbeat(ctx context.Context, hb *scenario.HeartbeatPayload) (*HeartbeatTranscript, error) {
	logEntries, totalEntries := o.actionLog.Window(o.config.ActionLogWindow)
	userMessage, err := BuildUserMessage(hb, logEntries, totalEntries)
	if err != nil {
		return nil, fmt.Errorf("runtime: building user message for heartbeat %d: %w", hb.HeartbeatID(), err)
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: o.systemPrompt.Text()},
		{Role: llm.RoleUser, Content: userMessage},
	}

	transcript := &HeartbeatTranscript{
		HeartbeatID: hb.HeartbeatID(),
		Timestamp:   hb.Timestamp(),
		ContextSent: ContextSentMeta{MessageCount: len(messages), ActionLogEntries: len(logEntries)},
	}

	for turnIndex := 0; ; turnIndex++ {
		resp, err := o.client.Complete(ctx, o.config.AgentModel, messages, o.pkg.ToolDefinitions(), o.config.ModelParams)
		if err != nil {
			return nil, fmt.Errorf("runtime: model call failed at heartbeat %d turn %d: %w", hb.HeartbeatID(), turnIndex, err)
		}
		choice := resp.FirstChoice()

		parsedCalls, err := o.parseToolCalls(choice.ToolCalls)
		if err != nil {
			o.logger.Error(ctx, "tool arguments parse failure", "heartbeat_id", hb.HeartbeatID(), "turn", turnIndex, "error", err.Error())
			return nil, fmt.Errorf("runtime: parsing tool call arguments at heartbeat %d turn %d: %w", hb.HeartbeatID(), turnIndex, err)
		}

		if len(parsedCalls) == 0 {
			transcript.Turns = append(transcript.Turns, Turn{AgentText: choice.Content})
			break
		}

		assistantMsg := llm.Message{Role: llm.RoleAssistant, Content: choice.Content}
		for _, tc := range parsedCalls {
			argsJSON, _ := json.Marshal(tc.Arguments)
			assistantMsg.ToolCalls = append(assistantMsg.ToolCalls, llm.ToolCall{
				ID: tc.CallID, Name: SanitizeToolName(tc.Name), Arguments: string(argsJSON),
			})
		}
		messages = append(messages, assistantMsg)

		recorded := make([]RecordedToolCall, 0, len(parsedCalls))
		for _, tc := range parsedCalls {
			var toolResp ToolResponse
			var routedTo string
			if issue := schemavalidate.Validate(o.toolSchemas[tc.Name], tc.Arguments); issue != "" {
				o.logger.Error(ctx, "tool arguments failed schema validation",
					"heartbeat_id", hb.HeartbeatID(), "turn", turnIndex, "tool", tc.Name, "issue", issue)
				toolResp = ErrorResponse(issue)
			} else {
				toolResp, routedTo = o.router.Dispatch(ctx, tc.Name, tc.Arguments)
			}
			o.actionLog.Record(ActionLogEntry{
				Time: hb.Timestamp(), ActionType: classifyAction(tc.Name, routedTo),
				ToolName: tc.Name, Summary: summarizeCall(tc.Name, tc.Arguments),
			})
			if op := memoryOpFor(tc, toolResp, routedTo); op != nil {
				transcript.MemoryOps = append(transcript.MemoryOps, *op)
			}
			recorded = append(recorded, RecordedToolCall{Call: tc, Response: toolResp, RoutedTo: routedTo})

			respJSON, err := json.Marshal(toolResp)
			if err != nil {
				return nil, fmt.Errorf("runtime: serializing tool response at heartbeat %d turn %d: %w", hb.HeartbeatID(), turnIndex, err)
			}
			messages = append(messages, llm.Message{Role: llm.RoleTool, Content: string(respJSON), ToolCallID: tc.CallID})
		}
		transcript.Turns = append(transcript.Turns, Turn{AgentText: choice.Content, ToolCalls: recorded})

		if turnIndex == o.config.MaxToolTurns {
			break
		}
	}

	transcript.ScenarioHash = o.pkg.Manifest().ContentHash()
	return transcript, nil
}

// parseToolCalls decodes each tool call's JSON arguments string into a map
// and restores its dotted name. A JSON decode failure is a provider/
// sanitization bug and is propagated, not swallowed (§4.3.10, §7).
func (o *Orchestrator) parseToolCalls(calls []llm.ToolCall) ([]ParsedToolCall, error) {
	parsed := make([]ParsedToolCall, 0, len(calls))
	for _, tc := range calls {
		var args map[string]any
		if tc.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
				return nil, fmt.Errorf("tool %q: %w", tc.Name, err)
			}
		}
		parsed = append(parsed, ParsedToolCall{
			CallID: tc.ID, Name: DesanitizeToolName(tc.Name), Arguments: args,
		})
	}
	return parsed, nil
}

// memoryOpFor builds the transcript MemoryOp for a call routed to the
// memory handler, or nil for anything else.
func memoryOpFor(tc ParsedToolCall, resp ToolResponse, routedTo string) *MemoryOp {
	if routedTo != "MemoryHandler" {
		return nil
	}
	key, _ := tc.Arguments["key"].(string)
	switch tc.Name {
	case "write_memory":
		content, _ := tc.Arguments["content"].(string)
		return &MemoryOp{Op: MemoryOpWrite, Key: key, Content: content}
	case "read_memory":
		content, _ := resp.Fields["content"].(string)
		return &MemoryOp{Op: MemoryOpRead, Key: key, Content: content}
	case "list_memories":
		return &MemoryOp{Op: MemoryOpList}
	default:
		return nil
	}
}
