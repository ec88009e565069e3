package runtime_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crisisbench/crisisbench/runtime"
	"github.com/crisisbench/crisisbench/runtime/llm"
	"github.com/crisisbench/crisisbench/scenario"
	"github.com/crisisbench/crisisbench/scenario/generator"
	"github.com/crisisbench/crisisbench/telemetry"
)

// scriptedClient is a fake llm.Client whose behavior is driven by a
// per-call function, keyed by how many completions have been requested so
// far (across the whole run). It lets tests script exact multi-turn
// sequences without a real model.
type scriptedClient struct {
	calls   int
	seen    []messagesSnapshot
	respond func(callIndex int, messages []llm.Message) llm.Choice
}

type messagesSnapshot struct {
	count int
}

func (c *scriptedClient) Complete(_ context.Context, _ string, messages []llm.Message, _ []*scenario.ToolDefinition, _ map[string]any) (*llm.Response, error) {
	choice := c.respond(c.calls, messages)
	c.seen = append(c.seen, messagesSnapshot{count: len(messages)})
	c.calls++
	return &llm.Response{Choices: []llm.Choice{choice}}, nil
}

func buildLoadedScenario(t *testing.T, tier scenario.Tier) *runtime.LoadedScenario {
	t.Helper()
	pkg, err := generator.Generate(generator.Params{
		CrisisType: scenario.CrisisCardiacArrest, NoiseTier: tier,
		Seed: 1, ScenarioDate: time.Date(2027, time.June, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	dir, err := generator.Pack(pkg, t.TempDir())
	require.NoError(t, err)
	loaded, err := runtime.LoadScenario(dir)
	require.NoError(t, err)
	return loaded
}

func toolCallArgs(args map[string]any) string {
	data, _ := json.Marshal(args)
	return string(data)
}

// TestFreshContextInvariant exercises §8.1: the first model call of every
// heartbeat receives exactly two messages (system + user).
func TestFreshContextInvariant(t *testing.T) {
	loaded := buildLoadedScenario(t, scenario.TierT1)
	firstCallMessageCounts := []int{}
	client := &scriptedClient{respond: func(callIndex int, messages []llm.Message) llm.Choice {
		firstCallMessageCounts = append(firstCallMessageCounts, len(messages))
		return llm.Choice{Content: "looks fine"}
	}}
	orch, err := runtime.NewOrchestrator(loaded, client, runtime.RunConfig{AgentModel: "anthropic/claude-test"}, nil)
	require.NoError(t, err)

	_, err = orch.Run(context.Background())
	require.NoError(t, err)
	for _, n := range firstCallMessageCounts {
		require.Equal(t, 2, n)
	}
}

// TestToolBudgetCap exercises §8.3 item 4: with max_tool_turns=2 and a model
// that always emits one tool call, the orchestrator makes exactly 3 model
// calls for the heartbeat and does not call the model a fourth time.
func TestToolBudgetCap(t *testing.T) {
	loaded := buildLoadedScenario(t, scenario.TierT1)
	client := &scriptedClient{respond: func(callIndex int, messages []llm.Message) llm.Choice {
		return llm.Choice{
			Content:   "checking",
			ToolCalls: []llm.ToolCall{{ID: "call-1", Name: "query_wearable", Arguments: "{}"}},
		}
	}}
	orch, err := runtime.NewOrchestrator(loaded, client, runtime.RunConfig{AgentModel: "anthropic/claude-test", MaxToolTurns: 2}, nil)
	require.NoError(t, err)

	transcript, err := orch.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, client.calls/len(transcript.Heartbeats))
	require.Len(t, transcript.Heartbeats[0].Turns, 3)
}

// TestUnknownToolBoundaryScenario exercises §8.3 item 5: calling make_call in
// this version (no UserSimHandler yet) returns ErrorResponse("Unknown tool")
// and records a tool_call action log entry with summary "Called 911".
func TestUnknownToolBoundaryScenario(t *testing.T) {
	loaded := buildLoadedScenario(t, scenario.TierT1)
	called := false
	client := &scriptedClient{respond: func(callIndex int, messages []llm.Message) llm.Choice {
		if called {
			return llm.Choice{Content: "done"}
		}
		called = true
		return llm.Choice{ToolCalls: []llm.ToolCall{
			{ID: "call-1", Name: "make_call", Arguments: toolCallArgs(map[string]any{"number": "911"})},
		}}
	}}
	orch, err := runtime.NewOrchestrator(loaded, client, runtime.RunConfig{AgentModel: "anthropic/claude-test"}, nil)
	require.NoError(t, err)

	transcript, err := orch.Run(context.Background())
	require.NoError(t, err)

	firstTurn := transcript.Heartbeats[0].Turns[0]
	require.Len(t, firstTurn.ToolCalls, 1)
	require.Equal(t, "error", firstTurn.ToolCalls[0].Response.Status)
	require.Equal(t, "", firstTurn.ToolCalls[0].RoutedTo)

	entries, _ := orch.ActionLog().Window(1)
	require.Len(t, entries, 1)
	require.Equal(t, "tool_call", entries[0].ActionType)
	require.Equal(t, "make_call", entries[0].ToolName)
	require.Equal(t, "Called 911", entries[0].Summary)
}

// TestMemoryRoundTripWithinHeartbeat exercises §8.3 item 3: write_memory
// followed by read_memory for the same key within one heartbeat's turn
// sequence returns the just-written content.
func TestMemoryRoundTripWithinHeartbeat(t *testing.T) {
	loaded := buildLoadedScenario(t, scenario.TierT1)
	step := 0
	client := &scriptedClient{respond: func(callIndex int, messages []llm.Message) llm.Choice {
		step++
		switch step {
		case 1:
			return llm.Choice{ToolCalls: []llm.ToolCall{
				{ID: "c1", Name: "write_memory", Arguments: toolCallArgs(map[string]any{"key": "note", "content": "hr=0 spotted"})},
			}}
		case 2:
			return llm.Choice{ToolCalls: []llm.ToolCall{
				{ID: "c2", Name: "read_memory", Arguments: toolCallArgs(map[string]any{"key": "note"})},
			}}
		default:
			return llm.Choice{Content: "noted"}
		}
	}}
	orch, err := runtime.NewOrchestrator(loaded, client, runtime.RunConfig{AgentModel: "anthropic/claude-test"}, nil)
	require.NoError(t, err)

	transcript, err := orch.Run(context.Background())
	require.NoError(t, err)

	readTurn := transcript.Heartbeats[0].Turns[1]
	require.Len(t, readTurn.ToolCalls, 1)
	require.Equal(t, "ok", readTurn.ToolCalls[0].Response.Status)
	require.Equal(t, "hr=0 spotted", readTurn.ToolCalls[0].Response.Fields["content"])
}

// TestSchemaValidationRejectsMissingRequiredField exercises the
// tool-argument schema-validation enrichment: a write_memory call missing
// its required content field fails validation before ever reaching the
// memory handler, so no memory file is written.
func TestSchemaValidationRejectsMissingRequiredField(t *testing.T) {
	loaded := buildLoadedScenario(t, scenario.TierT1)
	called := false
	client := &scriptedClient{respond: func(callIndex int, messages []llm.Message) llm.Choice {
		if called {
			return llm.Choice{Content: "done"}
		}
		called = true
		return llm.Choice{ToolCalls: []llm.ToolCall{
			{ID: "c1", Name: "write_memory", Arguments: toolCallArgs(map[string]any{"key": "note"})},
		}}
	}}
	orch, err := runtime.NewOrchestrator(loaded, client, runtime.RunConfig{AgentModel: "anthropic/claude-test"}, nil)
	require.NoError(t, err)

	transcript, err := orch.Run(context.Background())
	require.NoError(t, err)

	firstTurn := transcript.Heartbeats[0].Turns[0]
	require.Len(t, firstTurn.ToolCalls, 1)
	require.Equal(t, "error", firstTurn.ToolCalls[0].Response.Status)
	require.Equal(t, "", firstTurn.ToolCalls[0].RoutedTo)
	require.Empty(t, transcript.Heartbeats[0].MemoryOps)
}

// TestTamperedHeartbeatsRejected exercises §8.3 item 6: editing any byte of
// heartbeats.json after generation must cause LoadScenario to reject it
// before any model call.
func TestTamperedHeartbeatsRejected(t *testing.T) {
	pkg, err := generator.Generate(generator.Params{
		CrisisType: scenario.CrisisCardiacArrest, NoiseTier: scenario.TierT1,
		Seed: 3, ScenarioDate: time.Date(2027, time.June, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	outputDir := t.TempDir()
	dir, err := generator.Pack(pkg, outputDir)
	require.NoError(t, err)

	tamperFile(t, dir)

	_, err = runtime.LoadScenario(dir)
	require.ErrorIs(t, err, runtime.ErrContentHashMismatch)
}

// fakeTracer/fakeMetrics record every span/counter name they see, so tests
// can assert telemetry is actually wired rather than silently discarded.
type fakeTracer struct{ started []string }

func (f *fakeTracer) Start(ctx context.Context, name string) (context.Context, telemetry.Span) {
	f.started = append(f.started, name)
	return ctx, fakeSpan{}
}

type fakeSpan struct{}

func (fakeSpan) SetAttribute(string, any) {}
func (fakeSpan) RecordError(error)        {}
func (fakeSpan) End()                     {}

type fakeMetrics struct {
	counters   []string
	histograms []string
}

func (f *fakeMetrics) IncrCounter(name string, _ int64, _ ...string) {
	f.counters = append(f.counters, name)
}

func (f *fakeMetrics) ObserveDuration(name string, _ float64, _ ...string) {
	f.histograms = append(f.histograms, name)
}

// TestTelemetryWiredThroughHeartbeatAndDispatch exercises the ambient
// telemetry expansion: a heartbeat run emits one "heartbeat" span per
// heartbeat and one "tool_dispatch" span per tool call, and records
// matching counters/histograms.
func TestTelemetryWiredThroughHeartbeatAndDispatch(t *testing.T) {
	loaded := buildLoadedScenario(t, scenario.TierT1)
	called := false
	client := &scriptedClient{respond: func(callIndex int, messages []llm.Message) llm.Choice {
		if called {
			return llm.Choice{Content: "done"}
		}
		called = true
		return llm.Choice{ToolCalls: []llm.ToolCall{
			{ID: "call-1", Name: "query_wearable", Arguments: "{}"},
		}}
	}}
	tracer := &fakeTracer{}
	metrics := &fakeMetrics{}
	orch, err := runtime.NewOrchestrator(loaded, client, runtime.RunConfig{AgentModel: "anthropic/claude-test"}, nil,
		runtime.WithTracer(tracer), runtime.WithMetrics(metrics))
	require.NoError(t, err)

	_, err = orch.Run(context.Background())
	require.NoError(t, err)

	require.Contains(t, tracer.started, "heartbeat")
	require.Contains(t, tracer.started, "tool_dispatch")
	require.Contains(t, metrics.histograms, "heartbeat_duration_seconds")
	require.Contains(t, metrics.counters, "tool_dispatch_total")
}
