package runtime

import (
	"context"
	"sync"

	"github.com/crisisbench/crisisbench/scenario"
)

// ScenarioDataHandler serves every read-only scenario query tool. The
// orchestrator updates currentIndex before dispatching each heartbeat's
// tool calls, so a call always reads the module data for the heartbeat
// currently being processed, never a future or stale one.
type ScenarioDataHandler struct {
	pkg *scenario.ScenarioPackage

	mu           sync.Mutex
	currentIndex int
}

// NewScenarioDataHandler constructs a handler bound to pkg.
func NewScenarioDataHandler(pkg *scenario.ScenarioPackage) *ScenarioDataHandler {
	return &ScenarioDataHandler{pkg: pkg}
}

// SetCurrentHeartbeat points the handler at heartbeats[index] for all
// subsequent calls, until the next SetCurrentHeartbeat.
func (h *ScenarioDataHandler) SetCurrentHeartbeat(index int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.currentIndex = index
}

func (h *ScenarioDataHandler) current() *scenario.HeartbeatPayload {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pkg.Heartbeats()[h.currentIndex]
}

// Name identifies this handler for transcript routed_to recording.
func (h *ScenarioDataHandler) Name() string { return "ScenarioDataHandler" }

var scenarioDataTools = map[string]bool{
	"query_wearable":     true,
	"get_recent_updates": true,
	"get_contacts":       true,
	"get_conversations":  true,
	"list_events":        true,
	"get_forecast":       true,
	"get_balance":        true,
	"get_transactions":   true,
}

// CanHandle reports whether toolName is one of this handler's read-only
// scenario queries.
func (h *ScenarioDataHandler) CanHandle(toolName string) bool { return scenarioDataTools[toolName] }

// Handle serves one scenario-data query.
func (h *ScenarioDataHandler) Handle(_ context.Context, toolName string, args map[string]any) ToolResponse {
	hb := h.current()
	switch toolName {
	case "query_wearable":
		if hb.Wearable() == nil {
			return OK(map[string]any{"wearable": map[string]any{}})
		}
		return OK(map[string]any{"wearable": hb.Wearable()})

	case "get_recent_updates":
		return OK(map[string]any{"heartbeat_id": hb.HeartbeatID(), "timestamp": hb.Timestamp()})

	case "get_contacts":
		return OK(map[string]any{"contacts": h.pkg.Contacts()})

	case "get_conversations":
		return OK(map[string]any{"conversations": []any{}})

	case "list_events":
		if hb.Calendar() == nil {
			return OK(map[string]any{"events": []any{}})
		}
		return OK(map[string]any{"events": hb.Calendar().Next3Events})

	case "get_forecast":
		if hb.Weather() == nil {
			return OK(map[string]any{"forecast": map[string]any{}})
		}
		return OK(map[string]any{"forecast": hb.Weather()})

	case "get_balance":
		if hb.Financial() == nil {
			return ErrorResponse("Financial data unavailable at this tier")
		}
		return OK(map[string]any{"balance": hb.Financial().AccountBalanceUSD})

	case "get_transactions":
		if hb.Financial() == nil {
			return ErrorResponse("Financial data unavailable at this tier")
		}
		return OK(map[string]any{"transactions": hb.Financial().RecentTransactions})

	default:
		_ = args
		return ErrorResponse("Unknown tool")
	}
}
