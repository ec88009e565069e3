package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyAction(t *testing.T) {
	require.Equal(t, "memory", classifyAction("write_memory", "MemoryHandler"))
	require.Equal(t, "memory", classifyAction("read_memory", "MemoryHandler"))
	require.Equal(t, "memory", classifyAction("list_memories", "MemoryHandler"))
	require.Equal(t, "communication", classifyAction("make_call", "CommunicationHandler"))
	require.Equal(t, "communication", classifyAction("send_message", "CommunicationHandler"))
	require.Equal(t, "query", classifyAction("query_wearable", "ScenarioDataHandler"))
	require.Equal(t, "tool_call", classifyAction("calendar_service.create_event", "ScenarioDataHandler"))
}

// TestClassifyActionUnrouted exercises §8.3 item 5: a make_call/send_message
// that no handler claims (routedTo == "") classifies as "tool_call", not
// "communication" — the call never actually reached anything capable of
// carrying it out.
func TestClassifyActionUnrouted(t *testing.T) {
	require.Equal(t, "tool_call", classifyAction("make_call", ""))
	require.Equal(t, "tool_call", classifyAction("send_message", ""))
	require.Equal(t, "tool_call", classifyAction("write_memory", ""))
	require.Equal(t, "tool_call", classifyAction("query_wearable", ""))
}

// TestSummarizeCallMatchesBoundaryScenario exercises §8.3 item 5: a
// make_call(number="911") produces the summary "Called 911".
func TestSummarizeCallMatchesBoundaryScenario(t *testing.T) {
	summary := summarizeCall("make_call", map[string]any{"number": "911"})
	require.Equal(t, "Called 911", summary)
}

func TestSummarizeCallDefensiveOnMissingArgs(t *testing.T) {
	summary := summarizeCall("make_call", map[string]any{})
	require.Equal(t, "Called ?", summary)
}
