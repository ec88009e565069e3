package runtime

import (
	"fmt"
	"sync"
	"time"
)

// ActionLogEntry is one observational record of a tool execution, injected
// into later user messages so the agent can reason about what it has
// already done (§3.2, §4.3.7).
type ActionLogEntry struct {
	Time       time.Time `json:"time"`
	ActionType string    `json:"action_type"`
	ToolName   string    `json:"tool_name"`
	Summary    string    `json:"summary"`
}

// ActionLog is the orchestrator's single in-process mutable object across a
// run: an append-only, bounded-window record of tool executions. No locking
// is load-bearing for correctness (heartbeats are strictly sequential), but
// the mutex keeps the type safe to hand to a concurrent test harness.
type ActionLog struct {
	mu      sync.Mutex
	entries []ActionLogEntry
}

// NewActionLog constructs an empty action log.
func NewActionLog() *ActionLog {
	return &ActionLog{}
}

// Record appends entry to the log.
func (l *ActionLog) Record(entry ActionLogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

// Window returns the last n entries (oldest first) and the total entry
// count recorded so far. A defensive copy is returned so callers cannot
// mutate the log's internal slice.
func (l *ActionLog) Window(n int) (entries []ActionLogEntry, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	total = len(l.entries)
	start := 0
	if total > n {
		start = total - n
	}
	window := make([]ActionLogEntry, total-start)
	copy(window, l.entries[start:])
	return window, total
}

// classifyAction derives action_type from tool_name per §4.3.7's fixed
// classifier. routedTo is the handler name the call was dispatched to, or
// "" when no handler claimed it: an unrouted make_call/send_message (no
// UserSimHandler wired in this version) falls through to the catch-all
// "tool_call" class rather than "communication", matching §8.3 item 5's
// worked example, since "communication" implies the call actually reached
// a handler that could carry it out.
func classifyAction(toolName, routedTo string) string {
	if routedTo == "" {
		return "tool_call"
	}
	switch toolName {
	case "read_memory", "write_memory", "list_memories":
		return "memory"
	case "make_call", "send_message":
		return "communication"
	case "query_wearable", "get_recent_updates", "get_contacts", "get_conversations",
		"list_events", "get_forecast", "get_balance", "get_transactions":
		return "query"
	default:
		return "tool_call"
	}
}

// summarizeCall builds the brief human-readable summary for an action log
// entry. It uses defensive lookups (a missing or wrong-typed argument yields
// "?" rather than a panic) because cosmetic rendering must never crash on
// malformed, model-supplied arguments.
func summarizeCall(toolName string, args map[string]any) string {
	argString := func(key string) string {
		if v, ok := args[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
		return "?"
	}
	switch toolName {
	case "make_call":
		return fmt.Sprintf("Called %s", argString("number"))
	case "send_message":
		return fmt.Sprintf("Messaged %s", argString("contact_id"))
	case "write_memory":
		return fmt.Sprintf("Wrote memory %q", argString("key"))
	case "read_memory":
		return fmt.Sprintf("Read memory %q", argString("key"))
	case "list_memories":
		return "Listed memories"
	case "query_wearable":
		return "Queried wearable"
	case "get_recent_updates":
		return "Requested recent updates"
	case "get_contacts":
		return "Listed contacts"
	case "get_conversations":
		return "Listed conversations"
	case "list_events":
		return "Listed calendar events"
	case "get_forecast":
		return "Requested forecast"
	case "get_balance":
		return "Requested account balance"
	case "get_transactions":
		return "Requested transactions"
	default:
		return fmt.Sprintf("Called %s", toolName)
	}
}
