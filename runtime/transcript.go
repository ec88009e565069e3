package runtime

import (
	"encoding/json"
	"time"
)

// ToolResponse is returned by every tool handler. Status is always present;
// specializations carry additional payload fields alongside it, so the type
// stays a plain map rather than a closed struct — handlers shape their own
// response fields and the router never needs to know them.
type ToolResponse struct {
	Status string         `json:"status"`
	Fields map[string]any `json:"-"`
}

// MarshalJSON flattens Status and Fields into one JSON object, so a
// ToolResponse serializes exactly like the ad hoc dicts it is modeled on.
func (r ToolResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+1)
	for k, v := range r.Fields {
		out[k] = v
	}
	out["status"] = r.Status
	return json.Marshal(out)
}

// OK builds a success ToolResponse with the given payload fields.
func OK(fields map[string]any) ToolResponse {
	return ToolResponse{Status: "ok", Fields: fields}
}

// ErrorResponse builds an error ToolResponse carrying a human-readable
// message, per §3.2/§7's uniform error shape.
func ErrorResponse(message string) ToolResponse {
	return ToolResponse{Status: "error", Fields: map[string]any{"message": message}}
}

// ParsedToolCall is one tool call parsed out of a model response: a
// provider-assigned id, the (already-desanitized) tool name, and its
// arguments decoded from the model's JSON arguments string.
type ParsedToolCall struct {
	CallID    string
	Name      string
	Arguments map[string]any
}

// AgentResponse is the parsed shape of one model completion: optional
// assistant text plus zero or more tool calls.
type AgentResponse struct {
	Text      string
	ToolCalls []ParsedToolCall
}

// RecordedToolCall is one tool call as it appears in a completed Turn: the
// parsed call, the response the router produced, and which handler served
// it (for transcript recording).
type RecordedToolCall struct {
	Call     ParsedToolCall `json:"call"`
	Response ToolResponse   `json:"response"`
	RoutedTo string         `json:"routed_to"`
}

// Turn is one round of the multi-turn tool loop within a heartbeat.
type Turn struct {
	AgentText string              `json:"agent_text,omitempty"`
	ToolCalls []RecordedToolCall  `json:"tool_calls"`
}

// MemoryOpKind enumerates the memory operations recorded in a transcript.
type MemoryOpKind string

const (
	MemoryOpRead  MemoryOpKind = "read"
	MemoryOpWrite MemoryOpKind = "write"
	MemoryOpList  MemoryOpKind = "list"
)

// MemoryOp is one recorded memory-handler operation.
type MemoryOp struct {
	Op      MemoryOpKind `json:"op"`
	Key     string       `json:"key,omitempty"`
	Content string       `json:"content,omitempty"`
}

// UserSimInteractionType enumerates the two shapes of agent-to-user contact
// reserved by §3.2/§9 for the not-yet-implemented UserSimHandler.
type UserSimInteractionType string

const (
	UserSimMessage UserSimInteractionType = "message"
	UserSimCall    UserSimInteractionType = "call"
)

// UserSimInteraction records one attempted agent-to-user contact and the
// (possibly absent) simulated reply.
type UserSimInteraction struct {
	Type         UserSimInteractionType `json:"type"`
	AgentSent    string                 `json:"agent_sent"`
	UserResponse *string                `json:"user_response,omitempty"`
}

// ContextSentMeta describes the shape of what was sent to the model for a
// heartbeat, without duplicating the full message bodies into the
// transcript (those live implicitly in Turns[0]'s reconstruction).
type ContextSentMeta struct {
	MessageCount     int `json:"message_count"`
	ActionLogEntries int `json:"action_log_entries"`
}

// HeartbeatTranscript records everything that happened while processing one
// heartbeat.
type HeartbeatTranscript struct {
	HeartbeatID         int                  `json:"heartbeat_id"`
	Timestamp           time.Time            `json:"timestamp"`
	ScenarioHash        string               `json:"scenario_hash"`
	ContextSent         ContextSentMeta      `json:"context_sent"`
	Turns               []Turn               `json:"turns"`
	MemoryOps           []MemoryOp           `json:"memory_ops"`
	UserSimInteractions []UserSimInteraction `json:"user_sim_interactions"`
}

// RunTranscript is the full output of one benchmark run.
type RunTranscript struct {
	ScenarioID string                 `json:"scenario_id"`
	RunID      string                 `json:"run_id"`
	RunConfig  RunConfig              `json:"run_config"`
	Heartbeats []HeartbeatTranscript  `json:"heartbeats"`
}
