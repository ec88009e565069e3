// Package llm defines the provider-agnostic completion contract the
// orchestrator drives (§6.3): a call taking a model id, a message list, and
// a tool catalogue, returning a response whose first choice carries
// optional text and zero or more tool calls. Concrete provider adapters
// live in anthropicclient, openaiclient, and bedrockclient.
package llm

import (
	"context"

	"github.com/crisisbench/crisisbench/scenario"
)

// Role is the author of a Message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is one model-issued tool invocation, carried on an assistant
// Message. Arguments is the raw JSON string the provider returned — parsing
// it into a map is the orchestrator's job, not the client's, since a parse
// failure must be logged loudly and propagated (§4.3.3), not hidden inside
// the client.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Message is one entry in the conversation sent to a model. ToolCallID is
// set only on RoleTool messages, echoing which ToolCall this result
// answers.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// Choice is one completion candidate. Providers that only ever return one
// choice (every provider this runtime targets) still use this shape for
// uniformity with the interface other model-gateway code in the ecosystem
// expects.
type Choice struct {
	Content   string
	ToolCalls []ToolCall
}

// Response is a provider-agnostic completion result.
type Response struct {
	Choices []Choice
}

// FirstChoice returns the first choice, or a zero Choice if none were
// returned.
func (r *Response) FirstChoice() Choice {
	if len(r.Choices) == 0 {
		return Choice{}
	}
	return r.Choices[0]
}

// ProviderError wraps a failure from an underlying model provider.
// Retryable distinguishes transient failures (rate limits, timeouts) from
// permanent ones (auth, bad request) for callers that choose to retry —
// the core orchestrator itself never retries (§4.3.10).
type ProviderError struct {
	Provider  string
	Retryable bool
	Cause     error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Cause.Error()
}

func (e *ProviderError) Unwrap() error { return e.Cause }

// Client is the provider-agnostic completion call the orchestrator drives.
type Client interface {
	Complete(ctx context.Context, model string, messages []Message, tools []*scenario.ToolDefinition, params map[string]any) (*Response, error)
}
