// Package anthropicclient adapts the Anthropic Go SDK to the runtime/llm
// Client contract.
package anthropicclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/crisisbench/crisisbench/runtime/llm"
	"github.com/crisisbench/crisisbench/scenario"
)

// MessagesClient narrows the SDK down to the one call this adapter needs,
// so tests can substitute a fake without depending on the real transport.
type MessagesClient interface {
	New(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error)
}

// Options configures a Client. MaxTokens defaults to 4096 when zero.
type Options struct {
	APIKey    string
	MaxTokens int64
}

// Client adapts Anthropic's Messages API to llm.Client.
type Client struct {
	messages  MessagesClient
	maxTokens int64
}

// New constructs a Client from Options, wiring the real SDK transport.
func New(opts Options) *Client {
	sdk := anthropic.NewClient(option.WithAPIKey(opts.APIKey))
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}
	return &Client{messages: &sdk.Messages, maxTokens: maxTokens}
}

// NewWithMessagesClient constructs a Client around an injected
// MessagesClient, for tests.
func NewWithMessagesClient(messages MessagesClient, maxTokens int64) *Client {
	return &Client{messages: messages, maxTokens: maxTokens}
}

// Complete implements llm.Client.
func (c *Client) Complete(ctx context.Context, model string, messages []llm.Message, tools []*scenario.ToolDefinition, params map[string]any) (*llm.Response, error) {
	var system string
	var msgs []anthropic.MessageParam
	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			system = m.Content
		case llm.RoleUser:
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case llm.RoleAssistant:
			blocks := []anthropic.ContentBlockParamUnion{}
			if m.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(m.Content))
			}
			for _, tc := range m.ToolCalls {
				var input any
				_ = json.Unmarshal([]byte(tc.Arguments), &input)
				blocks = append(blocks, anthropic.NewToolUseBlock(tc.ID, input, tc.Name))
			}
			msgs = append(msgs, anthropic.NewAssistantMessage(blocks...))
		case llm.RoleTool:
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewToolResultBlock(m.ToolCallID, m.Content, false)))
		}
	}

	anthropicTools := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		schema, err := toolInputSchema(t)
		if err != nil {
			return nil, fmt.Errorf("anthropicclient: building schema for %s: %w", t.Name(), err)
		}
		anthropicTools = append(anthropicTools, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        t.Name(),
				Description: anthropic.String(t.Description()),
				InputSchema: schema,
			},
		})
	}

	req := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: c.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages:  msgs,
		Tools:     anthropicTools,
	}
	if temp, ok := params["temperature"].(float64); ok {
		req.Temperature = anthropic.Float(temp)
	}

	resp, err := c.messages.New(ctx, req)
	if err != nil {
		return nil, &llm.ProviderError{Provider: "anthropic", Retryable: isRetryable(err), Cause: err}
	}

	var choice llm.Choice
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			choice.Content += block.Text
		case "tool_use":
			args, _ := json.Marshal(block.Input)
			choice.ToolCalls = append(choice.ToolCalls, llm.ToolCall{ID: block.ID, Name: block.Name, Arguments: string(args)})
		}
	}
	return &llm.Response{Choices: []llm.Choice{choice}}, nil
}

func isRetryable(err error) bool {
	var apiErr *anthropic.Error
	if ok := asAnthropicError(err, &apiErr); ok {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return false
}

func asAnthropicError(err error, target **anthropic.Error) bool {
	apiErr, ok := err.(*anthropic.Error)
	if ok {
		*target = apiErr
	}
	return ok
}

func toolInputSchema(t *scenario.ToolDefinition) (anthropic.ToolInputSchemaParam, error) {
	properties := map[string]any{}
	var required []string
	for _, p := range t.Parameters() {
		properties[p.Name] = map[string]any{"type": p.Type, "description": p.Description}
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return anthropic.ToolInputSchemaParam{
		Properties: properties,
		Required:   required,
	}, nil
}
