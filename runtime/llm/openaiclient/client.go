// Package openaiclient adapts the OpenAI Go SDK to the runtime/llm Client
// contract.
package openaiclient

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/crisisbench/crisisbench/runtime/llm"
	"github.com/crisisbench/crisisbench/scenario"
)

// ChatClient narrows the SDK to the one call this adapter needs.
type ChatClient interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// Options configures a Client.
type Options struct {
	APIKey string
}

// Client adapts OpenAI's Chat Completions API to llm.Client.
type Client struct {
	chat ChatClient
}

// New constructs a Client from Options, wiring the real SDK transport.
func New(opts Options) *Client {
	sdk := openai.NewClient(option.WithAPIKey(opts.APIKey))
	return &Client{chat: &sdk.Chat.Completions}
}

// NewWithChatClient constructs a Client around an injected ChatClient, for
// tests.
func NewWithChatClient(chat ChatClient) *Client {
	return &Client{chat: chat}
}

// Complete implements llm.Client.
func (c *Client) Complete(ctx context.Context, model string, messages []llm.Message, tools []*scenario.ToolDefinition, params map[string]any) (*llm.Response, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			msgs = append(msgs, openai.SystemMessage(m.Content))
		case llm.RoleUser:
			msgs = append(msgs, openai.UserMessage(m.Content))
		case llm.RoleAssistant:
			assistantMsg := openai.ChatCompletionAssistantMessageParam{}
			if m.Content != "" {
				assistantMsg.Content = openai.ChatCompletionAssistantMessageParamContentUnion{
					OfString: openai.String(m.Content),
				}
			}
			for _, tc := range m.ToolCalls {
				assistantMsg.ToolCalls = append(assistantMsg.ToolCalls, openai.ChatCompletionMessageToolCallParam{
					ID: tc.ID,
					Function: openai.ChatCompletionMessageToolCallFunctionParam{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				})
			}
			msgs = append(msgs, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistantMsg})
		case llm.RoleTool:
			msgs = append(msgs, openai.ToolMessage(m.Content, m.ToolCallID))
		}
	}

	openaiTools := make([]openai.ChatCompletionToolParam, 0, len(tools))
	for _, t := range tools {
		properties := map[string]any{}
		var required []string
		for _, p := range t.Parameters() {
			properties[p.Name] = map[string]any{"type": p.Type, "description": p.Description}
			if p.Required {
				required = append(required, p.Name)
			}
		}
		openaiTools = append(openaiTools, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        t.Name(),
				Description: openai.String(t.Description()),
				Parameters: openai.FunctionParameters{
					"type":       "object",
					"properties": properties,
					"required":   required,
				},
			},
		})
	}

	req := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: msgs,
		Tools:    openaiTools,
	}
	if temp, ok := params["temperature"].(float64); ok {
		req.Temperature = openai.Float(temp)
	}

	resp, err := c.chat.New(ctx, req)
	if err != nil {
		return nil, &llm.ProviderError{Provider: "openai", Retryable: isRetryable(err), Cause: err}
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openaiclient: empty choices from provider")
	}

	var choices []llm.Choice
	for _, rc := range resp.Choices {
		choice := llm.Choice{Content: rc.Message.Content}
		for _, tc := range rc.Message.ToolCalls {
			choice.ToolCalls = append(choice.ToolCalls, llm.ToolCall{ID: tc.ID, Name: tc.Function.Name, Arguments: tc.Function.Arguments})
		}
		choices = append(choices, choice)
	}
	return &llm.Response{Choices: choices}, nil
}

func isRetryable(err error) bool {
	var apiErr *openai.Error
	if ok := asOpenAIError(err, &apiErr); ok {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return false
}

func asOpenAIError(err error, target **openai.Error) bool {
	apiErr, ok := err.(*openai.Error)
	if ok {
		*target = apiErr
	}
	return ok
}
