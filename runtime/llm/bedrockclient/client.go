// Package bedrockclient adapts AWS Bedrock's Converse API to the
// runtime/llm Client contract.
package bedrockclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	smithydocument "github.com/aws/smithy-go/document"

	"github.com/crisisbench/crisisbench/runtime/llm"
	"github.com/crisisbench/crisisbench/scenario"
)

// ConverseClient narrows the SDK to the one call this adapter needs.
type ConverseClient interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// Options configures a Client.
type Options struct {
	Region string
}

// Client adapts Bedrock's Converse API to llm.Client.
type Client struct {
	converse ConverseClient
}

// NewWithConverseClient constructs a Client around an injected
// ConverseClient. Callers build the real bedrockruntime.Client via
// config.LoadDefaultConfig upstream and pass it here — this package does
// not own AWS credential resolution.
func NewWithConverseClient(converse ConverseClient) *Client {
	return &Client{converse: converse}
}

// Complete implements llm.Client.
func (c *Client) Complete(ctx context.Context, model string, messages []llm.Message, tools []*scenario.ToolDefinition, params map[string]any) (*llm.Response, error) {
	var system []types.SystemContentBlock
	var msgs []types.Message
	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			system = append(system, &types.SystemContentBlockMemberText{Value: m.Content})
		case llm.RoleUser:
			msgs = append(msgs, types.Message{Role: types.ConversationRoleUser, Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: m.Content}}})
		case llm.RoleAssistant:
			var blocks []types.ContentBlock
			if m.Content != "" {
				blocks = append(blocks, &types.ContentBlockMemberText{Value: m.Content})
			}
			for _, tc := range m.ToolCalls {
				var input map[string]any
				_ = json.Unmarshal([]byte(tc.Arguments), &input)
				blocks = append(blocks, &types.ContentBlockMemberToolUse{
					Value: types.ToolUseBlock{ToolUseId: aws.String(tc.ID), Name: aws.String(tc.Name), Input: smithyDocument(input)},
				})
			}
			msgs = append(msgs, types.Message{Role: types.ConversationRoleAssistant, Content: blocks})
		case llm.RoleTool:
			msgs = append(msgs, types.Message{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{&types.ContentBlockMemberToolResult{
					Value: types.ToolResultBlock{
						ToolUseId: aws.String(m.ToolCallID),
						Content:   []types.ToolResultContentBlock{&types.ToolResultContentBlockMemberText{Value: m.Content}},
					},
				}},
			})
		}
	}

	toolConfig := &types.ToolConfiguration{}
	for _, t := range tools {
		properties := map[string]any{}
		var required []string
		for _, p := range t.Parameters() {
			properties[p.Name] = map[string]any{"type": p.Type, "description": p.Description}
			if p.Required {
				required = append(required, p.Name)
			}
		}
		schema := map[string]any{"type": "object", "properties": properties, "required": required}
		toolConfig.Tools = append(toolConfig.Tools, &types.ToolMemberToolSpec{
			Value: types.ToolSpecification{
				Name:        aws.String(t.Name()),
				Description: aws.String(t.Description()),
				InputSchema: &types.ToolInputSchemaMemberJson{Value: smithyDocument(schema)},
			},
		})
	}

	out, err := c.converse.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId:    aws.String(model),
		System:     system,
		Messages:   msgs,
		ToolConfig: toolConfig,
	})
	if err != nil {
		return nil, &llm.ProviderError{Provider: "bedrock", Retryable: isRetryable(err), Cause: err}
	}

	output, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return nil, fmt.Errorf("bedrockclient: unexpected converse output shape")
	}

	var choice llm.Choice
	for _, block := range output.Value.Content {
		switch b := block.(type) {
		case *types.ContentBlockMemberText:
			choice.Content += b.Value
		case *types.ContentBlockMemberToolUse:
			args, _ := json.Marshal(b.Value.Input)
			choice.ToolCalls = append(choice.ToolCalls, llm.ToolCall{
				ID: aws.ToString(b.Value.ToolUseId), Name: aws.ToString(b.Value.Name), Arguments: string(args),
			})
		}
	}
	return &llm.Response{Choices: []llm.Choice{choice}}, nil
}

func isRetryable(err error) bool {
	var statusErr interface{ HTTPStatusCode() int }
	if errors.As(err, &statusErr) {
		code := statusErr.HTTPStatusCode()
		return code == 429 || code >= 500
	}
	return false
}

// smithyDocument wraps a plain Go value as a smithy document.Marshaler, the
// shape the Bedrock SDK expects for freeform tool-input JSON.
func smithyDocument(v map[string]any) smithydocument.Marshaler {
	return documentValue{v: v}
}

type documentValue struct{ v map[string]any }

func (d documentValue) MarshalSmithyDocument() ([]byte, error) {
	return json.Marshal(d.v)
}
