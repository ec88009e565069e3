package openaiclient_test

import (
	"context"
	"errors"
	"testing"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/require"

	"github.com/crisisbench/crisisbench/runtime/llm"
	"github.com/crisisbench/crisisbench/runtime/llm/openaiclient"
)

type fakeChatClient struct {
	captured openai.ChatCompletionNewParams
	response *openai.ChatCompletion
	err      error
}

func (f *fakeChatClient) New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	f.captured = params
	return f.response, f.err
}

func TestCompleteConvertsMessagesAndReturnsContent(t *testing.T) {
	fake := &fakeChatClient{response: &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: "hello there"}},
		},
	}}
	client := openaiclient.NewWithChatClient(fake)

	resp, err := client.Complete(context.Background(), "gpt-4o", []llm.Message{
		{Role: llm.RoleSystem, Content: "be brief"},
		{Role: llm.RoleUser, Content: "hi"},
	}, nil, nil)

	require.NoError(t, err)
	require.Len(t, fake.captured.Messages, 2)
	require.Equal(t, "hello there", resp.FirstChoice().Content)
}

func TestCompleteConvertsToolCalls(t *testing.T) {
	fake := &fakeChatClient{response: &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{
				ToolCalls: []openai.ChatCompletionMessageToolCall{
					{ID: "call_1", Function: openai.ChatCompletionMessageToolCallFunction{Name: "get_forecast", Arguments: "{}"}},
				},
			}},
		},
	}}
	client := openaiclient.NewWithChatClient(fake)

	resp, err := client.Complete(context.Background(), "gpt-4o", []llm.Message{
		{Role: llm.RoleUser, Content: "what's the weather"},
	}, nil, nil)

	require.NoError(t, err)
	require.Len(t, resp.FirstChoice().ToolCalls, 1)
	require.Equal(t, "get_forecast", resp.FirstChoice().ToolCalls[0].Name)
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	fake := &fakeChatClient{response: &openai.ChatCompletion{}}
	client := openaiclient.NewWithChatClient(fake)

	_, err := client.Complete(context.Background(), "gpt-4o", []llm.Message{
		{Role: llm.RoleUser, Content: "hi"},
	}, nil, nil)
	require.Error(t, err)
}

func TestCompleteWrapsProviderError(t *testing.T) {
	fake := &fakeChatClient{err: errors.New("server error")}
	client := openaiclient.NewWithChatClient(fake)

	_, err := client.Complete(context.Background(), "gpt-4o", []llm.Message{
		{Role: llm.RoleUser, Content: "hi"},
	}, nil, nil)

	var provErr *llm.ProviderError
	require.ErrorAs(t, err, &provErr)
	require.Equal(t, "openai", provErr.Provider)
}
