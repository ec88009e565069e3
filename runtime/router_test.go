package runtime_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crisisbench/crisisbench/runtime"
)

type stubHandler struct {
	name    string
	handles string
}

func (s stubHandler) Name() string                  { return s.name }
func (s stubHandler) CanHandle(toolName string) bool { return toolName == s.handles }
func (s stubHandler) Handle(ctx context.Context, toolName string, args map[string]any) runtime.ToolResponse {
	return runtime.OK(map[string]any{"served_by": s.name})
}

// TestToolRouterFirstMatchWins covers §8.1's router semantics: when two
// handlers both claim a tool name, the first registered wins.
func TestToolRouterFirstMatchWins(t *testing.T) {
	first := stubHandler{name: "first", handles: "ping"}
	second := stubHandler{name: "second", handles: "ping"}
	router := runtime.NewToolRouter(first, second)

	resp, routedTo := router.Dispatch(context.Background(), "ping", nil)
	require.Equal(t, "first", routedTo)
	require.Equal(t, "first", resp.Fields["served_by"])
}

func TestToolRouterUnknownTool(t *testing.T) {
	router := runtime.NewToolRouter(stubHandler{name: "only", handles: "ping"})
	resp, routedTo := router.Dispatch(context.Background(), "pong", nil)
	require.Equal(t, "", routedTo)
	require.Equal(t, "error", resp.Status)
}
