package runtime_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crisisbench/crisisbench/runtime"
)

func TestMemoryHandlerWriteReadConsistency(t *testing.T) {
	handler := runtime.NewMemoryHandler(t.TempDir())
	ctx := context.Background()

	resp := handler.Handle(ctx, "write_memory", map[string]any{"key": "note", "content": "hr=0 spotted"})
	require.Equal(t, "ok", resp.Status)

	resp = handler.Handle(ctx, "read_memory", map[string]any{"key": "note"})
	require.Equal(t, "ok", resp.Status)
	require.Equal(t, "hr=0 spotted", resp.Fields["content"])
}

func TestMemoryHandlerRejectsPathTraversal(t *testing.T) {
	handler := runtime.NewMemoryHandler(t.TempDir())
	resp := handler.Handle(context.Background(), "read_memory", map[string]any{"key": "../outside"})
	require.Equal(t, "error", resp.Status)
}

func TestMemoryHandlerListSortedByName(t *testing.T) {
	handler := runtime.NewMemoryHandler(t.TempDir())
	ctx := context.Background()
	handler.Handle(ctx, "write_memory", map[string]any{"key": "zeta", "content": "z"})
	handler.Handle(ctx, "write_memory", map[string]any{"key": "alpha", "content": "a"})

	resp := handler.Handle(ctx, "list_memories", nil)
	require.Equal(t, "ok", resp.Status)
	require.Equal(t, []string{"alpha", "zeta"}, resp.Fields["keys"])
}
