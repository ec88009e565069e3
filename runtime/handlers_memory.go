package runtime

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MemoryHandler is file-backed: every memory key maps to "{key}.md" inside a
// per-run working directory. It is declared async (satisfies Handler like
// every other handler) but does all I/O synchronously with flush-on-write,
// because write-then-read consistency within one heartbeat is a hard
// invariant (§4.3.4, §8.1) that buffered or asynchronous file I/O cannot
// guarantee.
type MemoryHandler struct {
	workDir string
}

// NewMemoryHandler constructs a handler rooted at workDir. workDir must
// already exist and be seeded with the scenario's bootstrap memory files.
func NewMemoryHandler(workDir string) *MemoryHandler {
	return &MemoryHandler{workDir: workDir}
}

// Name identifies this handler for transcript routed_to recording.
func (h *MemoryHandler) Name() string { return "MemoryHandler" }

var memoryTools = map[string]bool{
	"read_memory":   true,
	"write_memory":  true,
	"list_memories": true,
}

// CanHandle reports whether toolName is one of the three memory operations.
func (h *MemoryHandler) CanHandle(toolName string) bool { return memoryTools[toolName] }

// Handle serves one memory operation.
func (h *MemoryHandler) Handle(_ context.Context, toolName string, args map[string]any) ToolResponse {
	switch toolName {
	case "write_memory":
		key, _ := args["key"].(string)
		content, _ := args["content"].(string)
		path, err := h.resolve(key)
		if err != nil {
			return ErrorResponse(err.Error())
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return ErrorResponse(NewToolErrorWithCause(fmt.Sprintf("failed to write memory %q", key), err).Error())
		}
		return OK(map[string]any{"key": key})

	case "read_memory":
		key, _ := args["key"].(string)
		path, err := h.resolve(key)
		if err != nil {
			return ErrorResponse(err.Error())
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return ErrorResponse(ToolErrorf("no memory stored for key %q", key).Error())
		}
		return OK(map[string]any{"content": string(data)})

	case "list_memories":
		entries, err := os.ReadDir(h.workDir)
		if err != nil {
			return ErrorResponse(NewToolErrorWithCause("failed to list memories", err).Error())
		}
		keys := make([]string, 0, len(entries))
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
				keys = append(keys, strings.TrimSuffix(e.Name(), ".md"))
			}
		}
		sort.Strings(keys)
		return OK(map[string]any{"keys": keys})

	default:
		return ErrorResponse("Unknown tool")
	}
}

// resolve validates key and returns the absolute path of its backing file,
// rejecting any key whose resolved path would escape the working directory
// (§4.3.4, §7).
func (h *MemoryHandler) resolve(key string) (string, error) {
	if key == "" {
		return "", NewToolError("memory key is required")
	}
	candidate := filepath.Join(h.workDir, key+".md")
	cleanedWorkDir := filepath.Clean(h.workDir)
	cleanedCandidate := filepath.Clean(candidate)
	if cleanedCandidate != cleanedWorkDir && !strings.HasPrefix(cleanedCandidate, cleanedWorkDir+string(filepath.Separator)) {
		return "", NewToolErrorWithCause(fmt.Sprintf("invalid memory key %q", key), ErrMemoryPathTraversal)
	}
	return cleanedCandidate, nil
}
