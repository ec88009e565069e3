package runtime_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// tamperFile flips one byte inside heartbeats.json, simulating post-
// generation tampering for the content-hash-mismatch boundary scenario.
func tamperFile(t *testing.T, dir string) {
	t.Helper()
	path := filepath.Join(dir, "heartbeats.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	for i := range data {
		if data[i] == '0' {
			data[i] = '1'
			break
		}
		if data[i] == '1' {
			data[i] = '0'
			break
		}
	}
	require.NoError(t, os.WriteFile(path, data, 0o644))
}
