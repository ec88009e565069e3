package runtime_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crisisbench/crisisbench/runtime"
	"github.com/crisisbench/crisisbench/scenario"
	"github.com/crisisbench/crisisbench/scenario/generator"
)

func TestLoadScenarioRejectsMissingFile(t *testing.T) {
	pkg, err := generator.Generate(generator.Params{
		CrisisType: scenario.CrisisCardiacArrest, NoiseTier: scenario.TierT2,
		Seed: 5, ScenarioDate: time.Date(2027, time.June, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	dir, err := generator.Pack(pkg, t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "tools.json")))

	_, err = runtime.LoadScenario(dir)
	require.ErrorIs(t, err, runtime.ErrScenarioLoad)
}

func TestLoadScenarioSeedsWorkingMemoryDir(t *testing.T) {
	pkg, err := generator.Generate(generator.Params{
		CrisisType: scenario.CrisisCardiacArrest, NoiseTier: scenario.TierT2,
		Seed: 5, ScenarioDate: time.Date(2027, time.June, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	dir, err := generator.Pack(pkg, t.TempDir())
	require.NoError(t, err)

	loaded, err := runtime.LoadScenario(dir)
	require.NoError(t, err)
	defer os.RemoveAll(loaded.WorkDir)

	for _, mf := range loaded.Package.MemoryFiles() {
		data, err := os.ReadFile(filepath.Join(loaded.WorkDir, mf.Key()+".md"))
		require.NoError(t, err)
		require.Equal(t, mf.Content(), string(data))
	}
}
