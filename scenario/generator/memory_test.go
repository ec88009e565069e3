package generator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crisisbench/crisisbench/scenario"
	"github.com/crisisbench/crisisbench/scenario/generator"
)

func TestBuildMemoryFilesCoversFixedKeys(t *testing.T) {
	person, err := scenario.NewPersonProfile(scenario.PersonProfile{
		Name: "Morgan Reyes", Age: 34, Occupation: "product designer",
		HomeAddress: "12 Elm St", OfficeAddress: "400 Market St",
	})
	require.NoError(t, err)
	identity, err := scenario.NewAgentIdentity("Aria", "warm and efficient")
	require.NoError(t, err)

	files, err := generator.BuildMemoryFiles(person, identity)
	require.NoError(t, err)

	keys := make(map[string]*scenario.MemoryFile, len(files))
	for _, f := range files {
		keys[f.Key()] = f
	}
	for _, want := range []string{"user_profile", "preferences", "health_baseline", "work_context", "recurring_notes", "yesterday"} {
		f, ok := keys[want]
		require.True(t, ok, "missing memory file %q", want)
		require.NotEmpty(t, f.Content())
	}
	require.Contains(t, keys["user_profile"].Content(), "Morgan Reyes")
}

func TestBuildMemoryFilesIsDeterministic(t *testing.T) {
	person, err := scenario.NewPersonProfile(scenario.PersonProfile{Name: "Sam Lee", Age: 29, Occupation: "engineer"})
	require.NoError(t, err)
	identity, err := scenario.NewAgentIdentity("Aria", "calm")
	require.NoError(t, err)

	first, err := generator.BuildMemoryFiles(person, identity)
	require.NoError(t, err)
	second, err := generator.BuildMemoryFiles(person, identity)
	require.NoError(t, err)

	require.Len(t, first, len(second))
	for i := range first {
		require.Equal(t, first[i].Key(), second[i].Key())
		require.Equal(t, first[i].Content(), second[i].Content())
	}
}
