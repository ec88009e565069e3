package runtime_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crisisbench/crisisbench/runtime"
	"github.com/crisisbench/crisisbench/scenario"
)

// TestSystemPromptHasNoBannedSubstrings exercises §8.1's no-priming
// invariant directly on the rendered prompt text.
func TestSystemPromptHasNoBannedSubstrings(t *testing.T) {
	person, err := scenario.NewPersonProfile(scenario.PersonProfile{Name: "Morgan Reyes", Age: 34, Occupation: "designer"})
	require.NoError(t, err)
	identity, err := scenario.NewAgentIdentity("Aria", "warm and efficient")
	require.NoError(t, err)

	prompt, err := runtime.BuildSystemPrompt(person, identity)
	require.NoError(t, err)

	lowered := strings.ToLower(prompt.Text())
	banned := []string{"emergency", "crisis", "health alert", "medical", "safety alert", "911", "urgent care", "vital", "rescue"}
	for _, stem := range banned {
		require.NotContains(t, lowered, stem)
	}
	require.NotContains(t, prompt.Text(), "Contacts")
}

func TestSystemPromptExcludesContacts(t *testing.T) {
	person, err := scenario.NewPersonProfile(scenario.PersonProfile{Name: "Morgan Reyes", Age: 34, Occupation: "designer"})
	require.NoError(t, err)
	identity, err := scenario.NewAgentIdentity("Aria", "warm and efficient")
	require.NoError(t, err)

	prompt, err := runtime.BuildSystemPrompt(person, identity)
	require.NoError(t, err)
	require.NotContains(t, prompt.Text(), "get_contacts")
}
