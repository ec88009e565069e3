package scenario_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crisisbench/crisisbench/scenario"
)

func validHash() string {
	return strings.Repeat("a", 64)
}

func TestNewScenarioManifestRejectsBadHash(t *testing.T) {
	_, err := scenario.NewScenarioManifest("not-hex", "gen-1", time.Now())
	require.ErrorIs(t, err, scenario.ErrInvalidManifest)

	_, err = scenario.NewScenarioManifest(strings.Repeat("A", 64), "gen-1", time.Now())
	require.ErrorIs(t, err, scenario.ErrInvalidManifest, "uppercase hex must be rejected")

	_, err = scenario.NewScenarioManifest(strings.Repeat("a", 63), "gen-1", time.Now())
	require.ErrorIs(t, err, scenario.ErrInvalidManifest, "short hash must be rejected")
}

func TestNewScenarioManifestAccepts64LowercaseHex(t *testing.T) {
	m, err := scenario.NewScenarioManifest(validHash(), "gen-1", time.Now())
	require.NoError(t, err)
	require.Equal(t, validHash(), m.ContentHash())
}

func TestScenarioManifestRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	m, err := scenario.NewScenarioManifest(validHash(), "gen-1", now)
	require.NoError(t, err)

	raw, err := json.Marshal(m)
	require.NoError(t, err)

	var back scenario.ScenarioManifest
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Equal(t, m.ContentHash(), back.ContentHash())
	require.Equal(t, m.GeneratorVersion(), back.GeneratorVersion())
	require.True(t, m.GeneratedAt().Equal(back.GeneratedAt()))
}

func TestScenarioManifestUnmarshalRejectsBadHash(t *testing.T) {
	raw := []byte(`{"content_hash":"bad","generator_version":"gen-1","generated_at":"2027-01-01T00:00:00Z"}`)
	var m scenario.ScenarioManifest
	err := json.Unmarshal(raw, &m)
	require.Error(t, err)
}
