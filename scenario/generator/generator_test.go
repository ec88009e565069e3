package generator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crisisbench/crisisbench/scenario"
	"github.com/crisisbench/crisisbench/scenario/generator"
)

func scenarioDate() time.Time {
	return time.Date(2027, time.June, 14, 0, 0, 0, 0, time.UTC)
}

func TestGenerateIsDeterministic(t *testing.T) {
	params := generator.Params{
		CrisisType: scenario.CrisisCardiacArrest, NoiseTier: scenario.TierT4,
		Seed: 42, ScenarioDate: scenarioDate(),
	}
	pkg1, err := generator.Generate(params)
	require.NoError(t, err)
	pkg2, err := generator.Generate(params)
	require.NoError(t, err)
	require.Equal(t, pkg1.Manifest().ContentHash(), pkg2.Manifest().ContentHash())

	json1, err := pkg1.MarshalScenarioJSON()
	require.NoError(t, err)
	json2, err := pkg2.MarshalScenarioJSON()
	require.NoError(t, err)
	require.Equal(t, json1, json2)
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	base := generator.Params{
		CrisisType: scenario.CrisisCardiacArrest, NoiseTier: scenario.TierT4,
		ScenarioDate: scenarioDate(),
	}
	base.Seed = 1
	pkg1, err := generator.Generate(base)
	require.NoError(t, err)
	base.Seed = 2
	pkg2, err := generator.Generate(base)
	require.NoError(t, err)
	require.NotEqual(t, pkg1.Manifest().ContentHash(), pkg2.Manifest().ContentHash())
}

// TestGenerateCardiacArrestT4Seed42 exercises the concrete boundary scenario:
// a T4 cardiac-arrest scenario seeded 42 must place the crisis at heartbeat
// index 139 with exactly 160 total heartbeats, and every heartbeat from the
// crisis onward must show a flatlined wearable and stationary location.
func TestGenerateCardiacArrestT4Seed42(t *testing.T) {
	pkg, err := generator.Generate(generator.Params{
		CrisisType: scenario.CrisisCardiacArrest, NoiseTier: scenario.TierT4,
		Seed: 42, ScenarioDate: scenarioDate(),
	})
	require.NoError(t, err)

	require.Equal(t, 139, pkg.CrisisHeartbeatID())
	require.Equal(t, 160, len(pkg.Heartbeats()))
	require.Equal(t, "cardiac_arrest_T4_s42", pkg.DirectoryName())

	for i := pkg.CrisisHeartbeatID(); i < len(pkg.Heartbeats()); i++ {
		hb := pkg.Heartbeats()[i]
		require.NotNil(t, hb.Wearable())
		require.Equal(t, 0, hb.Wearable().HeartRate())
		require.Equal(t, 0, hb.Wearable().BloodOxygen())
		require.Equal(t, 0, hb.Wearable().Steps())
		require.NotNil(t, hb.Location())
		require.Equal(t, 0.0, hb.Location().SpeedMS())
	}

	before := pkg.Heartbeats()[pkg.CrisisHeartbeatID()-1]
	require.NotZero(t, before.Wearable().HeartRate())
}

// TestGenerateT1OnlyWearable exercises the T1 boundary scenario: a T1
// scenario must present wearable data only, with every other module nulled
// and the tool catalogue restricted to core tools.
func TestGenerateT1OnlyWearable(t *testing.T) {
	pkg, err := generator.Generate(generator.Params{
		CrisisType: scenario.CrisisCardiacArrest, NoiseTier: scenario.TierT1,
		Seed: 42, ScenarioDate: scenarioDate(),
	})
	require.NoError(t, err)

	for _, hb := range pkg.Heartbeats() {
		require.NotNil(t, hb.Wearable())
		require.Nil(t, hb.Location())
		require.Nil(t, hb.Weather())
		require.Nil(t, hb.Calendar())
		require.Nil(t, hb.Communications())
		require.Nil(t, hb.Financial())
	}
	for _, d := range pkg.ToolDefinitions() {
		require.NotContains(t, d.Name(), ".")
	}
}

func TestGenerateTierMonotonicModulePresence(t *testing.T) {
	for _, tier := range []scenario.Tier{scenario.TierT1, scenario.TierT2, scenario.TierT3, scenario.TierT4} {
		pkg, err := generator.Generate(generator.Params{
			CrisisType: scenario.CrisisCardiacArrest, NoiseTier: tier,
			Seed: 7, ScenarioDate: scenarioDate(),
		})
		require.NoError(t, err)
		hb := pkg.Heartbeats()[0]

		require.NotNil(t, hb.Wearable())
		require.Equal(t, tier.Rank() >= scenario.TierT2.Rank(), hb.Location() != nil)
		require.Equal(t, tier.Rank() >= scenario.TierT2.Rank(), hb.Weather() != nil)
		require.Equal(t, tier.Rank() >= scenario.TierT3.Rank(), hb.Calendar() != nil)
		require.Equal(t, tier.Rank() >= scenario.TierT3.Rank(), hb.Communications() != nil)
		require.Equal(t, tier.Rank() >= scenario.TierT4.Rank(), hb.Financial() != nil)
	}
}

func TestGenerateRejectsPastScenarioDate(t *testing.T) {
	_, err := generator.Generate(generator.Params{
		CrisisType: scenario.CrisisCardiacArrest, NoiseTier: scenario.TierT4,
		Seed: 1, ScenarioDate: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
}
