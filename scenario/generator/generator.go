package generator

import (
	"fmt"
	"time"

	"github.com/crisisbench/crisisbench/internal/canonicaljson"
	"github.com/crisisbench/crisisbench/scenario"
)

// GeneratorVersion is recorded in every manifest this package produces.
const GeneratorVersion = "crisisbench-generator/1"

// Params are the generator's entry-point inputs (§4.2.1): given the same
// params, Generate produces byte-identical scenario files (after canonical
// JSON normalization) and an identical content hash.
type Params struct {
	CrisisType   scenario.CrisisType
	NoiseTier    scenario.Tier
	Seed         int64
	ScenarioDate time.Time
}

// Generate produces a complete, deterministic, schema-valid ScenarioPackage
// for params. Internally every module generator always runs for every
// heartbeat (tier filtering happens afterward, at the packaging boundary),
// so the shared random stream is identical across tiers for the same seed.
func Generate(params Params) (*scenario.ScenarioPackage, error) {
	if !params.NoiseTier.Valid() {
		return nil, fmt.Errorf("generator: invalid noise tier %q", params.NoiseTier)
	}

	rng := NewRNG(params.Seed)
	sched, err := NewPersonSchedule(params.ScenarioDate, rng)
	if err != nil {
		return nil, err
	}

	person, err := scenario.NewPersonProfile(scenario.PersonProfile{
		Name: "Morgan Reyes", Age: 34, Occupation: "product designer",
		HomeAddress: "412 Willow St", OfficeAddress: "88 Market Ave",
		Birthday: time.Date(params.ScenarioDate.Year()-34, time.March, 12, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		return nil, err
	}
	agentIdentity, err := scenario.NewAgentIdentity("Aria", "warm, efficient, and a little dry-witted")
	if err != nil {
		return nil, err
	}
	contacts, err := buildContacts()
	if err != nil {
		return nil, err
	}

	wearableGen := newWearableGenerator(rng)
	locationGen := newLocationGenerator()
	weatherGen := newWeatherGenerator(rng)
	calendarGen := newCalendarGenerator(sched)
	commsGen := newCommunicationsGenerator()
	financialGen := newFinancialGenerator(rng)

	timestamps := sched.HeartbeatTimestamps()
	heartbeats := make([]*scenario.HeartbeatPayload, len(timestamps))
	for i, ts := range timestamps {
		wearable, err := wearableGen.Generate(sched, i, ts)
		if err != nil {
			return nil, fmt.Errorf("generator: wearable heartbeat %d: %w", i, err)
		}
		location, err := locationGen.Generate(sched, i, ts)
		if err != nil {
			return nil, fmt.Errorf("generator: location heartbeat %d: %w", i, err)
		}
		weather, err := weatherGen.Generate(sched, i, ts)
		if err != nil {
			return nil, fmt.Errorf("generator: weather heartbeat %d: %w", i, err)
		}
		calendar, err := calendarGen.Generate(sched, i, ts)
		if err != nil {
			return nil, fmt.Errorf("generator: calendar heartbeat %d: %w", i, err)
		}
		comms, err := commsGen.Generate(sched, i, ts)
		if err != nil {
			return nil, fmt.Errorf("generator: communications heartbeat %d: %w", i, err)
		}
		financial, err := financialGen.Generate(sched, i, ts)
		if err != nil {
			return nil, fmt.Errorf("generator: financial heartbeat %d: %w", i, err)
		}

		hb, err := scenario.NewHeartbeatPayload(scenario.HeartbeatFields{
			HeartbeatID: i, Timestamp: ts,
			Wearable: wearable, Location: location, Weather: weather,
			Calendar: calendar, Communications: comms, Financial: financial,
		})
		if err != nil {
			return nil, fmt.Errorf("generator: heartbeat %d: %w", i, err)
		}
		heartbeats[i] = hb
	}

	if err := EnforceCrisis(heartbeats, sched.CrisisHeartbeatID()); err != nil {
		return nil, err
	}

	filtered, err := FilterByTier(heartbeats, params.NoiseTier)
	if err != nil {
		return nil, err
	}

	tools, err := BuildToolCatalogue(params.NoiseTier)
	if err != nil {
		return nil, err
	}

	memoryFiles, err := BuildMemoryFiles(person, agentIdentity)
	if err != nil {
		return nil, err
	}

	personaDoc, err := RenderPersona(person, agentIdentity, contacts)
	if err != nil {
		return nil, err
	}

	contentHash, err := canonicaljson.Hash(filtered)
	if err != nil {
		return nil, fmt.Errorf("generator: hashing heartbeats: %w", err)
	}
	manifest, err := scenario.NewScenarioManifest(contentHash, GeneratorVersion, params.ScenarioDate)
	if err != nil {
		return nil, err
	}

	return scenario.NewScenarioPackage(scenario.ScenarioPackageFields{
		ScenarioID:        fmt.Sprintf("%s_%s_s%d", params.CrisisType, params.NoiseTier, params.Seed),
		Version:           "1",
		Seed:              params.Seed,
		CrisisType:        params.CrisisType,
		NoiseTier:         params.NoiseTier,
		CrisisHeartbeatID: sched.CrisisHeartbeatID(),
		Person:            person,
		Contacts:          contacts,
		AgentIdentity:     agentIdentity,
		Heartbeats:        filtered,
		ToolDefinitions:   tools,
		MemoryFiles:       memoryFiles,
		PersonaDocument:   personaDoc,
		Manifest:          manifest,
	})
}

func buildContacts() ([]*scenario.Contact, error) {
	raw := []struct{ id, name, relationship, phone string }{
		{"c1", "Sam Rivera", "partner", "+1-555-0101"},
		{"c2", "Priya Natarajan", "coworker", "+1-555-0102"},
		{"c3", "Jordan Blake", "manager", "+1-555-0103"},
		{"c4", "Dana Reyes", "sibling", "+1-555-0104"},
	}
	contacts := make([]*scenario.Contact, 0, len(raw))
	for _, r := range raw {
		c, err := scenario.NewContact(r.id, r.name, r.relationship, r.phone)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}
