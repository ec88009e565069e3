package scenario

import "fmt"

// CrisisType names the scripted emergency narrative a scenario dramatizes.
// The only narrative implemented in this version is cardiac arrest (§4.2.3);
// the type stays a string rather than a closed enum so a future generator
// addition does not require touching this package.
type CrisisType string

// CrisisCardiacArrest is the cardiac-arrest narrative described in §4.2.3.
const CrisisCardiacArrest CrisisType = "cardiac_arrest"

// ScenarioPackage is the root, immutable record produced by the generator
// and consumed by the runtime. version is the schema version of this record
// shape, distinct from ScenarioManifest.generator_version (the generator
// binary's own version).
type ScenarioPackage struct {
	scenarioID        string
	version           string
	seed              int64
	crisisType        CrisisType
	noiseTier         Tier
	crisisHeartbeatID int
	person            *PersonProfile
	contacts          []*Contact
	agentIdentity     *AgentIdentity
	heartbeats        []*HeartbeatPayload
	toolDefinitions   []*ToolDefinition
	memoryFiles       []*MemoryFile
	personaDocument   string
	manifest          *ScenarioManifest
}

// ScenarioPackageFields is the constructor argument for NewScenarioPackage.
type ScenarioPackageFields struct {
	ScenarioID        string
	Version           string
	Seed              int64
	CrisisType        CrisisType
	NoiseTier         Tier
	CrisisHeartbeatID int
	Person            *PersonProfile
	Contacts          []*Contact
	AgentIdentity     *AgentIdentity
	Heartbeats        []*HeartbeatPayload
	ToolDefinitions   []*ToolDefinition
	MemoryFiles       []*MemoryFile
	PersonaDocument   string
	Manifest          *ScenarioManifest
}

// NewScenarioPackage validates and constructs a ScenarioPackage.
func NewScenarioPackage(f ScenarioPackageFields) (*ScenarioPackage, error) {
	if f.ScenarioID == "" {
		return nil, fmt.Errorf("%w: scenario_id is required", ErrInvalidPackage)
	}
	if !f.NoiseTier.Valid() {
		return nil, fmt.Errorf("%w: invalid noise_tier %q", ErrInvalidPackage, f.NoiseTier)
	}
	if f.Person == nil {
		return nil, fmt.Errorf("%w: person is required", ErrInvalidPackage)
	}
	if f.AgentIdentity == nil {
		return nil, fmt.Errorf("%w: agent_identity is required", ErrInvalidPackage)
	}
	if f.Manifest == nil {
		return nil, fmt.Errorf("%w: manifest is required", ErrInvalidPackage)
	}
	if len(f.Heartbeats) == 0 {
		return nil, fmt.Errorf("%w: heartbeats must not be empty", ErrInvalidPackage)
	}
	if f.CrisisHeartbeatID < 0 || f.CrisisHeartbeatID >= len(f.Heartbeats) {
		return nil, fmt.Errorf("%w: crisis_heartbeat_id %d out of range [0,%d)", ErrInvalidPackage, f.CrisisHeartbeatID, len(f.Heartbeats))
	}
	return &ScenarioPackage{
		scenarioID:        f.ScenarioID,
		version:           f.Version,
		seed:              f.Seed,
		crisisType:        f.CrisisType,
		noiseTier:         f.NoiseTier,
		crisisHeartbeatID: f.CrisisHeartbeatID,
		person:            f.Person,
		contacts:          f.Contacts,
		agentIdentity:     f.AgentIdentity,
		heartbeats:        f.Heartbeats,
		toolDefinitions:   f.ToolDefinitions,
		memoryFiles:       f.MemoryFiles,
		personaDocument:   f.PersonaDocument,
		manifest:          f.Manifest,
	}, nil
}

func (s *ScenarioPackage) ScenarioID() string                 { return s.scenarioID }
func (s *ScenarioPackage) Version() string                    { return s.version }
func (s *ScenarioPackage) Seed() int64                         { return s.seed }
func (s *ScenarioPackage) CrisisType() CrisisType              { return s.crisisType }
func (s *ScenarioPackage) NoiseTier() Tier                     { return s.noiseTier }
func (s *ScenarioPackage) CrisisHeartbeatID() int              { return s.crisisHeartbeatID }
func (s *ScenarioPackage) Person() *PersonProfile              { return s.person }
func (s *ScenarioPackage) Contacts() []*Contact                { return s.contacts }
func (s *ScenarioPackage) AgentIdentity() *AgentIdentity       { return s.agentIdentity }
func (s *ScenarioPackage) Heartbeats() []*HeartbeatPayload     { return s.heartbeats }
func (s *ScenarioPackage) ToolDefinitions() []*ToolDefinition  { return s.toolDefinitions }
func (s *ScenarioPackage) MemoryFiles() []*MemoryFile          { return s.memoryFiles }
func (s *ScenarioPackage) PersonaDocument() string             { return s.personaDocument }
func (s *ScenarioPackage) Manifest() *ScenarioManifest         { return s.manifest }

// DirectoryName is the on-disk directory name convention from §4.2.9 and
// §6.1: {crisis_type}_{tier}_s{seed}.
func (s *ScenarioPackage) DirectoryName() string {
	return fmt.Sprintf("%s_%s_s%d", s.crisisType, s.noiseTier, s.seed)
}

// scenarioJSON is the wire shape of scenario.json: ScenarioPackage minus
// heartbeats, tool_definitions, memory_files, and persona_document, each of
// which is written to its own file per §4.2.9.
type scenarioJSON struct {
	ScenarioID        string           `json:"scenario_id"`
	Version           string           `json:"version"`
	Seed              int64            `json:"seed"`
	CrisisType        CrisisType       `json:"crisis_type"`
	NoiseTier         Tier             `json:"noise_tier"`
	CrisisHeartbeatID int              `json:"crisis_heartbeat_id"`
	Person            *PersonProfile   `json:"person"`
	Contacts          []*Contact       `json:"contacts"`
	AgentIdentity     *AgentIdentity   `json:"agent_identity"`
	Manifest          *ScenarioManifest `json:"manifest"`
}

// MarshalScenarioJSON renders the scenario.json companion file contents.
func (s *ScenarioPackage) MarshalScenarioJSON() ([]byte, error) {
	return marshalJSON(scenarioJSON{
		ScenarioID:        s.scenarioID,
		Version:           s.version,
		Seed:              s.seed,
		CrisisType:        s.crisisType,
		NoiseTier:         s.noiseTier,
		CrisisHeartbeatID: s.crisisHeartbeatID,
		Person:            s.person,
		Contacts:          s.contacts,
		AgentIdentity:     s.agentIdentity,
		Manifest:          s.manifest,
	})
}
