package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/crisisbench/crisisbench/internal/canonicaljson"
	"github.com/crisisbench/crisisbench/scenario"
	"github.com/crisisbench/crisisbench/telemetry"
)

// LoadedScenario bundles a validated ScenarioPackage with the temporary,
// per-run working memory directory it was seeded into (§3.4, §4.3.1).
type LoadedScenario struct {
	Package *scenario.ScenarioPackage
	WorkDir string
}

// requiredFiles are the files §4.2.9/§6.1 mandates inside a scenario
// package directory.
var requiredFiles = []string{"manifest.json", "scenario.json", "heartbeats.json", "tools.json", "persona.md"}

// LoadOption configures optional telemetry on a LoadScenario call.
type LoadOption func(*loadOptions)

type loadOptions struct {
	tracer telemetry.Tracer
}

// WithLoadTracer sets the span tracer wrapping the load.
func WithLoadTracer(tracer telemetry.Tracer) LoadOption {
	return func(o *loadOptions) { o.tracer = tracer }
}

// LoadScenario reads a scenario package directory, verifies every required
// file is present, parses each against its record shape, recomputes
// heartbeats.json's canonical-JSON SHA-256 hash and compares it to the
// manifest, and — only if all of that succeeds — seeds a fresh temporary
// working memory directory with the package's memory files. It fails before
// any model call can occur (§4.3.1, §7).
func LoadScenario(dir string, opts ...LoadOption) (*LoadedScenario, error) {
	lo := loadOptions{tracer: telemetry.NewNoopTracer()}
	for _, opt := range opts {
		opt(&lo)
	}
	_, span := lo.tracer.Start(context.Background(), "scenario_load")
	span.SetAttribute("dir", dir)
	defer span.End()

	loaded, err := loadScenarioFiles(dir)
	if err != nil {
		span.RecordError(err)
	}
	return loaded, err
}

func loadScenarioFiles(dir string) (*LoadedScenario, error) {
	for _, name := range requiredFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return nil, fmt.Errorf("%w: missing %s: %v", ErrScenarioLoad, name, err)
		}
	}

	manifest, err := loadManifest(dir)
	if err != nil {
		return nil, err
	}

	heartbeatsRaw, err := os.ReadFile(filepath.Join(dir, "heartbeats.json"))
	if err != nil {
		return nil, fmt.Errorf("%w: reading heartbeats.json: %v", ErrScenarioLoad, err)
	}
	var heartbeats []*scenario.HeartbeatPayload
	if err := json.Unmarshal(heartbeatsRaw, &heartbeats); err != nil {
		return nil, fmt.Errorf("%w: parsing heartbeats.json: %v", ErrScenarioLoad, err)
	}

	recomputed, err := canonicaljson.Hash(heartbeats)
	if err != nil {
		return nil, fmt.Errorf("%w: rehashing heartbeats.json: %v", ErrScenarioLoad, err)
	}
	if recomputed != manifest.ContentHash() {
		return nil, fmt.Errorf("%w: %w: manifest says %s, recomputed %s", ErrScenarioLoad, ErrContentHashMismatch, manifest.ContentHash(), recomputed)
	}

	toolsRaw, err := os.ReadFile(filepath.Join(dir, "tools.json"))
	if err != nil {
		return nil, fmt.Errorf("%w: reading tools.json: %v", ErrScenarioLoad, err)
	}
	var tools []*scenario.ToolDefinition
	if err := json.Unmarshal(toolsRaw, &tools); err != nil {
		return nil, fmt.Errorf("%w: parsing tools.json: %v", ErrScenarioLoad, err)
	}

	var scenarioFields struct {
		ScenarioID        string                   `json:"scenario_id"`
		Version           string                   `json:"version"`
		Seed              int64                    `json:"seed"`
		CrisisType        scenario.CrisisType      `json:"crisis_type"`
		NoiseTier         scenario.Tier            `json:"noise_tier"`
		CrisisHeartbeatID int                      `json:"crisis_heartbeat_id"`
		Person            *scenario.PersonProfile  `json:"person"`
		Contacts          []*scenario.Contact      `json:"contacts"`
		AgentIdentity     *scenario.AgentIdentity  `json:"agent_identity"`
		Manifest          *scenario.ScenarioManifest `json:"manifest"`
	}
	scenarioRaw, err := os.ReadFile(filepath.Join(dir, "scenario.json"))
	if err != nil {
		return nil, fmt.Errorf("%w: reading scenario.json: %v", ErrScenarioLoad, err)
	}
	if err := json.Unmarshal(scenarioRaw, &scenarioFields); err != nil {
		return nil, fmt.Errorf("%w: parsing scenario.json: %v", ErrScenarioLoad, err)
	}

	personaRaw, err := os.ReadFile(filepath.Join(dir, "persona.md"))
	if err != nil {
		return nil, fmt.Errorf("%w: reading persona.md: %v", ErrScenarioLoad, err)
	}

	memoryFiles, err := loadMemoryFiles(filepath.Join(dir, "memories"))
	if err != nil {
		return nil, err
	}

	pkg, err := scenario.NewScenarioPackage(scenario.ScenarioPackageFields{
		ScenarioID:        scenarioFields.ScenarioID,
		Version:           scenarioFields.Version,
		Seed:              scenarioFields.Seed,
		CrisisType:        scenarioFields.CrisisType,
		NoiseTier:         scenarioFields.NoiseTier,
		CrisisHeartbeatID: scenarioFields.CrisisHeartbeatID,
		Person:            scenarioFields.Person,
		Contacts:          scenarioFields.Contacts,
		AgentIdentity:     scenarioFields.AgentIdentity,
		Heartbeats:        heartbeats,
		ToolDefinitions:   tools,
		MemoryFiles:       memoryFiles,
		PersonaDocument:   string(personaRaw),
		Manifest:          manifest,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScenarioLoad, err)
	}

	workDir, err := seedWorkingMemoryDir(pkg)
	if err != nil {
		return nil, err
	}

	return &LoadedScenario{Package: pkg, WorkDir: workDir}, nil
}

func loadManifest(dir string) (*scenario.ScenarioManifest, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		return nil, fmt.Errorf("%w: reading manifest.json: %v", ErrScenarioLoad, err)
	}
	var manifest scenario.ScenarioManifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("%w: parsing manifest.json: %v", ErrScenarioLoad, err)
	}
	return &manifest, nil
}

func loadMemoryFiles(memDir string) ([]*scenario.MemoryFile, error) {
	entries, err := os.ReadDir(memDir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading memories/: %v", ErrScenarioLoad, err)
	}
	var files []*scenario.MemoryFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(memDir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrScenarioLoad, e.Name(), err)
		}
		key := e.Name()
		if ext := filepath.Ext(key); ext != "" {
			key = key[:len(key)-len(ext)]
		}
		mf, err := scenario.NewMemoryFile(key, string(content))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScenarioLoad, err)
		}
		files = append(files, mf)
	}
	return files, nil
}

// seedWorkingMemoryDir creates a fresh temporary directory and writes one
// "{key}.md" file per pkg's memory files, UTF-8, flush-on-write (§3.4,
// §4.3.1).
func seedWorkingMemoryDir(pkg *scenario.ScenarioPackage) (string, error) {
	dir, err := os.MkdirTemp("", "crisisbench-memory-*")
	if err != nil {
		return "", fmt.Errorf("%w: creating working memory directory: %v", ErrScenarioLoad, err)
	}
	for _, mf := range pkg.MemoryFiles() {
		path := filepath.Join(dir, mf.Key()+".md")
		if err := os.WriteFile(path, []byte(mf.Content()), 0o644); err != nil {
			return "", fmt.Errorf("%w: seeding memory file %s: %v", ErrScenarioLoad, mf.Key(), err)
		}
	}
	return dir, nil
}
