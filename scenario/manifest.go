package scenario

import (
	"fmt"
	"time"
)

// ScenarioManifest records the content hash and provenance of a scenario
// package.
type ScenarioManifest struct {
	contentHash     string
	generatorVersion string
	generatedAt     time.Time
}

// NewScenarioManifest validates and constructs a ScenarioManifest.
// content_hash must be exactly 64 lowercase hex characters.
func NewScenarioManifest(contentHash, generatorVersion string, generatedAt time.Time) (*ScenarioManifest, error) {
	if !isHex64Lower(contentHash) {
		return nil, fmt.Errorf("%w: content_hash must be 64 lowercase hex characters, got %q", ErrInvalidManifest, contentHash)
	}
	if generatorVersion == "" {
		return nil, fmt.Errorf("%w: generator_version is required", ErrInvalidManifest)
	}
	if generatedAt.IsZero() {
		return nil, fmt.Errorf("%w: generated_at is required", ErrInvalidManifest)
	}
	return &ScenarioManifest{contentHash: contentHash, generatorVersion: generatorVersion, generatedAt: generatedAt}, nil
}

func (m *ScenarioManifest) ContentHash() string      { return m.contentHash }
func (m *ScenarioManifest) GeneratorVersion() string { return m.generatorVersion }
func (m *ScenarioManifest) GeneratedAt() time.Time   { return m.generatedAt }

func isHex64Lower(s string) bool {
	if len(s) != 64 {
		return false
	}
	for _, r := range s {
		isDigit := r >= '0' && r <= '9'
		isLowerHex := r >= 'a' && r <= 'f'
		if !isDigit && !isLowerHex {
			return false
		}
	}
	return true
}

type scenarioManifestJSON struct {
	ContentHash      string    `json:"content_hash"`
	GeneratorVersion string    `json:"generator_version"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// MarshalJSON implements json.Marshaler.
func (m *ScenarioManifest) MarshalJSON() ([]byte, error) {
	return marshalJSON(scenarioManifestJSON{
		ContentHash:      m.contentHash,
		GeneratorVersion: m.generatorVersion,
		GeneratedAt:      m.generatedAt,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Unlike most other scenario
// types, it re-validates on unmarshal: the manifest's own shape is exactly
// the thing §4.1 requires load-time validation to reject if malformed,
// independent of the separate content-hash-recomputation check in §4.3.1.
func (m *ScenarioManifest) UnmarshalJSON(data []byte) error {
	var wire scenarioManifestJSON
	if err := unmarshalJSON(data, &wire); err != nil {
		return err
	}
	built, err := NewScenarioManifest(wire.ContentHash, wire.GeneratorVersion, wire.GeneratedAt)
	if err != nil {
		return err
	}
	*m = *built
	return nil
}
