package scenario

import "errors"

var (
	// ErrInvalidManifest is returned when a ScenarioManifest fails validation,
	// e.g. a content hash that is not exactly 64 lowercase hex characters.
	ErrInvalidManifest = errors.New("scenario: invalid manifest")

	// ErrContentHashMismatch names a recomputed heartbeats.json hash that does
	// not match manifest.content_hash. No function in this package returns
	// it; runtime.LoadScenario reports that case with
	// runtime.ErrContentHashMismatch.
	ErrContentHashMismatch = errors.New("scenario: content hash mismatch")

	// ErrInvalidPackage is returned when a ScenarioPackage fails cross-field
	// validation (e.g. crisis_heartbeat_id out of range).
	ErrInvalidPackage = errors.New("scenario: invalid package")
)
