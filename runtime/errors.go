package runtime

import "errors"

// ErrScenarioLoad wraps every failure encountered while loading a scenario
// package from disk: a missing file, a schema/parse failure, or a content
// hash mismatch. The orchestrator treats all three identically — fail before
// any model call.
var ErrScenarioLoad = errors.New("runtime: scenario load failed")

// ErrContentHashMismatch indicates heartbeats.json's canonical serialization
// does not hash to the value recorded in manifest.json — either tampering or
// a generator/runtime canonicalization mismatch.
var ErrContentHashMismatch = errors.New("runtime: content hash mismatch")

// ErrMemoryPathTraversal is returned (wrapped inside an ErrorResponse, never
// propagated to the caller) when a memory key resolves outside the per-run
// working directory.
var ErrMemoryPathTraversal = errors.New("runtime: memory path traversal")
