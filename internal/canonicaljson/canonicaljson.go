// Package canonicaljson produces deterministic, sorted-key JSON encodings and
// content hashes over them. It underlies the scenario package's content-hash
// integrity check: the generator and the runtime loader must agree, byte for
// byte, on what "the same heartbeats" serializes to.
package canonicaljson

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Marshal encodes v as JSON with object keys sorted lexicographically and no
// trailing newline. encoding/json already emits map[string]any keys in sorted
// order; round-tripping v through an untyped value before the final marshal
// guarantees that guarantee also applies to struct fields, regardless of the
// order they were declared in.
func Marshal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonicaljson: marshal: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("canonicaljson: round-trip: %w", err)
	}
	canonical, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("canonicaljson: canonical marshal: %w", err)
	}
	return canonical, nil
}

// Hash returns the lowercase hex-encoded SHA-256 digest of v's canonical JSON
// encoding.
func Hash(v any) (string, error) {
	canonical, err := Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// HashBytes returns the lowercase hex-encoded SHA-256 digest of an
// already-canonical byte slice, used when the caller has read a file off disk
// rather than constructed the value in memory.
func HashBytes(canonical []byte) string {
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}
