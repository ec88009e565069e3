package canonicaljson_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crisisbench/crisisbench/internal/canonicaljson"
)

type sample struct {
	Zeta  string `json:"zeta"`
	Alpha int    `json:"alpha"`
}

func TestMarshalSortsKeys(t *testing.T) {
	out, err := canonicaljson.Marshal(sample{Zeta: "z", Alpha: 1})
	require.NoError(t, err)

	var asMap map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &asMap))

	// alpha must appear before zeta in the encoded byte stream.
	require.Less(t, indexOf(out, "alpha"), indexOf(out, "zeta"))
}

func TestMarshalDeterministic(t *testing.T) {
	in := sample{Zeta: "hello", Alpha: 42}
	a, err := canonicaljson.Marshal(in)
	require.NoError(t, err)
	b, err := canonicaljson.Marshal(in)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestHashStable(t *testing.T) {
	in := []sample{{Zeta: "a", Alpha: 1}, {Zeta: "b", Alpha: 2}}
	h1, err := canonicaljson.Hash(in)
	require.NoError(t, err)
	h2, err := canonicaljson.Hash(in)
	require.NoError(t, err)
	require.Equal(t, h1, h2)
	require.Len(t, h1, 64)
}

func TestHashChangesWithContent(t *testing.T) {
	h1, err := canonicaljson.Hash(sample{Zeta: "a", Alpha: 1})
	require.NoError(t, err)
	h2, err := canonicaljson.Hash(sample{Zeta: "a", Alpha: 2})
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

func indexOf(b []byte, s string) int {
	for i := 0; i+len(s) <= len(b); i++ {
		if string(b[i:i+len(s)]) == s {
			return i
		}
	}
	return -1
}
