// Package generator implements the deterministic scenario generator: given
// (crisis_type, noise_tier, seed, scenario_date, output_directory) it
// produces a complete, byte-identical-for-identical-inputs scenario package.
package generator

import "math/rand"

// RNG is the single seeded random source threaded by reference through every
// module generator. Passing it by reference (rather than re-seeding per
// module) is load-bearing: the determinism contract in §4.2.2 requires a
// single shared stream so that a module generator added, removed, or skipped
// by tier filtering never perturbs another module's draws — filtering
// happens at packaging time, after every generator has already consumed its
// fixed per-heartbeat sample count.
type RNG struct {
	r *rand.Rand
}

// NewRNG seeds a new RNG. Uses math/rand (not math/rand/v2): the example
// pack's own deterministic simulators (jhkimqd-chaos-utils's fuzz sampler)
// seed a plain *rand.Rand for exactly this kind of reproducible sampling, and
// no third-party PRNG appears anywhere in the retrieved corpus.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0).
func (g *RNG) Float64() float64 { return g.r.Float64() }

// Intn returns a pseudo-random int in [0, n).
func (g *RNG) Intn(n int) int { return g.r.Intn(n) }

// NormFloat64 returns a normally distributed float64 (mean 0, stddev 1).
func (g *RNG) NormFloat64() float64 { return g.r.NormFloat64() }

// Sample burns exactly one draw from the stream without using its value.
// Module generators call this on any branch that would otherwise skip a
// sample, preserving the fixed per-heartbeat sample count §4.2.2 requires.
func (g *RNG) Sample() { _ = g.r.Float64() }
