package scenario

// Tier is a discrete noise level controlling which modules appear in
// heartbeats and which tools appear to the agent. Same seed + same tier +
// same crisis type yields a byte-identical scenario package.
type Tier string

const (
	// TierT1 retains only the wearable module and core tools.
	TierT1 Tier = "T1"
	// TierT2 adds location and weather, plus the weather tool.
	TierT2 Tier = "T2"
	// TierT3 adds calendar and communications, plus the calendar tool and the
	// MCP noise-tool catalogue.
	TierT3 Tier = "T3"
	// TierT4 adds financial, plus the financial tools.
	TierT4 Tier = "T4"
)

// Valid reports whether t is one of the four defined tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierT1, TierT2, TierT3, TierT4:
		return true
	default:
		return false
	}
}

// Rank orders tiers for monotonicity checks: T1 < T2 < T3 < T4.
func (t Tier) Rank() int {
	switch t {
	case TierT1:
		return 1
	case TierT2:
		return 2
	case TierT3:
		return 3
	case TierT4:
		return 4
	default:
		return 0
	}
}
