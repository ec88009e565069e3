package generator

import "github.com/crisisbench/crisisbench/scenario"

// FilterByTier rebuilds heartbeats with only the modules the given tier
// retains left non-nil; every other module is nulled out so the agent never
// sees it. The underlying world (every generator's output) is identical
// across tiers for a given seed — this function is the only place tier
// actually changes anything about heartbeat content.
func FilterByTier(heartbeats []*scenario.HeartbeatPayload, tier scenario.Tier) ([]*scenario.HeartbeatPayload, error) {
	out := make([]*scenario.HeartbeatPayload, len(heartbeats))
	for i, hb := range heartbeats {
		fields := scenario.HeartbeatFields{
			HeartbeatID: hb.HeartbeatID(),
			Timestamp:   hb.Timestamp(),
			Wearable:    hb.Wearable(),
		}
		if tier.Rank() >= scenario.TierT2.Rank() {
			fields.Location = hb.Location()
			fields.Weather = hb.Weather()
		}
		if tier.Rank() >= scenario.TierT3.Rank() {
			fields.Calendar = hb.Calendar()
			fields.Communications = hb.Communications()
		}
		if tier.Rank() >= scenario.TierT4.Rank() {
			fields.Financial = hb.Financial()
		}
		rebuilt, err := scenario.NewHeartbeatPayload(fields)
		if err != nil {
			return nil, err
		}
		out[i] = rebuilt
	}
	return out, nil
}
