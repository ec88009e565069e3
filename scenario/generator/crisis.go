package generator

import (
	"fmt"

	"github.com/crisisbench/crisisbench/scenario"
)

// EnforceCrisis walks heartbeats from crisisHeartbeatID onward and overlays
// the small set of invariants §4.2.5 requires of the wearable and location
// modules: heart rate, blood oxygen, and steps zero in wearable; speed zero
// in location. The generator-native crisis logic in wearable_gen.go and
// location_gen.go already produces these values; this pass exists as a
// defensive consistency check, not the primary mechanism, and is idempotent
// (running it twice yields the same heartbeats). It must not overwrite
// realism details the module generators are responsible for (sub-meter GPS
// drift, Newton's-law skin-temperature cooling) — it only clamps the handful
// of fields named above and sets location movement to "stationary".
//
// It runs before tier filtering, so every heartbeat in this window must
// still carry both modules regardless of the scenario's tier; a nil module
// here indicates an upstream generator bug, not a tier-appropriate absence.
func EnforceCrisis(heartbeats []*scenario.HeartbeatPayload, crisisHeartbeatID int) error {
	for i := crisisHeartbeatID; i < len(heartbeats); i++ {
		hb := heartbeats[i]
		if hb.Wearable() == nil {
			return fmt.Errorf("generator: crisis enforcement: heartbeat %d missing wearable module", hb.HeartbeatID())
		}
		if hb.Location() == nil {
			return fmt.Errorf("generator: crisis enforcement: heartbeat %d missing location module", hb.HeartbeatID())
		}

		w := hb.Wearable()
		enforced, err := scenario.NewWearable(scenario.WearableFields{
			HeartRate:       0,
			BloodOxygen:     0,
			Steps:           0,
			SkinTempC:       w.SkinTempC(),
			ECGSummary:      w.ECGSummary(),
			BloodGlucose:    w.BloodGlucose(),
			CaloriesBurned:  w.CaloriesBurned(),
			SleepStage:      w.SleepStage(),
			RespiratoryRate: w.RespiratoryRate(),
			BodyBattery:     w.BodyBattery(),
		})
		if err != nil {
			return fmt.Errorf("generator: crisis enforcement: heartbeat %d: %w", hb.HeartbeatID(), err)
		}

		l := hb.Location()
		enforcedLoc, err := scenario.NewLocation(scenario.LocationFields{
			Latitude:   l.Latitude(),
			Longitude:  l.Longitude(),
			AltitudeM:  l.AltitudeM(),
			SpeedMS:    0,
			HeadingDeg: l.HeadingDeg(),
			AccuracyM:  l.AccuracyM(),
			Geofence:   l.Geofence(),
			Movement:   "stationary",
		})
		if err != nil {
			return fmt.Errorf("generator: crisis enforcement: heartbeat %d: %w", hb.HeartbeatID(), err)
		}

		rebuilt, err := scenario.NewHeartbeatPayload(scenario.HeartbeatFields{
			HeartbeatID:    hb.HeartbeatID(),
			Timestamp:      hb.Timestamp(),
			Wearable:       enforced,
			Location:       enforcedLoc,
			Weather:        hb.Weather(),
			Calendar:       hb.Calendar(),
			Communications: hb.Communications(),
			Financial:      hb.Financial(),
		})
		if err != nil {
			return fmt.Errorf("generator: crisis enforcement: heartbeat %d: %w", hb.HeartbeatID(), err)
		}
		heartbeats[i] = rebuilt
	}
	return nil
}
