package generator

import (
	"math"
	"time"

	"github.com/crisisbench/crisisbench/scenario"
)

// wearableGenerator produces the wearable module payload for each heartbeat.
// It carries cross-heartbeat state (previous glucose reading, the
// per-scenario body-battery floor, the last battery value before the crisis)
// because several fields are seeded random walks or must freeze at their
// pre-crisis value once the crisis begins.
type wearableGenerator struct {
	prevGlucose      float64
	batteryFloor     int
	prevBattery      int
	frozenBattery    int
	haveFrozen       bool
	prevRunningBlock bool
}

func newWearableGenerator(rng *RNG) *wearableGenerator {
	return &wearableGenerator{
		prevGlucose:  95 + rng.Float64()*10,
		batteryFloor: 15 + rng.Intn(16), // per-scenario soft floor, 15-30
		prevBattery:  70 + rng.Intn(21),
	}
}

// Generate consumes exactly eight RNG draws per heartbeat regardless of branch
// taken, preserving the shared stream for every other module.
func (g *wearableGenerator) Generate(sched *PersonSchedule, heartbeatID int, ts time.Time) (*scenario.Wearable, error) {
	block := sched.BlockAt(ts)
	inCrisis := heartbeatID >= sched.CrisisHeartbeatID()
	rng := sched.RNG

	hrJitter := rng.NormFloat64()
	spo2Roll := rng.Float64()
	ecgRoll := rng.Float64()
	glucoseJitter := rng.NormFloat64()
	roundRoll := rng.Float64()
	batteryWobble := rng.NormFloat64()
	skinRoll := rng.Float64()
	glucoseDipRoll := rng.Float64()

	var heartRate int
	var spo2 int
	var steps int
	var ecg string
	var skinTemp float64
	var battery int

	switch {
	case inCrisis:
		heartRate = 0
		spo2 = 0
		steps = 0
		ecg = "flatline"
		skinTemp = crisisSkinTemp(ts.Sub(sched.Blocks[len(sched.Blocks)-1].Start))
		if !g.haveFrozen {
			g.frozenBattery = g.prevBattery
			g.haveFrozen = true
		}
		battery = g.frozenBattery
	default:
		isFirstOfRunning := block.ActivityName == "running" && !g.prevRunningBlock
		heartRate = int(math.Round(float64(block.HeartRateRange.Low) +
			(float64(block.HeartRateRange.High-block.HeartRateRange.Low))*0.4 +
			hrJitter*3))
		if isFirstOfRunning {
			// Warm-up sample: intermediate value between sedentary and full
			// running range so the wearer's heart rate doesn't jump instantly.
			heartRate = (70 + block.HeartRateRange.Low) / 2
		}
		if heartRate < 0 {
			heartRate = 0
		}

		switch {
		case spo2Roll > 0.97:
			spo2 = 100
		case spo2Roll < 0.03:
			spo2 = 93 + int(spo2Roll*100)%2
		default:
			// Base range is 95-99 inclusive (5 values), mapped uniformly
			// across the remaining [0.03, 0.97) span of the roll.
			spo2 = 95 + int((spo2Roll-0.03)/0.94*5)
		}

		steps = stepsForBlock(block, heartbeatID)

		ecg = "normal sinus rhythm"
		if ecgRoll < 0.03 {
			ecg = "motion artifact, signal quality degraded"
		}

		skinTemp = 33.5 + skinRoll*0.8

		delta := g.prevGlucose + glucoseJitter*1.5
		if block.ActivityName == "running" {
			delta -= 3 + 5*glucoseDipRoll
		}
		if roundRoll < 0.15 {
			delta = math.Round(delta)
		}
		g.prevGlucose = delta

		battery = g.prevBattery - 1
		if battery < g.batteryFloor {
			battery = g.batteryFloor + int(batteryWobble)
		}
		g.prevBattery = battery
	}
	g.prevRunningBlock = block.ActivityName == "running" && !inCrisis

	return scenario.NewWearable(scenario.WearableFields{
		HeartRate:       heartRate,
		BloodOxygen:     clampInt(spo2, 0, 100),
		Steps:           steps,
		SkinTempC:       round1(skinTemp),
		ECGSummary:      ecg,
		BloodGlucose:    round1(g.prevGlucose),
		CaloriesBurned:  caloriesForBlock(block, heartbeatID),
		SleepStage:      "awake",
		RespiratoryRate: 14 + int(hrJitter),
		BodyBattery:     clampInt(battery, 0, 100),
	})
}

// crisisSkinTemp follows Newton's law of cooling toward an effective ambient
// temperature of 28C (clothed skin loses heat more slowly than bare skin
// would against open air), with a rate constant tuned so the one-decimal
// rounded curve still shows a visibly steeper initial drop.
func crisisSkinTemp(elapsed time.Duration) float64 {
	const ambient = 28.0
	const initial = 34.2
	const k = 0.018 // per minute
	minutes := elapsed.Minutes()
	return ambient + (initial-ambient)*math.Exp(-k*minutes)
}

func stepsForBlock(block ActivityBlock, heartbeatID int) int {
	switch block.ActivityName {
	case "running":
		return 110 + (heartbeatID % 7 * 5)
	case "commute_to_office", "evening_commute":
		return 40 + (heartbeatID % 5 * 3)
	case "waking", "breakfast", "home_brief":
		return 5 + heartbeatID%4
	default:
		return heartbeatID % 3
	}
}

func caloriesForBlock(block ActivityBlock, heartbeatID int) int {
	switch block.ActivityName {
	case "running":
		return 45 + heartbeatID%6
	default:
		return 8 + heartbeatID%4
	}
}

func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
