package generator

import (
	"fmt"
	"time"
)

// HeartRateRange is an inclusive (low, high) bound on heart rate for an
// activity block.
type HeartRateRange struct {
	Low, High int
}

// LocationKey names a fixed coordinate pair an activity block is anchored
// to, resolved to real latitude/longitude by the location generator.
type LocationKey string

const (
	LocationHome       LocationKey = "home"
	LocationOffice     LocationKey = "office"
	LocationTransit    LocationKey = "transit"
	LocationPark       LocationKey = "park"
)

// ActivityBlock is one scripted segment of the simulated day. Mutable and
// internal to the generator — it never crosses the scenario/runtime
// boundary; only its effects (module payload values) do.
type ActivityBlock struct {
	Start          time.Time
	End            time.Time
	ActivityName   string
	LocationKey    LocationKey
	HeartRateRange HeartRateRange
}

// crisisBlockHeartRate is the scripted (0, 0) range that marks the CRISIS
// block, per §3.1.
var crisisBlockHeartRate = HeartRateRange{Low: 0, High: 0}

// PersonSchedule owns the ordered activity blocks for one simulated day and
// a shared RNG used by every module generator.
type PersonSchedule struct {
	ScenarioDate time.Time
	Blocks       []ActivityBlock
	RNG          *RNG

	heartbeatCadence   time.Duration
	postCrisisBeats    int
	crisisHeartbeatIdx int
	heartbeats         []time.Time
}

// minFutureYear is the earliest scenario_date.year accepted: far enough out
// that it lies outside any plausible LLM training-data window.
const minFutureYear = 2027

// heartbeatCadence is the fixed 5-minute tick between heartbeats.
const heartbeatCadence = 5 * time.Minute

// postCrisisHeartbeats is the fixed trailing window run after the crisis
// block begins.
const postCrisisHeartbeats = 20

// NewPersonSchedule builds the cardiac-arrest narrative timeline for
// scenarioDate: waking, breakfast, commute, office work punctuated by a
// meeting and lunch, afternoon work, evening commute, a brief stop at home,
// a run, then the terminal CRISIS block. scenarioDate must fall in
// minFutureYear or later.
func NewPersonSchedule(scenarioDate time.Time, rng *RNG) (*PersonSchedule, error) {
	if scenarioDate.Year() < minFutureYear {
		return nil, fmt.Errorf("generator: scenario_date.year must be >= %d, got %d", minFutureYear, scenarioDate.Year())
	}
	day := func(h, m int) time.Time {
		return time.Date(scenarioDate.Year(), scenarioDate.Month(), scenarioDate.Day(), h, m, 0, 0, scenarioDate.Location())
	}

	bounds := []struct {
		start    time.Time
		name     string
		loc      LocationKey
		hr       HeartRateRange
	}{
		{day(6, 30), "waking", LocationHome, HeartRateRange{58, 68}},
		{day(7, 0), "breakfast", LocationHome, HeartRateRange{62, 72}},
		{day(7, 30), "commute_to_office", LocationTransit, HeartRateRange{68, 88}},
		{day(8, 15), "morning_work", LocationOffice, HeartRateRange{62, 78}},
		{day(10, 30), "meeting", LocationOffice, HeartRateRange{68, 84}},
		{day(12, 0), "lunch", LocationOffice, HeartRateRange{66, 80}},
		{day(13, 0), "afternoon_work", LocationOffice, HeartRateRange{62, 78}},
		{day(17, 0), "evening_commute", LocationTransit, HeartRateRange{68, 90}},
		{day(17, 45), "home_brief", LocationHome, HeartRateRange{64, 76}},
		{day(17, 50), "running", LocationPark, HeartRateRange{110, 160}},
		{day(18, 5), "CRISIS", LocationPark, crisisBlockHeartRate},
	}

	blocks := make([]ActivityBlock, len(bounds))
	for i, b := range bounds {
		blocks[i] = ActivityBlock{Start: b.start, ActivityName: b.name, LocationKey: b.loc, HeartRateRange: b.hr}
	}
	for i := 0; i < len(blocks)-1; i++ {
		blocks[i].End = blocks[i+1].Start
	}

	sched := &PersonSchedule{
		ScenarioDate:     scenarioDate,
		Blocks:           blocks,
		RNG:              rng,
		heartbeatCadence: heartbeatCadence,
		postCrisisBeats:  postCrisisHeartbeats,
	}
	sched.buildHeartbeats()
	return sched, nil
}

func (s *PersonSchedule) buildHeartbeats() {
	crisisStart := s.Blocks[len(s.Blocks)-1].Start
	t := s.Blocks[0].Start
	var stamps []time.Time
	for !t.After(crisisStart) {
		stamps = append(stamps, t)
		t = t.Add(s.heartbeatCadence)
	}
	s.crisisHeartbeatIdx = len(stamps) - 1
	for i := 0; i < s.postCrisisBeats; i++ {
		stamps = append(stamps, t)
		t = t.Add(s.heartbeatCadence)
	}
	s.heartbeats = stamps
}

// HeartbeatTimestamps returns the ordered sequence of heartbeat timestamps
// for the day, including the post-crisis window.
func (s *PersonSchedule) HeartbeatTimestamps() []time.Time { return s.heartbeats }

// CrisisHeartbeatID is the index of the first heartbeat whose timestamp is
// >= the CRISIS block's start time.
func (s *PersonSchedule) CrisisHeartbeatID() int { return s.crisisHeartbeatIdx }

// BlockAt returns the activity block active at ts: the last block whose
// start is <= ts. The terminal CRISIS block has no end and therefore covers
// the rest of the day, including the post-crisis window.
func (s *PersonSchedule) BlockAt(ts time.Time) ActivityBlock {
	active := s.Blocks[0]
	for _, b := range s.Blocks {
		if b.Start.After(ts) {
			break
		}
		active = b
	}
	return active
}
