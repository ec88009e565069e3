package generator

import (
	"math"
	"time"

	"github.com/crisisbench/crisisbench/scenario"
)

// Fixed coordinate anchors for the named location keys. Values are
// placeholder-realistic (mid-latitude suburb); only their relative offsets
// matter for the benchmark.
var locationAnchors = map[LocationKey][2]float64{
	LocationHome:   {37.7749, -122.4194},
	LocationOffice: {37.7849, -122.4094},
	LocationPark:   {37.7699, -122.4244},
}

type locationGenerator struct {
	lastLat, lastLng float64
	lastHeading      int
	runLat, runLng   float64
	haveRunPos       bool
	frozenLat        float64
	frozenLng        float64
	frozenHeading    int
	haveFrozen       bool
}

func newLocationGenerator() *locationGenerator {
	home := locationAnchors[LocationHome]
	return &locationGenerator{lastLat: home[0], lastLng: home[1]}
}

// Generate consumes exactly seven RNG draws per heartbeat.
func (g *locationGenerator) Generate(sched *PersonSchedule, heartbeatID int, ts time.Time) (*scenario.Location, error) {
	block := sched.BlockAt(ts)
	inCrisis := heartbeatID >= sched.CrisisHeartbeatID()
	rng := sched.RNG

	jitterLat := rng.NormFloat64()
	jitterLng := rng.NormFloat64()
	wobbleAlt := rng.NormFloat64()
	stationStopRoll := rng.Float64()
	headingJitter := rng.NormFloat64()
	speedRoll := rng.Float64()
	accuracyRoll := rng.Float64()

	var lat, lng, speed, alt, accuracy float64
	var heading int
	var movement string

	switch {
	case inCrisis:
		if !g.haveFrozen {
			g.frozenLat, g.frozenLng, g.frozenHeading = g.lastLat, g.lastLng, g.lastHeading
			g.haveFrozen = true
		}
		// Sub-meter continuing drift: real GPS receivers never freeze
		// perfectly even when the device itself is stationary.
		lat = g.frozenLat + jitterLat*0.000003
		lng = g.frozenLng + jitterLng*0.000003
		speed = 0
		heading = g.frozenHeading
		alt = 12 + wobbleAlt*3
		accuracy = 3 + accuracyRoll*5
		movement = "stationary"
	case block.ActivityName == "running":
		if !g.haveRunPos {
			park := locationAnchors[LocationPark]
			g.runLat, g.runLng = park[0], park[1]
			g.haveRunPos = true
		}
		stepLat := jitterLat * 0.00004
		stepLng := jitterLng * 0.00004
		newLat := g.runLat + stepLat
		newLng := g.runLng + stepLng
		heading = headingBetween(g.runLat, g.runLng, newLat, newLng, g.lastHeading, headingJitter)
		g.runLat, g.runLng = newLat, newLng
		lat, lng = newLat, newLng
		speed = 2.5 + speedRoll*0.8
		alt = 15 + wobbleAlt*2
		accuracy = 4 + accuracyRoll*4
		movement = "running"
	case block.ActivityName == "commute_to_office", block.ActivityName == "evening_commute":
		anchor := locationAnchors[LocationHome]
		dest := locationAnchors[LocationOffice]
		if block.ActivityName == "evening_commute" {
			anchor, dest = dest, anchor
		}
		frac := commuteFraction(block, ts)
		lat = lerp(anchor[0], dest[0], frac) + jitterLat*0.00002
		lng = lerp(anchor[1], dest[1], frac) + jitterLng*0.00002
		if stationStopRoll < 0.1 {
			speed = 0
			movement = "transit_stop"
		} else {
			speed = 8 + speedRoll*4
			movement = "transit"
		}
		heading = headingBetween(anchor[0], anchor[1], dest[0], dest[1], g.lastHeading, headingJitter)
		alt = 20 + wobbleAlt*2
		accuracy = 5 + accuracyRoll*5
	default:
		anchorKey := block.LocationKey
		anchor, ok := locationAnchors[anchorKey]
		if !ok {
			anchor = locationAnchors[LocationHome]
		}
		lat = anchor[0] + jitterLat*0.00001
		lng = anchor[1] + jitterLng*0.00001
		speed = 0
		heading = g.lastHeading
		alt = 10 + wobbleAlt*1.5
		accuracy = 3 + accuracyRoll*3
		movement = "stationary"
	}

	g.lastLat, g.lastLng, g.lastHeading = lat, lng, heading

	var geofence scenario.GeofenceStatus
	switch block.LocationKey {
	case LocationHome:
		geofence = scenario.GeofenceHome
	case LocationOffice:
		geofence = scenario.GeofenceOffice
	default:
		geofence = scenario.GeofenceNone
	}

	return scenario.NewLocation(scenario.LocationFields{
		Latitude:   lat,
		Longitude:  lng,
		AltitudeM:  round1(alt),
		SpeedMS:    round1(speed),
		HeadingDeg: normalizeHeading(heading),
		AccuracyM:  round1(accuracy),
		Geofence:   geofence,
		Movement:   movement,
	})
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func commuteFraction(block ActivityBlock, ts time.Time) float64 {
	if block.End.IsZero() || block.End.Equal(block.Start) {
		return 0
	}
	total := block.End.Sub(block.Start).Minutes()
	elapsed := ts.Sub(block.Start).Minutes()
	if total <= 0 {
		return 0
	}
	f := elapsed / total
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return f
}

func headingBetween(lat1, lng1, lat2, lng2 float64, fallback int, jitter float64) int {
	dLat := lat2 - lat1
	dLng := lng2 - lng1
	if dLat == 0 && dLng == 0 {
		return fallback
	}
	deg := math.Atan2(dLng, dLat) * 180 / math.Pi
	return normalizeHeading(int(deg + jitter*2))
}

func normalizeHeading(h int) int {
	h %= 360
	if h < 0 {
		h += 360
	}
	return h
}
