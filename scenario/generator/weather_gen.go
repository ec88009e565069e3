package generator

import (
	"math"
	"time"

	"github.com/crisisbench/crisisbench/scenario"
)

var pollenLevels = []string{"low", "moderate", "high", "very_high"}

type weatherGenerator struct {
	windSpeed     float64
	windDir       float64
	pressure      float64
	cloudCover    float64
	aqi           float64
	pollen        string
	pollenChosen  bool
}

func newWeatherGenerator(rng *RNG) *weatherGenerator {
	return &weatherGenerator{
		windSpeed:  5 + rng.Float64()*8,
		windDir:    rng.Float64() * 360,
		pressure:   1013 + rng.Float64()*6,
		cloudCover: rng.Float64() * 40,
		aqi:        30 + rng.Float64()*30,
		pollen:     pollenLevels[rng.Intn(len(pollenLevels))],
	}
}

// Generate consumes exactly six RNG draws per heartbeat. Weather continues
// unaffected by the crisis: the environment does not know a crisis is
// occurring.
func (g *weatherGenerator) Generate(sched *PersonSchedule, _ int, ts time.Time) (*scenario.Weather, error) {
	rng := sched.RNG
	windWalk := rng.NormFloat64()
	dirWalk := rng.NormFloat64()
	pressureWalk := rng.NormFloat64()
	cloudWalk := rng.NormFloat64()
	aqiWalk := rng.NormFloat64()

	minutesSinceMidnight := float64(ts.Hour()*60 + ts.Minute())
	// Diurnal curve: trough near 05:00, peak near 15:00.
	phase := (minutesSinceMidnight - 5*60) / (24 * 60) * 2 * math.Pi
	temp := 16 + 9*math.Sin(phase) + rng.Float64()*0.6

	humidity := 80 - (temp-16)*1.8
	if humidity < 25 {
		humidity = 25
	}

	g.windSpeed = clampFloat(g.windSpeed+windWalk*0.4, 0, 40)
	g.windDir = math.Mod(g.windDir+dirWalk*6, 360)
	if g.windDir < 0 {
		g.windDir += 360
	}
	g.pressure += pressureWalk * 0.01
	g.cloudCover = clampFloat(g.cloudCover+cloudWalk*1.5, 0, 100)
	g.aqi = clampFloat(g.aqi+aqiWalk*0.8, 0, 300)

	sunPhase := math.Max(0, math.Sin((minutesSinceMidnight-6*60)/(12*60)*math.Pi))
	uv := 9 * sunPhase * (1 - g.cloudCover/150)

	feelsLike := temp - (g.windSpeed * 0.05)

	return scenario.NewWeather(scenario.Weather{
		TemperatureC:     round1(temp),
		FeelsLikeC:       round1(feelsLike),
		HumidityPct:      int(humidity),
		WindSpeedKMH:     round1(g.windSpeed),
		WindDirectionDeg: int(g.windDir),
		UVIndex:          round1(uv),
		AQI:              int(g.aqi),
		PollenLevel:      g.pollen,
		PressureHPA:      round1(g.pressure),
		DewPointC:        round1(temp - (100-humidity)/5),
		CloudCoverPct:    int(g.cloudCover),
	}), nil
}

func clampFloat(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
