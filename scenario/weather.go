package scenario

// Weather is the per-heartbeat ambient-conditions payload. It has no
// construction invariants beyond the general JSON shape; validation failures
// in this module would only ever indicate a generator bug, not an
// agent-visible concern.
type Weather struct {
	TemperatureC    float64 `json:"temperature_c"`
	FeelsLikeC      float64 `json:"feels_like_c"`
	HumidityPct     int     `json:"humidity_pct"`
	WindSpeedKMH    float64 `json:"wind_speed_kmh"`
	WindDirectionDeg int    `json:"wind_direction_deg"`
	UVIndex         float64 `json:"uv_index"`
	AQI             int     `json:"aqi"`
	PollenLevel     string  `json:"pollen_level"`
	PressureHPA     float64 `json:"pressure_hpa"`
	DewPointC       float64 `json:"dew_point_c"`
	CloudCoverPct   int     `json:"cloud_cover_pct"`
}

// NewWeather constructs a Weather payload. It is a plain value type: the
// struct literal itself is the constructor, kept for symmetry with the other
// module payload constructors and so call sites read uniformly.
func NewWeather(w Weather) *Weather {
	return &w
}
