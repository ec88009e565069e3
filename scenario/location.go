package scenario

import "fmt"

// GeofenceStatus describes whether the device is inside a named geofence.
// It is only set for the home/office coordinates; zero value means absent.
type GeofenceStatus string

const (
	GeofenceNone   GeofenceStatus = ""
	GeofenceHome   GeofenceStatus = "home"
	GeofenceOffice GeofenceStatus = "office"
)

// Location is the per-heartbeat GPS/motion payload.
type Location struct {
	latitude    float64
	longitude   float64
	altitudeM   float64
	speedMS     float64
	headingDeg  int
	accuracyM   float64
	geofence    GeofenceStatus
	movement    string
}

// LocationFields is the plain-data constructor argument for NewLocation.
type LocationFields struct {
	Latitude   float64
	Longitude  float64
	AltitudeM  float64
	SpeedMS    float64
	HeadingDeg int
	AccuracyM  float64
	Geofence   GeofenceStatus
	Movement   string
}

// NewLocation validates and constructs a Location payload.
func NewLocation(f LocationFields) (*Location, error) {
	if f.Latitude < -90 || f.Latitude > 90 {
		return nil, fmt.Errorf("scenario: location latitude out of range: %v", f.Latitude)
	}
	if f.Longitude < -180 || f.Longitude > 180 {
		return nil, fmt.Errorf("scenario: location longitude out of range: %v", f.Longitude)
	}
	if f.HeadingDeg < 0 || f.HeadingDeg > 360 {
		return nil, fmt.Errorf("scenario: location heading must be 0-360, got %d", f.HeadingDeg)
	}
	if f.SpeedMS < 0 {
		return nil, fmt.Errorf("scenario: location speed must be >= 0, got %v", f.SpeedMS)
	}
	return &Location{
		latitude:   f.Latitude,
		longitude:  f.Longitude,
		altitudeM:  f.AltitudeM,
		speedMS:    f.SpeedMS,
		headingDeg: f.HeadingDeg,
		accuracyM:  f.AccuracyM,
		geofence:   f.Geofence,
		movement:   f.Movement,
	}, nil
}

func (l *Location) Latitude() float64        { return l.latitude }
func (l *Location) Longitude() float64       { return l.longitude }
func (l *Location) AltitudeM() float64       { return l.altitudeM }
func (l *Location) SpeedMS() float64         { return l.speedMS }
func (l *Location) HeadingDeg() int          { return l.headingDeg }
func (l *Location) AccuracyM() float64       { return l.accuracyM }
func (l *Location) Geofence() GeofenceStatus { return l.geofence }
func (l *Location) Movement() string         { return l.movement }

type locationJSON struct {
	Latitude   float64        `json:"latitude"`
	Longitude  float64        `json:"longitude"`
	AltitudeM  float64        `json:"altitude_m"`
	SpeedMS    float64        `json:"speed_ms"`
	HeadingDeg int            `json:"heading_deg"`
	AccuracyM  float64        `json:"accuracy_m"`
	Geofence   GeofenceStatus `json:"geofence,omitempty"`
	Movement   string         `json:"movement"`
}

// MarshalJSON implements json.Marshaler.
func (l *Location) MarshalJSON() ([]byte, error) {
	return marshalJSON(locationJSON{
		Latitude:   l.latitude,
		Longitude:  l.longitude,
		AltitudeM:  l.altitudeM,
		SpeedMS:    l.speedMS,
		HeadingDeg: l.headingDeg,
		AccuracyM:  l.accuracyM,
		Geofence:   l.geofence,
		Movement:   l.movement,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Location) UnmarshalJSON(data []byte) error {
	var wire locationJSON
	if err := unmarshalJSON(data, &wire); err != nil {
		return err
	}
	*l = Location{
		latitude:   wire.Latitude,
		longitude:  wire.Longitude,
		altitudeM:  wire.AltitudeM,
		speedMS:    wire.SpeedMS,
		headingDeg: wire.HeadingDeg,
		accuracyM:  wire.AccuracyM,
		geofence:   wire.Geofence,
		movement:   wire.Movement,
	}
	return nil
}
