package scenario

import "fmt"

// Wearable is the per-heartbeat payload synthesized by the wearable-device
// module generator. It is immutable once constructed.
type Wearable struct {
	heartRate       int
	bloodOxygen     int
	steps           int
	skinTempC       float64
	ecgSummary      string
	bloodGlucose    float64
	caloriesBurned  int
	sleepStage      string
	respiratoryRate int
	bodyBattery     int
}

// WearableFields is the plain-data constructor argument for NewWearable,
// named to mirror the JSON the module generator assembles before validation.
type WearableFields struct {
	HeartRate       int
	BloodOxygen     int
	Steps           int
	SkinTempC       float64
	ECGSummary      string
	BloodGlucose    float64
	CaloriesBurned  int
	SleepStage      string
	RespiratoryRate int
	BodyBattery     int
}

// NewWearable validates and constructs a Wearable payload.
func NewWearable(f WearableFields) (*Wearable, error) {
	if f.HeartRate < 0 {
		return nil, fmt.Errorf("scenario: wearable heart_rate must be >= 0, got %d", f.HeartRate)
	}
	if f.BloodOxygen < 0 || f.BloodOxygen > 100 {
		return nil, fmt.Errorf("scenario: wearable blood_oxygen out of range: %d", f.BloodOxygen)
	}
	if f.Steps < 0 {
		return nil, fmt.Errorf("scenario: wearable steps must be >= 0, got %d", f.Steps)
	}
	return &Wearable{
		heartRate:       f.HeartRate,
		bloodOxygen:     f.BloodOxygen,
		steps:           f.Steps,
		skinTempC:       f.SkinTempC,
		ecgSummary:      f.ECGSummary,
		bloodGlucose:    f.BloodGlucose,
		caloriesBurned:  f.CaloriesBurned,
		sleepStage:      f.SleepStage,
		respiratoryRate: f.RespiratoryRate,
		bodyBattery:     f.BodyBattery,
	}, nil
}

func (w *Wearable) HeartRate() int          { return w.heartRate }
func (w *Wearable) BloodOxygen() int        { return w.bloodOxygen }
func (w *Wearable) Steps() int              { return w.steps }
func (w *Wearable) SkinTempC() float64      { return w.skinTempC }
func (w *Wearable) ECGSummary() string      { return w.ecgSummary }
func (w *Wearable) BloodGlucose() float64   { return w.bloodGlucose }
func (w *Wearable) CaloriesBurned() int     { return w.caloriesBurned }
func (w *Wearable) SleepStage() string      { return w.sleepStage }
func (w *Wearable) RespiratoryRate() int    { return w.respiratoryRate }
func (w *Wearable) BodyBattery() int        { return w.bodyBattery }

// wearableJSON is the wire shape for Wearable, used by MarshalJSON and
// UnmarshalJSON so the exported view uses lower-snake-case keys while the
// type itself stays field-private and construction goes through NewWearable.
type wearableJSON struct {
	HeartRate       int     `json:"heart_rate"`
	BloodOxygen     int     `json:"blood_oxygen"`
	Steps           int     `json:"steps"`
	SkinTempC       float64 `json:"skin_temp_c"`
	ECGSummary      string  `json:"ecg_summary"`
	BloodGlucose    float64 `json:"blood_glucose"`
	CaloriesBurned  int     `json:"calories_burned"`
	SleepStage      string  `json:"sleep_stage"`
	RespiratoryRate int     `json:"respiratory_rate"`
	BodyBattery     int     `json:"body_battery"`
}

func (w *Wearable) toJSON() wearableJSON {
	return wearableJSON{
		HeartRate:       w.heartRate,
		BloodOxygen:     w.bloodOxygen,
		Steps:           w.steps,
		SkinTempC:       w.skinTempC,
		ECGSummary:      w.ecgSummary,
		BloodGlucose:    w.bloodGlucose,
		CaloriesBurned:  w.caloriesBurned,
		SleepStage:      w.sleepStage,
		RespiratoryRate: w.respiratoryRate,
		BodyBattery:     w.bodyBattery,
	}
}

// MarshalJSON implements json.Marshaler.
func (w *Wearable) MarshalJSON() ([]byte, error) {
	return marshalJSON(w.toJSON())
}

// UnmarshalJSON implements json.Unmarshaler. It bypasses NewWearable's
// validation deliberately: a scenario package loaded from disk is trusted
// content whose integrity is guaranteed instead by the manifest hash check.
func (w *Wearable) UnmarshalJSON(data []byte) error {
	var wire wearableJSON
	if err := unmarshalJSON(data, &wire); err != nil {
		return err
	}
	*w = Wearable{
		heartRate:       wire.HeartRate,
		bloodOxygen:     wire.BloodOxygen,
		steps:           wire.Steps,
		skinTempC:       wire.SkinTempC,
		ecgSummary:      wire.ECGSummary,
		bloodGlucose:    wire.BloodGlucose,
		caloriesBurned:  wire.CaloriesBurned,
		sleepStage:      wire.SleepStage,
		respiratoryRate: wire.RespiratoryRate,
		bodyBattery:     wire.BodyBattery,
	}
	return nil
}
