package scenario

import (
	"fmt"
	"time"
)

// HeartbeatPayload is the immutable record describing one simulated instant.
// Absent modules are nil and are omitted from the JSON view shown to the
// agent entirely (see MarshalJSON), not merely rendered as null, so that an
// absent module leaves no trace of its own existence for the agent to notice.
type HeartbeatPayload struct {
	heartbeatID     int
	timestamp       time.Time
	wearable        *Wearable
	location        *Location
	weather         *Weather
	calendar        *Calendar
	communications  *Communications
	financial       *Financial
}

// HeartbeatFields is the constructor argument for NewHeartbeatPayload.
type HeartbeatFields struct {
	HeartbeatID    int
	Timestamp      time.Time
	Wearable       *Wearable
	Location       *Location
	Weather        *Weather
	Calendar       *Calendar
	Communications *Communications
	Financial      *Financial
}

// NewHeartbeatPayload validates and constructs a HeartbeatPayload.
func NewHeartbeatPayload(f HeartbeatFields) (*HeartbeatPayload, error) {
	if f.HeartbeatID < 0 {
		return nil, fmt.Errorf("scenario: heartbeat_id must be >= 0, got %d", f.HeartbeatID)
	}
	if f.Timestamp.IsZero() {
		return nil, fmt.Errorf("scenario: heartbeat %d missing timestamp", f.HeartbeatID)
	}
	return &HeartbeatPayload{
		heartbeatID:    f.HeartbeatID,
		timestamp:      f.Timestamp,
		wearable:       f.Wearable,
		location:       f.Location,
		weather:        f.Weather,
		calendar:       f.Calendar,
		communications: f.Communications,
		financial:      f.Financial,
	}, nil
}

func (h *HeartbeatPayload) HeartbeatID() int              { return h.heartbeatID }
func (h *HeartbeatPayload) Timestamp() time.Time          { return h.timestamp }
func (h *HeartbeatPayload) Wearable() *Wearable            { return h.wearable }
func (h *HeartbeatPayload) Location() *Location             { return h.location }
func (h *HeartbeatPayload) Weather() *Weather               { return h.weather }
func (h *HeartbeatPayload) Calendar() *Calendar              { return h.calendar }
func (h *HeartbeatPayload) Communications() *Communications  { return h.communications }
func (h *HeartbeatPayload) Financial() *Financial            { return h.financial }

// heartbeatJSON is the canonical disk/wire shape, used both for
// heartbeats.json (full record, hashed) and for the agent-visible module
// dump (heartbeat_id/timestamp excluded there — see ModuleDataJSON).
type heartbeatJSON struct {
	HeartbeatID    int             `json:"heartbeat_id"`
	Timestamp      time.Time       `json:"timestamp"`
	Wearable       *Wearable       `json:"wearable,omitempty"`
	Location       *Location       `json:"location,omitempty"`
	Weather        *Weather        `json:"weather,omitempty"`
	Calendar       *Calendar       `json:"calendar,omitempty"`
	Communications *Communications `json:"communications,omitempty"`
	Financial      *Financial      `json:"financial,omitempty"`
}

func (h *HeartbeatPayload) toJSON() heartbeatJSON {
	return heartbeatJSON{
		HeartbeatID:    h.heartbeatID,
		Timestamp:      h.timestamp,
		Wearable:       h.wearable,
		Location:       h.location,
		Weather:        h.weather,
		Calendar:       h.calendar,
		Communications: h.communications,
		Financial:      h.financial,
	}
}

// MarshalJSON implements json.Marshaler.
func (h *HeartbeatPayload) MarshalJSON() ([]byte, error) {
	return marshalJSON(h.toJSON())
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *HeartbeatPayload) UnmarshalJSON(data []byte) error {
	var wire heartbeatJSON
	if err := unmarshalJSON(data, &wire); err != nil {
		return err
	}
	*h = HeartbeatPayload{
		heartbeatID:    wire.HeartbeatID,
		timestamp:      wire.Timestamp,
		wearable:       wire.Wearable,
		location:       wire.Location,
		weather:        wire.Weather,
		calendar:       wire.Calendar,
		communications: wire.Communications,
		financial:      wire.Financial,
	}
	return nil
}

// ModuleDataJSON renders the non-null modules of this heartbeat as a single
// JSON object, with heartbeat_id and timestamp excluded, for embedding
// verbatim in the agent's per-heartbeat user message (§4.3.3).
func (h *HeartbeatPayload) ModuleDataJSON() ([]byte, error) {
	view := map[string]any{}
	if h.wearable != nil {
		view["wearable"] = h.wearable
	}
	if h.location != nil {
		view["location"] = h.location
	}
	if h.weather != nil {
		view["weather"] = h.weather
	}
	if h.calendar != nil {
		view["calendar"] = h.calendar
	}
	if h.communications != nil {
		view["communications"] = h.communications
	}
	if h.financial != nil {
		view["financial"] = h.financial
	}
	return marshalJSON(view)
}
