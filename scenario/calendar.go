package scenario

import "time"

// CalendarEvent is a single scheduled event.
type CalendarEvent struct {
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	Location  string    `json:"location"`
	Attendees []string  `json:"attendees"`
}

// Reminder is a scheduled reminder entry.
type Reminder struct {
	Text string    `json:"text"`
	Due  time.Time `json:"due"`
}

// Calendar is the per-heartbeat calendar payload: a sliding window of the
// next three upcoming events, the still-future reminders, and a static day
// summary rendered once at generation time.
type Calendar struct {
	Next3Events []CalendarEvent `json:"next_3_events"`
	Reminders   []Reminder      `json:"reminders"`
	DaySummary  string          `json:"day_summary"`
}

// NewCalendar constructs a Calendar payload.
func NewCalendar(events []CalendarEvent, reminders []Reminder, daySummary string) *Calendar {
	return &Calendar{
		Next3Events: events,
		Reminders:   reminders,
		DaySummary:  daySummary,
	}
}
