package generator

import (
	"time"

	"github.com/crisisbench/crisisbench/scenario"
)

type scriptedEvent struct {
	title     string
	offset    time.Duration
	location  string
	attendees []string
}

type scriptedReminder struct {
	text   string
	offset time.Duration
}

// calendarGenerator emits a fixed scripted event/reminder list anchored to
// the scenario date. It consumes no random samples: the calendar module is
// entirely scripted, per §4.2.4.
type calendarGenerator struct {
	events     []scriptedEvent
	reminders  []scriptedReminder
	daySummary string
}

func newCalendarGenerator(sched *PersonSchedule) *calendarGenerator {
	return &calendarGenerator{
		events: []scriptedEvent{
			{title: "Team standup", offset: 9 * time.Hour, location: "Conference Room B", attendees: []string{"Priya", "Sam"}},
			{title: "Design review", offset: 10*time.Hour + 30*time.Minute, location: "Conference Room B", attendees: []string{"Priya", "Jordan"}},
			{title: "Lunch with Sam", offset: 12 * time.Hour, location: "Cafe Nomad", attendees: []string{"Sam"}},
			{title: "1:1 with manager", offset: 15 * time.Hour, location: "Office 4B", attendees: []string{"Jordan"}},
			{title: "Evening run club", offset: 17*time.Hour + 50*time.Minute, location: "Riverside Park", attendees: []string{}},
		},
		reminders: []scriptedReminder{
			{text: "Renew parking pass", offset: 9 * time.Hour},
			{text: "Pick up dry cleaning", offset: 16 * time.Hour},
		},
		daySummary: "A regular workday: a design review, lunch with a friend, a 1:1, and an evening run.",
	}
}

// Generate returns the sliding window of upcoming events/reminders whose
// start is strictly after ts; events/reminders that have already passed are
// dropped.
func (g *calendarGenerator) Generate(sched *PersonSchedule, _ int, ts time.Time) (*scenario.Calendar, error) {
	base := sched.Blocks[0].Start.Truncate(24 * time.Hour)

	var upcoming []scenario.CalendarEvent
	for _, e := range g.events {
		start := base.Add(e.offset)
		if start.After(ts) {
			upcoming = append(upcoming, scenario.CalendarEvent{
				Title: e.title, StartTime: start, Location: e.location, Attendees: e.attendees,
			})
		}
	}
	if len(upcoming) > 3 {
		upcoming = upcoming[:3]
	}

	var reminders []scenario.Reminder
	for _, r := range g.reminders {
		due := base.Add(r.offset)
		if due.After(ts) {
			reminders = append(reminders, scenario.Reminder{Text: r.text, Due: due})
		}
	}

	return scenario.NewCalendar(upcoming, reminders, g.daySummary), nil
}
