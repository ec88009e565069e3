package generator

import (
	"time"

	"github.com/crisisbench/crisisbench/scenario"
)

type scriptedComm struct {
	kind     string // "email", "chat", "sms", "missed_call", "voicemail", "notification"
	offset   time.Duration
	from     string
	channel  string
	text     string
	subject  string
	platform string
}

// communicationsGenerator emits each scripted event exactly once, in the
// first heartbeat whose timestamp is >= the event's scheduled time.
type communicationsGenerator struct {
	events  []scriptedComm
	emitted map[int]bool
}

func newCommunicationsGenerator() *communicationsGenerator {
	return &communicationsGenerator{
		events: []scriptedComm{
			{kind: "email", offset: 7*time.Hour + 10*time.Minute, from: "newsletter@dailybrief.example", subject: "Your morning briefing"},
			{kind: "chat", offset: 8*time.Hour + 40*time.Minute, channel: "#team-eng", from: "priya", text: "morning! coffee run in 10?"},
			{kind: "sms", offset: 11*time.Hour + 5*time.Minute, from: "Mom", text: "Don't forget dinner Sunday"},
			{kind: "email", offset: 13*time.Hour + 20*time.Minute, from: "billing@gymflow.example", subject: "Your receipt from Gymflow"},
			{kind: "missed_call", offset: 16*time.Hour + 5*time.Minute, from: "Unknown"},
			{kind: "voicemail", offset: 16*time.Hour + 6*time.Minute, from: "Unknown", text: "Hi, this is a courtesy call about your account..."},
			{kind: "notification", offset: 17*time.Hour + 30*time.Minute, platform: "weather_app", text: "Clear skies expected this evening"},
			{kind: "chat", offset: 19*time.Hour, channel: "#team-eng", from: "jordan", text: "eod notes posted"},
		},
		emitted: map[int]bool{},
	}
}

// Generate consumes no random samples: communications is a scripted delta
// stream, like calendar.
func (g *communicationsGenerator) Generate(sched *PersonSchedule, _ int, ts time.Time) (*scenario.Communications, error) {
	base := sched.Blocks[0].Start.Truncate(24 * time.Hour)
	out := scenario.Communications{}
	any := false

	for i, e := range g.events {
		if g.emitted[i] {
			continue
		}
		scheduled := base.Add(e.offset)
		if ts.Before(scheduled) {
			continue
		}
		g.emitted[i] = true
		any = true
		switch e.kind {
		case "email":
			out.NewEmails = append(out.NewEmails, scenario.EmailDelta{Sender: e.from, Subject: e.subject})
		case "chat":
			out.NewChatMessages = append(out.NewChatMessages, scenario.ChatMessageDelta{Channel: e.channel, Sender: e.from, Text: e.text})
		case "sms":
			out.NewSMS = append(out.NewSMS, scenario.SMSDelta{Sender: e.from, Text: e.text})
		case "missed_call":
			out.NewMissedCalls = append(out.NewMissedCalls, scenario.MissedCallDelta{Caller: e.from})
		case "voicemail":
			out.NewVoicemails = append(out.NewVoicemails, scenario.VoicemailDelta{Caller: e.from, Text: e.text})
		case "notification":
			out.NewNotifications = append(out.NewNotifications, scenario.NotificationDelta{Platform: e.platform, Text: e.text})
		}
	}
	if !any {
		return scenario.NewCommunications(scenario.Communications{}), nil
	}
	return scenario.NewCommunications(out), nil
}
