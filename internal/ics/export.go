package ics

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	appLog "timtambler/internal/log"
	"timtambler/internal/model"
	"timtambler/internal/schedule"
)

const productID = "-//timtambler//schedule//EN"

var byDay = [...]rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU}

// Build converts tt into an iCalendar document.
//
//   - Each class becomes one VEVENT recurring weekly, starting at the session
//     in progress at ref or, if none, the next one.
//   - Each assignment becomes a zero-length VEVENT at its due instant.
//
// Times are written in UTC, so BYDAY is the UTC weekday of the first start.
func Build(tt *model.Timetable, ref time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	stamp := ref.UTC()

	for _, c := range tt.Classes {
		start, end := firstSession(c, ref)

		opt := rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{byDay[model.WeekdayOf(start.UTC().Weekday())]},
		}

		ev := cal.AddEvent(uid("class", c.Name, c.DayText, c.StartText, c.EndText))
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		ev.SetSummary(c.Name)
		if c.Location != "" {
			ev.SetLocation(c.Location)
		}
		ev.AddRrule(opt.RRuleString())
	}

	for _, a := range tt.Assignments {
		ev := cal.AddEvent(uid("assignment", a.Name, a.DueText))
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(a.Due)
		ev.SetEndAt(a.Due)
		ev.SetSummary(a.Name)
		if a.Points != "" {
			ev.SetDescription("Points: " + a.Points)
		}
	}

	appLog.Debug("ics export built", "classes", len(tt.Classes), "assignments", len(tt.Assignments))
	return cal
}

// Marshal is Build followed by serialization.
func Marshal(tt *model.Timetable, ref time.Time) []byte {
	return []byte(Build(tt, ref).Serialize())
}

// firstSession returns the start and end of the session in progress at ref,
// or of the next session.
//
// A class whose end time is not after its start time (Mon 23:00-01:00) is
// exported as running past midnight into the next day. The terminal view
// reads such an end as the same weekday and so shows the class in session
// for most of the week; a VEVENT cannot end before it starts, so the two
// views differ for these classes.
func firstSession(c model.Class, ref time.Time) (time.Time, time.Time) {
	st := schedule.ClassifyClass(c, ref)
	start := st.NextStart
	if st.State == schedule.InSession {
		start = start.Add(-7 * 24 * time.Hour)
	}

	length := c.End.Seconds() - c.Start.Seconds()
	if length <= 0 {
		length += 24 * 3600
	}
	return start, start.Add(time.Duration(length) * time.Second)
}

// uid derives a stable identifier so re-exports update rather than duplicate
// events in calendar clients.
func uid(kind string, parts ...string) string {
	h := sha256.New()
	h.Write([]byte(kind))
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return kind + "-" + hex.EncodeToString(h.Sum(nil)[:8]) + "@timtambler"
}
