package schedule

import (
	"time"

	"timtambler/internal/model"
	"timtambler/internal/render"
)

// ClassState is whether a class is running right now or still ahead.
type ClassState int

const (
	Upcoming ClassState = iota
	InSession
)

func (s ClassState) String() string {
	if s == InSession {
		return "in-session"
	}
	return "upcoming"
}

// ClassStatus is the evaluation of one class against a reference instant.
type ClassStatus struct {
	State ClassState
	// NextStart and NextEnd are the next occurrences of the start and end
	// times, both computed from the same reference.
	NextStart time.Time
	NextEnd   time.Time
	// Relevant is NextEnd while in session and NextStart otherwise.
	Relevant time.Time
	// Seconds from the reference to Relevant.
	Remaining int64
}

// ClassifyClass decides whether c is in session at ref.
//
// A class is in session when its next end comes no later than its next
// start: the current session has begun, so the start has already rolled
// over to next week.
func ClassifyClass(c model.Class, ref time.Time) ClassStatus {
	start := NextWeekly(ref, c.Day, c.Start)
	end := NextWeekly(ref, c.Day, c.End)

	st := ClassStatus{NextStart: start, NextEnd: end}
	if !end.After(start) {
		st.State = InSession
		st.Relevant = end
	} else {
		st.State = Upcoming
		st.Relevant = start
	}
	st.Remaining = st.Relevant.Unix() - ref.Unix()
	return st
}

// AssignmentStatus is the evaluation of one assignment against a reference instant.
type AssignmentStatus struct {
	Direction Direction
	Due       time.Time
	// Delta is due minus ref in whole seconds; negative when overdue.
	Delta int64
}

// ClassifyAssignment compares a's due instant with ref. A due instant equal
// to ref is not overdue.
func ClassifyAssignment(a model.Assignment, ref time.Time) AssignmentStatus {
	delta := a.Due.Unix() - ref.Unix()
	return AssignmentStatus{
		Direction: DirectionOf(delta),
		Due:       a.Due,
		Delta:     delta,
	}
}

// ClassLine renders c with the template its state selects.
func ClassLine(c model.Class, st ClassStatus, f model.FormatSet) string {
	tmpl := f.NextClass
	if st.State == InSession {
		tmpl = f.InClass
	}
	return render.Render(tmpl, []render.Field{
		render.F("name", c.Name),
		render.F("day", c.DayText),
		render.F("start_time", c.StartText),
		render.F("end_time", c.EndText),
		render.F("location", c.Location),
		render.F("time", FormatDuration(st.Remaining)),
	})
}

// AssignmentLine renders a with the overdue or upcoming template.
func AssignmentLine(a model.Assignment, st AssignmentStatus, f model.FormatSet) string {
	tmpl := f.Assignment
	if st.Direction == Past {
		tmpl = f.AssignmentOverdue
	}
	return render.Render(tmpl, []render.Field{
		render.F("name", a.Name),
		render.F("points", a.Points),
		render.F("due_date", a.DueText),
		render.F("time", FormatDuration(st.Delta)),
	})
}
