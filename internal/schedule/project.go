package schedule

import (
	"slices"
	"time"

	"timtambler/internal/clock"
	appLog "timtambler/internal/log"
	"timtambler/internal/model"
)

// RenderedLine is one output line plus the instant it is ordered by.
type RenderedLine struct {
	Text string
	Key  time.Time
}

// Projection is the result of one rendering pass.
type Projection struct {
	At          time.Time
	Classes     []RenderedLine
	Assignments []RenderedLine
}

// ClassTexts returns the class lines without their sort keys.
func (p Projection) ClassTexts() []string {
	return texts(p.Classes)
}

// AssignmentTexts returns the assignment lines without their sort keys.
func (p Projection) AssignmentTexts() []string {
	return texts(p.Assignments)
}

// Truncate keeps at most n lines of each list. n <= 0 keeps everything.
func (p Projection) Truncate(n int) Projection {
	if n <= 0 {
		return p
	}
	if len(p.Classes) > n {
		p.Classes = p.Classes[:n]
	}
	if len(p.Assignments) > n {
		p.Assignments = p.Assignments[:n]
	}
	return p
}

// Project renders every class and assignment in tt against ref.
//
// Classes are ordered by their relevant instant (end while in session,
// start otherwise) and assignments by due instant, both ascending. Ties keep
// file order.
func Project(tt *model.Timetable, ref time.Time) Projection {
	p := Projection{
		At:          ref,
		Classes:     make([]RenderedLine, 0, len(tt.Classes)),
		Assignments: make([]RenderedLine, 0, len(tt.Assignments)),
	}

	for _, c := range tt.Classes {
		st := ClassifyClass(c, ref)
		appLog.Debug("class evaluated",
			"name", c.Name,
			"state", st.State.String(),
			"relevant", st.Relevant.Format(time.RFC3339),
		)
		p.Classes = append(p.Classes, RenderedLine{
			Text: ClassLine(c, st, tt.Format),
			Key:  st.Relevant,
		})
	}

	for _, a := range tt.Assignments {
		st := ClassifyAssignment(a, ref)
		appLog.Debug("assignment evaluated",
			"name", a.Name,
			"direction", st.Direction.String(),
			"delta_seconds", st.Delta,
		)
		p.Assignments = append(p.Assignments, RenderedLine{
			Text: AssignmentLine(a, st, tt.Format),
			Key:  st.Due,
		})
	}

	sortLines(p.Classes)
	sortLines(p.Assignments)
	return p
}

// Projector runs rendering passes against a Clock.
type Projector struct {
	clock clock.Clock
}

// NewProjector returns a Projector reading time from c. A nil c means the
// system clock.
func NewProjector(c clock.Clock) *Projector {
	if c == nil {
		c = clock.System
	}
	return &Projector{clock: c}
}

// Project samples the clock once and renders tt against that instant.
func (p *Projector) Project(tt *model.Timetable) Projection {
	return Project(tt, p.clock())
}

func sortLines(lines []RenderedLine) {
	slices.SortStableFunc(lines, func(a, b RenderedLine) int {
		return a.Key.Compare(b.Key)
	})
}

func texts(lines []RenderedLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}
