package timetable

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timtambler/internal/model"
	"timtambler/internal/schedule"
)

const validTOML = `
[[class]]
name = "Algebra"
day = "wed"
start_time = "10:00"
end_time = "11:15"
location = "Room 101"

[[class]]
name = "Biology"
day = "Friday"
start_time = "9:00"
end_time = "10:30"
location = ""

[[assignment]]
name = "Problem set"
points = "20"
due_date = "2026-10-16 23:59"

[format]
in_class_format = "{name} ends in {time}"
next_class_format = "{name} starts in {time} at {location}"
assignment_format = "{name} ({points}) due in {time}"
assignment_overdue_format = "{name} ({points}) overdue by {time}"
assignment_time_format = "%Y-%m-%d %H:%M"
`

const validYAML = `
class:
  - name: Algebra
    day: wed
    start_time: "10:00"
    end_time: "11:15"
    location: Room 101
  - name: Biology
    day: Friday
    start_time: "9:00"
    end_time: "10:30"
    location: ""
assignment:
  - name: Problem set
    points: "20"
    due_date: "2026-10-16 23:59"
format:
  in_class_format: "{name} ends in {time}"
  next_class_format: "{name} starts in {time} at {location}"
  assignment_format: "{name} ({points}) due in {time}"
  assignment_overdue_format: "{name} ({points}) overdue by {time}"
  assignment_time_format: "%Y-%m-%d %H:%M"
`

// writeFile writes content to name inside a per-test temp dir.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFileTOML(t *testing.T) {
	tt, err := LoadFile(writeFile(t, "config.toml", validTOML), time.UTC)
	require.NoError(t, err)

	require.Len(t, tt.Classes, 2)
	alg := tt.Classes[0]
	assert.Equal(t, "Algebra", alg.Name)
	assert.Equal(t, model.Wednesday, alg.Day)
	assert.Equal(t, model.TimeOfDay{Hour: 10}, alg.Start)
	assert.Equal(t, model.TimeOfDay{Hour: 11, Minute: 15}, alg.End)
	assert.Equal(t, "wed", alg.DayText)
	assert.Equal(t, "Room 101", alg.Location)
	assert.Equal(t, "9:00", tt.Classes[1].StartText)
	assert.Equal(t, "", tt.Classes[1].Location)

	require.Len(t, tt.Assignments, 1)
	a := tt.Assignments[0]
	assert.Equal(t, "20", a.Points)
	assert.True(t, a.Due.Equal(time.Date(2026, 10, 16, 23, 59, 0, 0, time.UTC)), a.Due.String())
	assert.Equal(t, "2026-10-16 23:59", a.DueText)

	assert.Equal(t, "%Y-%m-%d %H:%M", tt.Format.AssignmentTime)
	assert.Equal(t, "{name} ends in {time}", tt.Format.InClass)
}

func TestTOMLAndYAMLProjectIdentically(t *testing.T) {
	fromTOML, err := LoadFile(writeFile(t, "config.toml", validTOML), time.UTC)
	require.NoError(t, err)
	fromYAML, err := LoadFile(writeFile(t, "config.yaml", validYAML), time.UTC)
	require.NoError(t, err)

	ref := time.Date(2026, 10, 14, 10, 30, 0, 0, time.UTC)
	want := schedule.Project(fromTOML, ref)
	got := schedule.Project(fromYAML, ref)

	assert.Equal(t, want.ClassTexts(), got.ClassTexts())
	assert.Equal(t, want.AssignmentTexts(), got.AssignmentTexts())
	assert.Equal(t, []string{
		"Algebra ends in 45 minutes",
		"Biology starts in 1 day & 22 hours at ",
	}, got.ClassTexts())
	assert.Equal(t, []string{"Problem set (20) due in 2 days & 13 hours"}, got.AssignmentTexts())
}

func TestGoLayoutDueFormat(t *testing.T) {
	doc := `
[[assignment]]
name = "Lab"
points = "5"
due_date = "16/10/2026 08:00"

[format]
in_class_format = ""
next_class_format = ""
assignment_format = ""
assignment_overdue_format = ""
assignment_time_format = "02/01/2006 15:04"
`
	loc := time.FixedZone("KST", 9*3600)
	tt, err := Decode([]byte(doc), KindTOML, loc)
	require.NoError(t, err)
	require.Len(t, tt.Assignments, 1)
	assert.True(t, tt.Assignments[0].Due.Equal(time.Date(2026, 10, 16, 8, 0, 0, 0, loc)))
	assert.Empty(t, tt.Classes)
}

func TestParseDue(t *testing.T) {
	cases := []struct {
		text, format string
		want         time.Time
		ok           bool
	}{
		{"2026-10-16 23:59", "%Y-%m-%d %H:%M", time.Date(2026, 10, 16, 23, 59, 0, 0, time.UTC), true},
		{"2028-02-29 12:00", "%Y-%m-%d %H:%M", time.Date(2028, 2, 29, 12, 0, 0, 0, time.UTC), true},
		{"16 Oct 2026", "%d %b %Y", time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), true},
		{"2026-02-29 12:00", "%Y-%m-%d %H:%M", time.Time{}, false},
		{"2026-04-31 08:00", "%Y-%m-%d %H:%M", time.Time{}, false},
		{"2026-10-16 23:59xyz", "%Y-%m-%d %H:%M", time.Time{}, false},
		{"30/02/2026 10:00", "02/01/2006 15:04", time.Time{}, false},
		{"28/02/2026 10:00", "02/01/2006 15:04", time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC), true},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got, err := ParseDue(tc.text, tc.format, time.UTC)
			if !tc.ok {
				assert.ErrorIs(t, err, ErrInvalidDueDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want), got)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	const format = `
[format]
in_class_format = "a"
next_class_format = "b"
assignment_format = "c"
assignment_overdue_format = "d"
assignment_time_format = "%Y-%m-%d %H:%M"
`
	cases := []struct {
		name    string
		doc     string
		target  error
		section string
		index   int
		field   string
	}{
		{
			name:    "bad weekday",
			doc:     "[[class]]\nname='A'\nday='Funday'\nstart_time='09:00'\nend_time='10:00'\nlocation='x'\n" + format,
			target:  model.ErrInvalidWeekday,
			section: "class", index: 1, field: "day",
		},
		{
			name: "bad start time in second class",
			doc: "[[class]]\nname='A'\nday='Mon'\nstart_time='09:00'\nend_time='10:00'\nlocation='x'\n" +
				"[[class]]\nname='B'\nday='Tue'\nstart_time='9am'\nend_time='10:00'\nlocation='x'\n" + format,
			target:  model.ErrInvalidTimeOfDay,
			section: "class", index: 2, field: "start_time",
		},
		{
			name:    "bad end time",
			doc:     "[[class]]\nname='A'\nday='Mon'\nstart_time='09:00'\nend_time='25:00'\nlocation='x'\n" + format,
			target:  model.ErrInvalidTimeOfDay,
			section: "class", index: 1, field: "end_time",
		},
		{
			name:    "due date does not match format",
			doc:     "[[assignment]]\nname='E'\npoints='1'\ndue_date='tomorrow'\n" + format,
			target:  ErrInvalidDueDate,
			section: "assignment", index: 1, field: "due_date",
		},
		{
			name:    "due date past the end of the month",
			doc:     "[[assignment]]\nname='E'\npoints='1'\ndue_date='2026-02-30 10:00'\n" + format,
			target:  ErrInvalidDueDate,
			section: "assignment", index: 1, field: "due_date",
		},
		{
			name:    "missing location",
			doc:     "[[class]]\nname='A'\nday='Mon'\nstart_time='09:00'\nend_time='10:00'\n" + format,
			target:  ErrMissingField,
			section: "class", index: 1, field: "location",
		},
		{
			name:    "empty name",
			doc:     "[[assignment]]\nname=''\npoints='1'\ndue_date='2026-01-01 00:00'\n" + format,
			target:  ErrMissingField,
			section: "assignment", index: 1, field: "name",
		},
		{
			name:    "missing format key",
			doc:     "[format]\nin_class_format='a'\nnext_class_format='b'\nassignment_format='c'\nassignment_overdue_format='d'\n",
			target:  ErrMissingField,
			section: "format", field: "assignment_time_format",
		},
		{
			name:    "missing format section",
			doc:     "[[assignment]]\nname='E'\npoints='1'\ndue_date='2026-01-01 00:00'\n",
			target:  ErrMissingField,
			section: "document", field: "format",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.doc), KindTOML, time.UTC)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.target)

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.section, fe.Section)
			assert.Equal(t, tc.index, fe.Index)
			assert.Equal(t, tc.field, fe.Field)
		})
	}
}

func TestDecodeStructuralErrors(t *testing.T) {
	_, err := Decode([]byte("this is = = not toml"), KindTOML, time.UTC)
	assert.ErrorContains(t, err, "parse toml")

	// points must be a string
	_, err = Decode([]byte("[[assignment]]\nname='E'\npoints=10\ndue_date='x'\n"), KindTOML, time.UTC)
	assert.ErrorContains(t, err, "parse toml")

	_, err = Decode([]byte("class: [unterminated"), KindYAML, time.UTC)
	assert.ErrorContains(t, err, "parse yaml")
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile("", time.UTC)
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"), time.UTC)
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeFile(t, "bad.toml", "[[class]]\nname='A'\nday='Someday'\nstart_time='09:00'\nend_time='10:00'\nlocation='x'\n[format]\nin_class_format='a'\nnext_class_format='b'\nassignment_format='c'\nassignment_overdue_format='d'\nassignment_time_format='%Y'\n")
	_, err = LoadFile(path, time.UTC)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), `"Someday"`)
}

func TestKindForPath(t *testing.T) {
	assert.Equal(t, KindYAML, KindForPath("/a/b.yaml"))
	assert.Equal(t, KindYAML, KindForPath("B.YML"))
	assert.Equal(t, KindTOML, KindForPath("config.toml"))
	assert.Equal(t, KindTOML, KindForPath("config"))
}
