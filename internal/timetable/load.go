// Package timetable reads the class/assignment/format document from disk
// and turns it into validated model values.
package timetable

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/itchyny/timefmt-go"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	appLog "timtambler/internal/log"
	"timtambler/internal/model"
)

var (
	ErrMissingField   = errors.New("missing required field")
	ErrInvalidDueDate = errors.New("invalid due date")
)

// Kind is the document syntax.
type Kind int

const (
	KindTOML Kind = iota
	KindYAML
)

// KindForPath picks the syntax from the file extension; anything that is not
// .yaml/.yml is read as TOML.
func KindForPath(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return KindYAML
	default:
		return KindTOML
	}
}

// FieldError pinpoints an invalid value in the document.
type FieldError struct {
	Section string // "class", "assignment" or "format"
	Index   int    // 1-based record number; 0 for the format section
	Field   string
	Err     error
}

func (e *FieldError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("%s #%d: %s: %v", e.Section, e.Index, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Section, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoadFile reads and decodes the timetable at path. Due dates are
// interpreted in loc (time.Local if nil).
func LoadFile(path string, loc *time.Location) (*model.Timetable, error) {
	if path == "" {
		return nil, errors.New("timetable path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read timetable: %w", err)
	}
	tt, err := Decode(data, KindForPath(path), loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	appLog.Debug("timetable loaded",
		"path", path,
		"classes", len(tt.Classes),
		"assignments", len(tt.Assignments),
	)
	return tt, nil
}

// Decode parses a timetable document. Every record must be valid; the first
// problem found is returned and nothing is loaded.
func Decode(data []byte, kind Kind, loc *time.Location) (*model.Timetable, error) {
	if loc == nil {
		loc = time.Local
	}

	var doc document
	switch kind {
	case KindYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	}

	if err := validate.Struct(doc); err != nil {
		return nil, missingFieldError(err)
	}

	return convert(doc, loc)
}

func convert(doc document, loc *time.Location) (*model.Timetable, error) {
	f := doc.Format
	tt := &model.Timetable{
		Classes:     make([]model.Class, 0, len(doc.Class)),
		Assignments: make([]model.Assignment, 0, len(doc.Assignment)),
		Format: model.FormatSet{
			InClass:           deref(f.InClassFormat),
			NextClass:         deref(f.NextClassFormat),
			Assignment:        deref(f.AssignmentFormat),
			AssignmentOverdue: deref(f.AssignmentOverdueFormat),
			AssignmentTime:    deref(f.AssignmentTimeFormat),
		},
	}
	if strings.TrimSpace(tt.Format.AssignmentTime) == "" {
		return nil, &FieldError{Section: "format", Field: "assignment_time_format", Err: errors.New("must not be empty")}
	}

	for i, rec := range doc.Class {
		c, err := convertClass(rec)
		if err != nil {
			err.Index = i + 1
			return nil, err
		}
		tt.Classes = append(tt.Classes, c)
	}

	for i, rec := range doc.Assignment {
		due, err := ParseDue(deref(rec.DueDate), tt.Format.AssignmentTime, loc)
		if err != nil {
			return nil, &FieldError{Section: "assignment", Index: i + 1, Field: "due_date", Err: err}
		}
		tt.Assignments = append(tt.Assignments, model.Assignment{
			Name:    deref(rec.Name),
			Points:  deref(rec.Points),
			Due:     due,
			DueText: deref(rec.DueDate),
		})
	}

	return tt, nil
}

func convertClass(rec classRecord) (model.Class, *FieldError) {
	c := model.Class{
		Name:      deref(rec.Name),
		Location:  deref(rec.Location),
		DayText:   deref(rec.Day),
		StartText: deref(rec.StartTime),
		EndText:   deref(rec.EndTime),
	}

	var err error
	if c.Day, err = model.ParseWeekday(c.DayText); err != nil {
		return c, &FieldError{Section: "class", Field: "day", Err: err}
	}
	if c.Start, err = model.ParseTimeOfDay(c.StartText); err != nil {
		return c, &FieldError{Section: "class", Field: "start_time", Err: err}
	}
	if c.End, err = model.ParseTimeOfDay(c.EndText); err != nil {
		return c, &FieldError{Section: "class", Field: "end_time", Err: err}
	}
	return c, nil
}

// ParseDue parses text with format. A format containing '%' is a strftime
// pattern (e.g. "%Y-%m-%d %H:%M"); otherwise it is a Go reference layout
// (e.g. "2006-01-02 15:04").
func ParseDue(text, format string, loc *time.Location) (time.Time, error) {
	var (
		t   time.Time
		err error
	)
	if strings.Contains(format, "%") {
		t, err = timefmt.ParseInLocation(text, format, loc)
		// timefmt rolls impossible dates like Feb 30 over into the next
		// month; formatting back exposes the shift.
		if err == nil && canonicalDue(timefmt.Format(t, format)) != canonicalDue(text) {
			return time.Time{}, fmt.Errorf("%w: %q is not a real date", ErrInvalidDueDate, text)
		}
	} else {
		t, err = time.ParseInLocation(format, text, loc)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match format %q", ErrInvalidDueDate, text, format)
	}
	return t, nil
}

// canonicalDue lowercases s, drops leading zeros from digit runs and
// collapses spaces, so "2026-3-7" and "2026-03-07" compare equal.
func canonicalDue(s string) string {
	var b strings.Builder
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	for i := 0; i < len(s); {
		if s[i] < '0' || s[i] > '9' {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := i
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		digits := strings.TrimLeft(s[i:j], "0")
		if digits == "" {
			digits = "0"
		}
		b.WriteString(digits)
		i = j
	}
	return b.String()
}

// missingFieldError reports the first validation failure as a FieldError.
func missingFieldError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]

	// Namespace looks like "document.class[2].day" or "document.format".
	ns := strings.TrimPrefix(fe.Namespace(), "document.")
	out := &FieldError{Field: fe.Field(), Err: ErrMissingField}
	if fe.Tag() == "min" {
		out.Err = fmt.Errorf("%w: must not be empty", ErrMissingField)
	}

	head, _, _ := strings.Cut(ns, ".")
	section, idx, hasIdx := strings.Cut(head, "[")
	out.Section = section
	if hasIdx {
		var n int
		if _, serr := fmt.Sscanf(idx, "%d]", &n); serr == nil {
			out.Index = n + 1
		}
	}
	if out.Section == out.Field {
		// the whole section is missing
		out.Section = "document"
	}
	return out
}
