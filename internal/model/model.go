package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidWeekday   = errors.New("invalid day of the week")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
)

// Weekday is a day of the week indexed Monday=0 .. Sunday=6.
// Note this differs from time.Weekday, which starts at Sunday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return "Weekday(" + strconv.Itoa(int(d)) + ")"
	}
	return weekdayNames[d]
}

// ParseWeekday accepts a full English day name or its three-letter
// abbreviation, in any case.
func ParseWeekday(s string) (Weekday, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for i, name := range weekdayNames {
		full := strings.ToLower(name)
		if v == full || v == full[:3] {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q is not a day of the week", ErrInvalidWeekday, s)
}

// WeekdayOf converts a standard library weekday to the Monday-first index.
func WeekdayOf(d time.Weekday) Weekday {
	return Weekday((int(d) + 6) % 7)
}

// TimeWeekday converts the Monday-first index back to the standard library weekday.
func (d Weekday) TimeWeekday() time.Weekday {
	return time.Weekday((int(d) + 1) % 7)
}

// TimeOfDay is an (hour, minute) pair in local time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (the hour may be a single digit).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	v := strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(v, ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q is not in HH:MM form", ErrInvalidTimeOfDay, s)
	}
	h, herr := strconv.Atoi(hh)
	m, merr := strconv.Atoi(mm)
	if herr != nil || merr != nil || strings.ContainsAny(v, "+-") {
		return TimeOfDay{}, fmt.Errorf("%w: %q is not in HH:MM form", ErrInvalidTimeOfDay, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q is out of range", ErrInvalidTimeOfDay, s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// Seconds returns the offset from midnight in seconds.
func (t TimeOfDay) Seconds() int64 {
	return int64(t.Hour)*3600 + int64(t.Minute)*60
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Class is a weekly recurring class session.
type Class struct {
	Name     string
	Day      Weekday
	Start    TimeOfDay
	End      TimeOfDay
	Location string

	// Raw values as written in the timetable file; templates show these.
	DayText   string
	StartText string
	EndText   string
}

// Assignment is a one-off deliverable with an absolute due instant.
type Assignment struct {
	Name   string
	Points string // opaque, never parsed

	Due     time.Time
	DueText string
}

// FormatSet holds the line templates and the due-date parse format.
type FormatSet struct {
	InClass           string
	NextClass         string
	Assignment        string
	AssignmentOverdue string
	AssignmentTime    string
}

// Timetable is everything loaded from one input file.
type Timetable struct {
	Classes     []Class
	Assignments []Assignment
	Format      FormatSet
}
