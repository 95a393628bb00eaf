package schedule

import (
	"time"

	"timtambler/internal/model"
)

const secondsPerDay = 86400

// NextWeekly returns the next instant after ref that falls on day at tod,
// in ref's location.
//
// The computation is done on whole seconds (ref's sub-second part is
// dropped). If ref is already at or past tod on day itself, the result is
// the same slot one week later, so the result is always strictly after the
// truncated ref. Offsets are fixed 86400-second days; no DST adjustment.
func NextWeekly(ref time.Time, day model.Weekday, tod model.TimeOfDay) time.Time {
	currentDay := int64(model.WeekdayOf(ref.Weekday()))
	h, m, s := ref.Clock()
	currentSeconds := int64(h)*3600 + int64(m)*60 + int64(s)

	dayDiff := ((int64(day)-currentDay)%7 + 7) % 7
	secDiff := tod.Seconds() - currentSeconds

	if dayDiff == 0 && secDiff <= 0 {
		dayDiff = 7
	}

	return time.Unix(ref.Unix()+dayDiff*secondsPerDay+secDiff, 0).In(ref.Location())
}
