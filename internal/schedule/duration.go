package schedule

import (
	"strconv"
	"strings"
)

// Direction says which side of the reference instant something lies on.
type Direction int

const (
	Future Direction = iota
	Past
)

func (d Direction) String() string {
	if d == Past {
		return "past"
	}
	return "future"
}

// DirectionOf classifies a signed second count. Zero counts as Future.
func DirectionOf(seconds int64) Direction {
	if seconds < 0 {
		return Past
	}
	return Future
}

type unit struct {
	size int64
	name string
}

var units = [...]unit{
	{604800, "week"},
	{86400, "day"},
	{3600, "hour"},
	{60, "minute"},
	{1, "second"},
}

// maxTerms bounds the precision of FormatDuration.
const maxTerms = 2

// FormatDuration renders the magnitude of seconds using at most the two most
// significant non-zero units, e.g. "1 week & 2 days" or "59 minutes & 59 seconds".
// Smaller units are truncated. A zero magnitude renders as "0 seconds".
func FormatDuration(seconds int64) string {
	rest := magnitude(seconds)

	terms := make([]string, 0, maxTerms)
	for _, u := range units {
		n := rest / uint64(u.size)
		rest %= uint64(u.size)
		if n == 0 {
			continue
		}
		terms = append(terms, plural(n, u.name))
		if len(terms) == maxTerms {
			break
		}
	}
	if len(terms) == 0 {
		return plural(0, "second")
	}
	return strings.Join(terms, " & ")
}

func magnitude(s int64) uint64 {
	if s < 0 {
		// -(s+1) cannot overflow for math.MinInt64.
		return uint64(-(s + 1)) + 1
	}
	return uint64(s)
}

func plural(n uint64, name string) string {
	out := strconv.FormatUint(n, 10) + " " + name
	if n != 1 {
		out += "s"
	}
	return out
}
