// Package clock abstracts "now" so rendering passes can be driven by a fixed
// instant in tests.
package clock

import "time"

// Clock returns the current instant. A rendering pass calls it once and
// threads the result through every computation.
type Clock func() time.Time

// System reads the wall clock.
func System() time.Time {
	return time.Now()
}

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}
