package scanner

import "time"

// Clock reads the device's real-time clock. Embedded RTCs can be unset or
// unreadable, so reads are fallible.
type Clock interface {
	Now() (time.Time, error)
}

// Epoch is the sentinel timestamp stamped on sightings when the clock is
// unreadable; the loop never fails a tick over it.
var Epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// SystemClock reads the host clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() (time.Time, error) { return time.Now(), nil }
