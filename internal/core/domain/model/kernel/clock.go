package kernel

import "time"

// Clock is the source of the current instant. Order numbers, delivery dates
// and history timestamps are all taken from it, so the calendar day they fall
// on follows the clock's location.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock returns a clock reporting time in loc. A nil loc means UTC.
func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.UTC
	}
	return SystemClock{loc: loc}
}

func (c SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today returns the calendar day of clock.Now().
func Today(clock Clock) Date {
	return DateOf(clock.Now())
}

// FixedClock always returns the same instant. It is used by tests and by
// administrative backfills that stamp records with a given moment.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}
