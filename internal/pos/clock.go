package pos

import "time"

// Clock supplies the current time to components that make calendar
// decisions (shipment gating, date validation, order timestamps).
// Implemented by SystemClock in production and testutil.FixedClock in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// DateOnly truncates a time to its calendar day, anchored in UTC. Stored
// shipment dates parse as UTC while the wall clock is local; anchoring
// both sides makes day comparisons calendar comparisons, not instant
// comparisons across zones.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the clock's current day at day granularity.
func Today(c Clock) time.Time {
	return DateOnly(c.Now())
}
