package dates

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// Adapters use it to resolve "today" when no reference date is supplied.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
