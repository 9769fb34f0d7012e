//go:generate mockgen -source=clock.go -destination=mocks/mock_clock.go -package=mocks

// Package clock provides the wall-clock capability used to time runs.
package clock

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// System is the Clock backed by time.Now.
type System struct{}

// Now returns the current local time.
func (System) Now() time.Time { return time.Now() }

// Seconds returns the current wall-clock time of c as floating-point seconds
// since the Unix epoch, with microsecond resolution.
func Seconds(c Clock) float64 {
	now := c.Now()
	return float64(now.Unix()) + float64(now.Nanosecond()/1000)*1e-6
}

// Stopwatch measures elapsed time against a Clock.
type Stopwatch struct {
	clock Clock
	start time.Time
}

// Start returns a Stopwatch started at the current time of c.
func Start(c Clock) Stopwatch {
	return Stopwatch{clock: c, start: c.Now()}
}

// Elapsed returns the time since the stopwatch was started.
func (s Stopwatch) Elapsed() time.Duration {
	return s.clock.Now().Sub(s.start)
}
