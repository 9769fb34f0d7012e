package metrics

import "time"

// Usage is the CPU time consumed by the process so far.
type Usage struct {
	User   time.Duration
	System time.Duration
	// MaxRSS is the peak resident set size as reported by the kernel
	// (kilobytes on Linux, bytes on Darwin).
	MaxRSS int64
}

// Total returns user plus system time.
func (u Usage) Total() time.Duration { return u.User + u.System }

// Sub returns the usage accumulated between prev and u. MaxRSS is kept from u.
func (u Usage) Sub(prev Usage) Usage {
	return Usage{User: u.User - prev.User, System: u.System - prev.System, MaxRSS: u.MaxRSS}
}

// Parallelism returns the ratio of CPU time to wall time, an approximation
// of the number of cores kept busy. It returns 0 for a zero wall time.
func (u Usage) Parallelism(wall time.Duration) float64 {
	if wall <= 0 {
		return 0
	}
	return u.Total().Seconds() / wall.Seconds()
}
