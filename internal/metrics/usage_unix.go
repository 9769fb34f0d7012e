//go:build unix

package metrics

import (
	"time"

	"golang.org/x/sys/unix"
)

// ReadUsage returns the CPU usage of the calling process.
// ok is false when the kernel call fails.
func ReadUsage() (u Usage, ok bool) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return Usage{}, false
	}
	return Usage{
		User:   time.Duration(ru.Utime.Nano()),
		System: time.Duration(ru.Stime.Nano()),
		MaxRSS: int64(ru.Maxrss),
	}, true
}
