package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders d with a unit that keeps three significant
// decimals readable in worker tables: "850.0µs", "12.345ms", "2.500000s".
// Seconds carry six decimals, the precision of the "Time elapsed" line.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%.1fµs", float64(d)/float64(time.Microsecond))
	case d < time.Second:
		return fmt.Sprintf("%.3fms", float64(d)/float64(time.Millisecond))
	default:
		return fmt.Sprintf("%.6fs", d.Seconds())
	}
}

// FormatWorkerSpread summarizes per-worker durations as the fastest and the
// slowest one and their ratio, e.g. "1.000ms .. 1.500ms (x1.50)". The ratio
// is omitted when the fastest worker took no measurable time. An empty slice
// yields "-".
func FormatWorkerSpread(durations []time.Duration) string {
	if len(durations) == 0 {
		return "-"
	}
	fastest, slowest := durations[0], durations[0]
	for _, d := range durations[1:] {
		fastest = min(fastest, d)
		slowest = max(slowest, d)
	}
	spread := FormatExecutionDuration(fastest) + " .. " + FormatExecutionDuration(slowest)
	if fastest <= 0 {
		return spread
	}
	return fmt.Sprintf("%s (x%.2f)", spread, float64(slowest)/float64(fastest))
}
