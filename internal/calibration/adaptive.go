// Package calibration times the parallel π estimator over a range of worker
// counts and reports the fastest one for the host.
package calibration

import (
	"slices"
)

// MaxIntervals caps the interval count of a calibration run so that the
// sweep over worker counts stays short.
const MaxIntervals = 100_000_000

// GenerateWorkerCounts returns the worker counts to time for a host with
// numCPU logical processors: powers of two up to twice numCPU, plus numCPU
// itself, in increasing order. A single-core host only tests 1 and 2.
func GenerateWorkerCounts(numCPU int) []int {
	numCPU = max(numCPU, 1)
	counts := []int{}
	for k := 1; k <= 2*numCPU; k *= 2 {
		counts = append(counts, k)
	}
	if !slices.Contains(counts, numCPU) {
		counts = append(counts, numCPU)
		slices.Sort(counts)
	}
	return counts
}

// CalibrationIntervals returns the interval count used to calibrate for a
// requested n.
func CalibrationIntervals(n int) int {
	return min(max(n, 1), MaxIntervals)
}
