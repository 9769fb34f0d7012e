// Package pi estimates π by midpoint-rule integration of 4/(1+x²) over
// [0, 1), either on the calling goroutine or through a fixed-partition
// parallel reduction.
package pi

import (
	"context"
	"math"
	"time"

	apperrors "github.com/agbru/threadcalc/internal/errors"
	"github.com/agbru/threadcalc/internal/parallel"
	"github.com/agbru/threadcalc/internal/partition"
	"github.com/agbru/threadcalc/internal/progress"
)

const (
	// Reference is the value estimates are compared against.
	Reference = 3.141592653589793238462643
	// DefaultIntervals is the number of sub-intervals used when none is given.
	DefaultIntervals = 2_000_000_000
	// MaxIntervals is the largest accepted number of sub-intervals.
	MaxIntervals = parallel.MaxRange
)

// Integrand is the function whose integral over [0, 1] equals π.
func Integrand(x float64) float64 {
	return 4.0 / (1.0 + x*x)
}

// ValidateIntervals checks that n lies in [1, MaxIntervals].
func ValidateIntervals(n int64) error {
	if n < 1 || n > MaxIntervals {
		return apperrors.NewValidationError("n", "given value has to be between 1 and %d, got %d", MaxIntervals, n)
	}
	return nil
}

// Kernel returns the per-chunk accumulation for n sub-intervals: the sum of
// Integrand evaluated at the midpoint of every sub-interval in the chunk.
func Kernel(n int) parallel.Kernel {
	h := 1.0 / float64(n)
	return parallel.Pointwise(func(i int) float64 {
		return Integrand(h * (float64(i) + 0.5))
	})
}

// Estimate is the outcome of one π estimation.
type Estimate struct {
	// Value is the estimate of π.
	Value float64
	// Intervals is the number of sub-intervals integrated.
	Intervals int
	// Workers is the number of workers that contributed.
	Workers int
	// Partials holds each worker's unscaled partial sum.
	Partials []float64
	// Chunks holds each worker's assigned sub-interval range.
	Chunks []partition.Chunk
	// WorkerDurations holds the time spent by each worker.
	WorkerDurations []time.Duration
}

// AbsError returns the absolute difference between the estimate and Reference.
func (e Estimate) AbsError() float64 {
	return math.Abs(e.Value - Reference)
}

// Serial estimates π over n sub-intervals on the calling goroutine.
// n must already be validated.
func Serial(n int) float64 {
	h := 1.0 / float64(n)
	return h * serialSum(n, nil)
}

// serialSum returns the unscaled sum over the whole range as a single chunk.
func serialSum(n int, report progress.ProgressCallback) float64 {
	return Kernel(n)(partition.Chunk{Worker: 0, Start: 0, End: n}, report)
}

// Parallel estimates π over n sub-intervals split across k workers.
func Parallel(ctx context.Context, n, k int, opts ...parallel.Option) (Estimate, error) {
	res, err := parallel.Reduce(ctx, n, k, Kernel(n), opts...)
	if err != nil {
		return Estimate{}, err
	}
	h := 1.0 / float64(n)
	return Estimate{
		Value:           h * res.Sum,
		Intervals:       n,
		Workers:         k,
		Partials:        res.Partials,
		Chunks:          res.Chunks,
		WorkerDurations: res.WorkerDurations,
	}, nil
}
