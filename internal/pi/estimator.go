package pi

import (
	"context"
	"fmt"
	"time"

	"github.com/agbru/threadcalc/internal/logging"
	"github.com/agbru/threadcalc/internal/parallel"
	"github.com/agbru/threadcalc/internal/partition"
	"github.com/agbru/threadcalc/internal/progress"
)

// Estimator computes an estimate of π over a given number of sub-intervals.
type Estimator interface {
	// Name identifies the estimator in reports.
	Name() string
	// Workers returns the number of workers the estimator uses.
	Workers() int
	// Estimate runs the estimation. report may be nil.
	Estimate(ctx context.Context, n int, report progress.ProgressCallback) (Estimate, error)
}

// SerialEstimator runs the integration on the calling goroutine.
type SerialEstimator struct{}

// Name implements Estimator.
func (SerialEstimator) Name() string { return "Serial" }

// Workers implements Estimator.
func (SerialEstimator) Workers() int { return 1 }

// Estimate implements Estimator.
func (SerialEstimator) Estimate(_ context.Context, n int, report progress.ProgressCallback) (Estimate, error) {
	if err := parallel.ValidateRange(n); err != nil {
		return Estimate{}, err
	}
	start := time.Now()
	sum := serialSum(n, report)
	h := 1.0 / float64(n)
	return Estimate{
		Value:           h * sum,
		Intervals:       n,
		Workers:         1,
		Partials:        []float64{sum},
		Chunks:          []partition.Chunk{{Worker: 0, Start: 0, End: n}},
		WorkerDurations: []time.Duration{time.Since(start)},
	}, nil
}

// ParallelEstimator splits the integration across a fixed number of workers.
type ParallelEstimator struct {
	// NumWorkers is the number of goroutines launched per estimation.
	NumWorkers int
	// Logger receives coordinator diagnostics; nil discards them.
	Logger logging.Logger
}

// Name implements Estimator.
func (p ParallelEstimator) Name() string {
	return fmt.Sprintf("Parallel (%d workers)", p.NumWorkers)
}

// Workers implements Estimator.
func (p ParallelEstimator) Workers() int { return p.NumWorkers }

// Estimate implements Estimator.
func (p ParallelEstimator) Estimate(ctx context.Context, n int, report progress.ProgressCallback) (Estimate, error) {
	return Parallel(ctx, n, p.NumWorkers, parallel.WithProgress(report), parallel.WithLogger(p.Logger))
}
