package calibration

import (
	"context"
	"io"
	"time"

	"github.com/agbru/threadcalc/internal/clock"
	"github.com/agbru/threadcalc/internal/logging"
	"github.com/agbru/threadcalc/internal/pi"
)

// Measurement is the outcome of one timed estimation.
type Measurement struct {
	Workers  int
	Duration time.Duration
	Value    float64
	Err      error
}

// Run times the parallel estimator over n intervals for every worker count
// in counts, one after another, prints a summary table to out and returns
// the measurements together with the fastest worker count (0 if every run
// failed). Cancellation of ctx stops the series after the current run and
// returns ctx.Err() without printing the table.
func Run(ctx context.Context, n int, counts []int, clk clock.Clock, logger logging.Logger, out io.Writer) ([]Measurement, int, error) {
	results := make([]Measurement, 0, len(counts))
	for _, k := range counts {
		est := pi.ParallelEstimator{NumWorkers: k, Logger: logger}
		sw := clock.Start(clk)
		estimate, err := est.Estimate(ctx, n, nil)
		m := Measurement{Workers: k, Duration: sw.Elapsed(), Value: estimate.Value, Err: err}
		logger.Debug("calibration run", logging.Int("workers", k), logging.String("duration", m.Duration.String()))
		results = append(results, m)
		if err := ctx.Err(); err != nil {
			return results, 0, err
		}
	}
	best := fastest(results)
	printCalibrationResults(out, n, results, best)
	return results, best, nil
}

func fastest(results []Measurement) int {
	best, bestDuration := 0, time.Duration(0)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if best == 0 || r.Duration < bestDuration {
			best, bestDuration = r.Workers, r.Duration
		}
	}
	return best
}
