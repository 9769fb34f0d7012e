package orchestration

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/agbru/threadcalc/internal/clock"
	apperrors "github.com/agbru/threadcalc/internal/errors"
	"github.com/agbru/threadcalc/internal/pi"
	"github.com/agbru/threadcalc/internal/progress"
)

// ProgressBufferMultiplier sizes the progress channel per worker. Workers
// never block on it; a larger buffer only reduces dropped updates.
const ProgressBufferMultiplier = 5

// maxBufferedWorkers caps the number of workers the progress buffer is sized
// for. Updates from further workers are dropped when the buffer is full.
const maxBufferedWorkers = 1024

func progressBufferSize(workers int) int {
	return max(0, min(workers, maxBufferedWorkers)) * ProgressBufferMultiplier
}

// ExecuteEstimations runs the estimators one after another over n intervals
// and returns one result per estimator, in order. Running them sequentially
// keeps each elapsed time free of interference from the others.
//
// Each estimator gets its own progress channel, displayed by reporter on out
// while it runs. Elapsed times are measured with clk. Once ctx is canceled
// the remaining estimators are not started and report ctx.Err().
func ExecuteEstimations(ctx context.Context, estimators []pi.Estimator, n int, clk clock.Clock, reporter ProgressReporter, out io.Writer) []EstimationResult {
	results := make([]EstimationResult, len(estimators))
	for i, est := range estimators {
		if err := ctx.Err(); err != nil {
			results[i] = EstimationResult{Name: est.Name(), Err: err}
			continue
		}
		results[i] = executeOne(ctx, i, est, n, clk, reporter, out)
	}
	return results
}

func executeOne(ctx context.Context, index int, est pi.Estimator, n int, clk clock.Clock, reporter ProgressReporter, out io.Writer) EstimationResult {
	progressChan := make(chan progress.ProgressUpdate, progressBufferSize(est.Workers()))

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, est.Workers(), out)

	start := clock.Seconds(clk)
	estimate, err := est.Estimate(ctx, n, progress.ChannelCallback(progressChan, index))
	elapsed := clock.Seconds(clk) - start
	if err == nil {
		// Workers are never interrupted; a signal received meanwhile only
		// discards their result.
		err = ctx.Err()
	}

	close(progressChan)
	displayWg.Wait()

	return EstimationResult{
		Name:           est.Name(),
		Estimate:       estimate,
		ElapsedSeconds: elapsed,
		Err:            err,
	}
}

// AnalyzeComparisonResults decides the outcome of a run and presents it.
//
// The first failed estimator determines the exit code. With a single result
// the estimate is presented directly. With several, a comparison table is
// shown and every estimate must lie within opts.Tolerance of the first one,
// otherwise the run ends with apperrors.ExitErrorMismatch.
func AnalyzeComparisonResults(results []EstimationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	if len(results) == 0 {
		return errHandler.HandleError(apperrors.NewConfigError("no estimator to run"), 0, out)
	}
	for _, res := range results {
		if res.Err != nil {
			return errHandler.HandleError(res.Err, res.Duration(), out)
		}
	}

	primary := results[0]
	if len(results) == 1 {
		presenter.PresentResult(primary, opts, out)
		return apperrors.ExitSuccess
	}

	presenter.PresentComparisonTable(results, out)
	var worst float64
	for _, res := range results[1:] {
		worst = math.Max(worst, math.Abs(res.Estimate.Value-primary.Estimate.Value))
	}
	if worst > opts.Tolerance {
		err := apperrors.MismatchError{Delta: worst, Tolerance: opts.Tolerance}
		return errHandler.HandleError(err, primary.Duration(), out)
	}
	if !opts.Quiet {
		fmt.Fprintf(out, "\nGlobal Status: Success. Estimates agree within %g.\n", opts.Tolerance)
	}
	presenter.PresentResult(primary, opts, out)
	return apperrors.ExitSuccess
}
