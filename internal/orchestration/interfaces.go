package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/threadcalc/internal/pi"
	"github.com/agbru/threadcalc/internal/progress"
)

// EstimationResult encapsulates the outcome of a single estimator run.
// It is the shared domain type between orchestration and presentation.
type EstimationResult struct {
	// Name identifies the estimator (e.g., "Parallel (4 workers)").
	Name string
	// Estimate is the computed estimate. It is zero if an error occurred.
	Estimate pi.Estimate
	// ElapsedSeconds is the wall-clock time of the estimation in seconds.
	ElapsedSeconds float64
	// Err contains any error that occurred during the estimation.
	Err error
}

// Duration returns ElapsedSeconds as a time.Duration.
func (r EstimationResult) Duration() time.Duration {
	return time.Duration(r.ElapsedSeconds * float64(time.Second))
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	N         int
	Verbose   bool
	Quiet     bool
	Tolerance float64
}

// ProgressReporter displays worker progress. DisplayProgress runs in its own
// goroutine until progressChan is closed and then calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer) {
	f(wg, progressChan, numWorkers, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter presents estimation results.
type ResultPresenter interface {
	// PresentComparisonTable displays one row per estimator.
	PresentComparisonTable(results []EstimationResult, out io.Writer)
	// PresentResult displays the final estimate.
	PresentResult(result EstimationResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler handles estimation errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
