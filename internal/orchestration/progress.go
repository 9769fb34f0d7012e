package orchestration

import (
	"time"

	"github.com/agbru/threadcalc/internal/format"
	"github.com/agbru/threadcalc/internal/progress"
)

// ProgressAggregator folds per-worker progress updates into an average and an
// ETA. Both the CLI spinner and the TUI consume updates through it.
type ProgressAggregator struct {
	state      *format.ProgressWithETA
	numWorkers int
}

// NewProgressAggregator creates an aggregator for numWorkers workers.
// Returns nil if numWorkers <= 0.
func NewProgressAggregator(numWorkers int) *ProgressAggregator {
	if numWorkers <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:      format.NewProgressWithETA(numWorkers),
		numWorkers: numWorkers,
	}
}

// AggregatedProgress holds the result of processing a single update.
type AggregatedProgress struct {
	// Worker is the index of the worker that sent the update.
	Worker int
	// Value is the worker's progress clamped to [0, 1].
	Value float64
	// AverageProgress is the average across all workers.
	AverageProgress float64
	// ETA is the estimated time remaining based on the smoothed rate.
	ETA time.Duration
}

// Update processes a single progress update and returns the aggregated result.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avgProgress, eta := a.state.UpdateWithETA(update.Worker, update.Value)
	return AggregatedProgress{
		Worker:          update.Worker,
		Value:           a.WorkerProgress(update.Worker),
		AverageProgress: avgProgress,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average progress without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// WorkerProgress returns the last reported progress of one worker.
func (a *ProgressAggregator) WorkerProgress(worker int) float64 {
	return a.state.Value(worker)
}

// GetETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumWorkers returns the number of workers being tracked.
func (a *ProgressAggregator) NumWorkers() int {
	return a.numWorkers
}

// IsMultiWorker reports whether more than one worker is tracked.
func (a *ProgressAggregator) IsMultiWorker() bool {
	return a.numWorkers > 1
}

// DrainChannel reads all updates from the channel without processing them.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
