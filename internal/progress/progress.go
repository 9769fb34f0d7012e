// Package progress carries coarse progress notifications from workers to the
// presentation layer.
package progress

// ProgressUpdate is a data transfer object describing how far one worker of
// one estimator has advanced through its chunk.
type ProgressUpdate struct {
	// EstimatorIndex distinguishes concurrent or successive estimators.
	EstimatorIndex int
	// Worker is the zero-based worker index within the estimator.
	Worker int
	// Value is the fraction of the worker's chunk already processed (0.0 to 1.0).
	Value float64
}

// ProgressCallback is invoked by a worker with its own index and progress.
// Implementations must not block: a worker never waits on the display.
type ProgressCallback func(worker int, value float64)

// Stride is the number of iterations a worker performs between two progress
// notifications.
const Stride = 1 << 22

// ChannelCallback returns a callback that forwards updates to ch without
// blocking. Updates are dropped while the channel is full; the final 1.0 of
// each worker may therefore be lost, so consumers treat channel close as
// completion.
func ChannelCallback(ch chan<- ProgressUpdate, estimator int) ProgressCallback {
	if ch == nil {
		return nil
	}
	return func(worker int, value float64) {
		select {
		case ch <- ProgressUpdate{EstimatorIndex: estimator, Worker: worker, Value: value}:
		default:
		}
	}
}

// Report calls cb when it is non-nil.
func (cb ProgressCallback) Report(worker int, value float64) {
	if cb != nil {
		cb(worker, value)
	}
}
