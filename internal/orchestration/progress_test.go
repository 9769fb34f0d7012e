package orchestration

import (
	"testing"

	"github.com/agbru/threadcalc/internal/progress"
)

func TestNewProgressAggregator_WorkerCounts(t *testing.T) {
	t.Parallel()
	tests := []struct {
		workers   int
		wantNil   bool
		wantMulti bool
	}{
		{-1, true, false},
		{0, true, false},
		{1, false, false},
		{4, false, true},
	}
	for _, tt := range tests {
		agg := NewProgressAggregator(tt.workers)
		if (agg == nil) != tt.wantNil {
			t.Errorf("NewProgressAggregator(%d) nil = %v, want %v", tt.workers, agg == nil, tt.wantNil)
			continue
		}
		if agg == nil {
			continue
		}
		if agg.NumWorkers() != tt.workers || agg.IsMultiWorker() != tt.wantMulti {
			t.Errorf("k=%d: NumWorkers()=%d IsMultiWorker()=%v", tt.workers, agg.NumWorkers(), agg.IsMultiWorker())
		}
	}
}

// TestProgressAggregator_InterleavedWorkers replays the updates four π
// workers send while their chunks run concurrently.
func TestProgressAggregator_InterleavedWorkers(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(4)
	steps := []struct {
		update    progress.ProgressUpdate
		wantValue float64
		wantAvg   float64
	}{
		{progress.ProgressUpdate{Worker: 2, Value: 0.5}, 0.5, 0.125},
		{progress.ProgressUpdate{Worker: 0, Value: 0.25}, 0.25, 0.1875},
		{progress.ProgressUpdate{Worker: 3, Value: 1}, 1, 0.4375},
		{progress.ProgressUpdate{Worker: 2, Value: 1}, 1, 0.5625},
		{progress.ProgressUpdate{Worker: 1, Value: 1.2}, 1, 0.8125},
		{progress.ProgressUpdate{Worker: 0, Value: 1}, 1, 1},
	}
	for i, s := range steps {
		got := agg.Update(s.update)
		if got.Worker != s.update.Worker || got.Value != s.wantValue || got.AverageProgress != s.wantAvg {
			t.Errorf("step %d: got worker=%d value=%v avg=%v, want worker=%d value=%v avg=%v",
				i, got.Worker, got.Value, got.AverageProgress, s.update.Worker, s.wantValue, s.wantAvg)
		}
	}
	if agg.CalculateAverage() != 1 {
		t.Errorf("average after the join = %v, want 1", agg.CalculateAverage())
	}
	if eta := agg.GetETA(); eta != 0 {
		t.Errorf("ETA after completion = %v, want 0", eta)
	}
}

func TestProgressAggregator_UnknownWorkerIgnored(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(2)
	got := agg.Update(progress.ProgressUpdate{Worker: 7, Value: 0.9})
	if got.Value != 0 || got.AverageProgress != 0 {
		t.Errorf("out-of-range worker changed state: %+v", got)
	}
	if agg.WorkerProgress(7) != 0 || agg.WorkerProgress(0) != 0 {
		t.Error("worker progress recorded for an unknown worker")
	}
}

func TestDrainChannel_UnblocksAfterClose(t *testing.T) {
	t.Parallel()
	for _, buffered := range []int{0, 3} {
		ch := make(chan progress.ProgressUpdate, buffered)
		for i := 0; i < buffered; i++ {
			ch <- progress.ProgressUpdate{Worker: i, Value: 1}
		}
		close(ch)
		DrainChannel(ch)
		if len(ch) != 0 {
			t.Errorf("buffer %d: %d updates left", buffered, len(ch))
		}
	}
}
