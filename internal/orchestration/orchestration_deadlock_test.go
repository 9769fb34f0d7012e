package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/agbru/threadcalc/internal/clock"
	"github.com/agbru/threadcalc/internal/pi"
	"github.com/agbru/threadcalc/internal/progress"
)

// behaviorEstimator simulates estimator behaviors that could stall the
// progress pipeline.
type behaviorEstimator struct {
	name     string
	behavior string // "instant", "slow", "error", "progress_flood"
	workers  int
	delay    time.Duration
}

func (m *behaviorEstimator) Name() string { return m.name }

func (m *behaviorEstimator) Workers() int {
	if m.workers > 0 {
		return m.workers
	}
	return 1
}

func (m *behaviorEstimator) Estimate(_ context.Context, n int, report progress.ProgressCallback) (pi.Estimate, error) {
	switch m.behavior {
	case "slow":
		for i := 0; i < 20; i++ {
			report.Report(0, float64(i)/20)
			time.Sleep(m.delay)
		}
	case "error":
		return pi.Estimate{}, fmt.Errorf("simulated error")
	case "progress_flood":
		var wg sync.WaitGroup
		for w := 0; w < m.Workers(); w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < 10000; i++ {
					report.Report(w, float64(i)/10000)
				}
			}(w)
		}
		wg.Wait()
	}
	return pi.Estimate{Value: 3.14, Intervals: n, Workers: m.Workers()}, nil
}

// slowProgressReporter consumes updates slower than they are produced.
type slowProgressReporter struct{}

func (slowProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		time.Sleep(time.Microsecond)
	}
}

// TestOrchestrationNoDeadlock_MixedBehaviors verifies that workers never block
// on a slow display and that ExecuteEstimations always returns.
func TestOrchestrationNoDeadlock_MixedBehaviors(t *testing.T) {
	testCases := []struct {
		name       string
		estimators []pi.Estimator
	}{
		{
			name: "all_instant",
			estimators: []pi.Estimator{
				&behaviorEstimator{name: "e1", behavior: "instant"},
				&behaviorEstimator{name: "e2", behavior: "instant"},
			},
		},
		{
			name: "mixed_instant_and_slow",
			estimators: []pi.Estimator{
				&behaviorEstimator{name: "fast", behavior: "instant"},
				&behaviorEstimator{name: "slow", behavior: "slow", delay: time.Millisecond},
			},
		},
		{
			name: "mixed_with_errors",
			estimators: []pi.Estimator{
				&behaviorEstimator{name: "ok", behavior: "instant"},
				&behaviorEstimator{name: "err", behavior: "error"},
			},
		},
		{
			name: "progress_flood",
			estimators: []pi.Estimator{
				&behaviorEstimator{name: "flood", behavior: "progress_flood", workers: 8},
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			done := make(chan []EstimationResult)
			go func() {
				done <- ExecuteEstimations(context.Background(), tc.estimators, 100, clock.System{}, slowProgressReporter{}, io.Discard)
			}()

			select {
			case results := <-done:
				if len(results) != len(tc.estimators) {
					t.Errorf("got %d results, want %d", len(results), len(tc.estimators))
				}
			case <-time.After(10 * time.Second):
				t.Fatal("DEADLOCK: ExecuteEstimations did not complete within timeout")
			}
		})
	}
}
