package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/threadcalc/internal/cli/mocks"
	"github.com/agbru/threadcalc/internal/orchestration"
	"github.com/agbru/threadcalc/internal/progress"
)

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
	if s.Suffix != " test" {
		t.Errorf("Suffix = %q, want %q", s.Suffix, " test")
	}
}

func TestDisplayProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockS := mocks.NewMockSpinner(ctrl)
	mockS.EXPECT().UpdateSuffix(gomock.Any()).AnyTimes()
	gomock.InOrder(
		mockS.EXPECT().Start().Times(1),
		mockS.EXPECT().Stop().Times(1),
	)

	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()
	newSpinner = func(io.Writer, ...spinner.Option) Spinner { return mockS }

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.ProgressUpdate)
	go func() {
		progressChan <- progress.ProgressUpdate{Worker: 0, Value: 0.5}
		progressChan <- progress.ProgressUpdate{Worker: 1, Value: 1.0}
		time.Sleep(10 * time.Millisecond)
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 2, io.Discard)
	wg.Wait()
}

func TestDisplayProgress_ZeroWorkers(t *testing.T) {
	t.Parallel()
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.ProgressUpdate, 1)
	progressChan <- progress.ProgressUpdate{Value: 1}
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}

func TestProgressSuffix(t *testing.T) {
	t.Parallel()
	agg := orchestration.NewProgressAggregator(4)
	agg.Update(progress.ProgressUpdate{Worker: 0, Value: 1})
	agg.Update(progress.ProgressUpdate{Worker: 1, Value: 1})

	got := progressSuffix(agg)
	for _, want := range []string{"50.00%", "ETA:", "(4 workers)"} {
		if !strings.Contains(got, want) {
			t.Errorf("progressSuffix() = %q, missing %q", got, want)
		}
	}

	single := progressSuffix(orchestration.NewProgressAggregator(1))
	if !strings.Contains(single, "(1 worker)") {
		t.Errorf("progressSuffix() = %q, want singular label", single)
	}
}

func TestNewSpinnerWritesToWriter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	s := newSpinner(&buf)
	if _, ok := s.(*realSpinner); !ok {
		t.Fatalf("newSpinner returned %T, want *realSpinner", s)
	}
}
