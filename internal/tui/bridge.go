package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/threadcalc/internal/orchestration"
	"github.com/agbru/threadcalc/internal/progress"
)

// sender is the part of tea.Program used by the bridge.
type sender interface {
	Send(msg tea.Msg)
}

// programRef is a shared reference to the running program. bubbletea copies
// the model on every Update, so the reference has to live behind a pointer.
type programRef struct {
	mu      sync.RWMutex
	program sender
}

// SetProgram sets the program reference (thread-safe).
func (r *programRef) SetProgram(p sender) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program, or drops it when none is set.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements orchestration.ProgressReporter by turning
// progress updates into dashboard messages. Estimators are numbered in the
// order their progress is displayed.
type TUIProgressReporter struct {
	ref     *programRef
	started int
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains progressChan and forwards every update.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numWorkers)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	t.ref.Send(EstimatorStartedMsg{Index: t.started, NumWorkers: numWorkers})
	t.started++
	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(WorkerProgressMsg{
			Estimator:       update.EstimatorIndex,
			Worker:          ap.Worker,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
		})
	}
	t.ref.Send(ProgressDoneMsg{})
}
