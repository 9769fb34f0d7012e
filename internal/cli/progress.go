package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/threadcalc/internal/format"
	"github.com/agbru/threadcalc/internal/orchestration"
	"github.com/agbru/threadcalc/internal/progress"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and an aggregated progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress implements orchestration.ProgressReporter.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer) {
	DisplayProgress(wg, progressChan, numWorkers, out)
}

// DisplayProgress shows a spinner on out with the average progress of
// numWorkers workers until progressChan is closed. It then stops the spinner
// and calls wg.Done.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numWorkers)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(out)
	s.UpdateSuffix(progressSuffix(agg))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				return
			}
			agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(agg))
		}
	}
}

func progressSuffix(agg *orchestration.ProgressAggregator) string {
	label := "worker"
	if agg.IsMultiWorker() {
		label = "workers"
	}
	return fmt.Sprintf(" %s (%d %s)",
		format.FormatProgressBarWithETA(agg.CalculateAverage(), agg.GetETA(), ProgressBarWidth),
		agg.NumWorkers(), label)
}
