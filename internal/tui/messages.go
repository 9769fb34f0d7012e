package tui

import (
	"time"

	"github.com/agbru/threadcalc/internal/metrics"
	"github.com/agbru/threadcalc/internal/orchestration"
	"github.com/agbru/threadcalc/internal/sysmon"
)

// EstimatorStartedMsg announces that estimator Index started with
// NumWorkers workers.
type EstimatorStartedMsg struct {
	Index      int
	NumWorkers int
}

// WorkerProgressMsg carries one progress update of a running estimator.
type WorkerProgressMsg struct {
	Estimator       int
	Worker          int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the current estimator has joined its workers.
type ProgressDoneMsg struct{}

// RunCompleteMsg carries the results once every estimator has finished.
type RunCompleteMsg struct {
	Results []orchestration.EstimationResult
}

// TickMsg triggers periodic sampling.
type TickMsg time.Time

// SysStatsMsg carries a system-wide resource sample.
type SysStatsMsg sysmon.Stats

// MemStatsMsg carries a Go heap sample.
type MemStatsMsg metrics.MemorySnapshot
