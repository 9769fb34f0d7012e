package orchestration

import (
	"github.com/agbru/threadcalc/internal/config"
	"github.com/agbru/threadcalc/internal/logging"
	"github.com/agbru/threadcalc/internal/pi"
)

// GetEstimatorsToRun returns the estimators a π program runs, in order. The
// first one is the primary estimate; in comparison mode the serial reference
// follows it.
func GetEstimatorsToRun(cfg config.AppConfig, logger logging.Logger) []pi.Estimator {
	switch cfg.Program {
	case config.ProgramPi:
		return []pi.Estimator{pi.SerialEstimator{}}
	case config.ProgramPiParallel:
		estimators := []pi.Estimator{pi.ParallelEstimator{NumWorkers: cfg.Workers, Logger: logger}}
		if cfg.Compare {
			estimators = append(estimators, pi.SerialEstimator{})
		}
		return estimators
	default:
		return nil
	}
}
