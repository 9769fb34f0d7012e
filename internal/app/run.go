package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/threadcalc/internal/calibration"
	"github.com/agbru/threadcalc/internal/cli"
	"github.com/agbru/threadcalc/internal/clock"
	apperrors "github.com/agbru/threadcalc/internal/errors"
	"github.com/agbru/threadcalc/internal/fibonacci"
	"github.com/agbru/threadcalc/internal/logging"
	"github.com/agbru/threadcalc/internal/metrics"
	"github.com/agbru/threadcalc/internal/orchestration"
	"github.com/agbru/threadcalc/internal/pi"
	"github.com/agbru/threadcalc/internal/sysmon"
	"github.com/agbru/threadcalc/internal/tui"
)

// ReadIntervalsPrompt is written to out before reading n with --read-n.
const ReadIntervalsPrompt = "Enter the number of intervals: "

// errorHandler sends errors to a fixed writer, whatever writer the caller
// passes.
type errorHandler struct {
	w io.Writer
}

func (h errorHandler) HandleError(err error, duration time.Duration, _ io.Writer) int {
	return cli.CLIResultPresenter{}.HandleError(err, duration, h.w)
}

func (a *Application) handleError(err error, duration time.Duration) int {
	return errorHandler{a.ErrWriter}.HandleError(err, duration, nil)
}

// runFibonacci generates and prints the sequence.
func (a *Application) runFibonacci(ctx context.Context, out io.Writer) int {
	cfg := a.Config
	sw := clock.Start(a.Clock)

	var body string
	if cfg.Exact {
		seq, err := fibonacci.GenerateExact(ctx, cfg.Elements)
		if err != nil {
			return a.handleError(err, sw.Elapsed())
		}
		a.Logger.Debug("exact sequence generated", logging.String("backend", fibonacci.ExactBackend))
		body = cli.FormatExactSequence(seq)
	} else {
		seq, err := fibonacci.GenerateWithLogger(ctx, cfg.Elements, a.Logger)
		if err != nil {
			return a.handleError(err, sw.Elapsed())
		}
		body = cli.FormatSequence(seq)
	}
	elapsed := sw.Elapsed()
	a.Logger.Debug("sequence generated", logging.Int("elements", cfg.Elements), logging.String("elapsed", elapsed.String()))

	cli.DisplaySequence(out, body, cfg.Elements, cfg.Quiet)

	return a.exportMetrics(func(r *metrics.Recorder) {
		r.ObserveSequence(cfg.Elements, elapsed)
	})
}

// runPi runs the π estimators of the configured program and presents the
// outcome.
func (a *Application) runPi(ctx context.Context, out io.Writer) int {
	if a.Config.ReadN {
		n, err := a.readIntervals(out)
		if err != nil {
			return a.handleError(err, 0)
		}
		a.Config.N = n
	}
	cfg := a.Config
	n := int(cfg.N)

	estimators := orchestration.GetEstimatorsToRun(cfg, a.Logger)
	if cfg.Verbose && !cfg.TUI {
		cli.PrintExecutionConfig(cfg, out)
		cli.PrintExecutionMode(estimators, out)
	}

	usageBefore, usageOK := metrics.ReadUsage()
	var results []orchestration.EstimationResult
	if cfg.TUI {
		var err error
		results, err = tui.Run(ctx, tui.Options{
			Estimators: estimators,
			N:          n,
			Clock:      a.Clock,
			Sampler:    a.Sampler,
			Version:    Version,
		})
		if err != nil {
			return a.handleError(apperrors.ResourceError{Resource: "terminal", Cause: err}, 0)
		}
	} else {
		results = orchestration.ExecuteEstimations(ctx, estimators, n, a.Clock, a.progressReporter(), a.ErrWriter)
	}
	usageAfter, _ := metrics.ReadUsage()
	usage := usageAfter.Sub(usageBefore)

	opts := orchestration.PresentationOptions{
		N:         n,
		Verbose:   cfg.Verbose,
		Quiet:     cfg.Quiet,
		Tolerance: cfg.Tolerance,
	}
	code := orchestration.AnalyzeComparisonResults(results, opts, cli.CLIResultPresenter{}, errorHandler{a.ErrWriter}, out)

	if usageOK && len(results) > 0 {
		a.Logger.Debug("cpu usage",
			logging.String("user", usage.User.String()),
			logging.String("system", usage.System.String()),
			logging.Float64("parallelism", usage.Parallelism(totalDuration(results))))
	}

	// Only complete runs are exported; a failed, canceled or mismatched run
	// leaves any previous metrics file untouched.
	if code != apperrors.ExitSuccess {
		if a.Config.MetricsFile != "" {
			a.Logger.Debug("metrics skipped for unsuccessful run", logging.Int("exit_code", code))
		}
		return code
	}
	return a.exportMetrics(func(r *metrics.Recorder) {
		workers := 0
		if len(estimators) > 0 {
			workers = estimators[0].Workers()
		}
		r.SetWorkload(cfg.N, workers)
		for _, res := range results {
			r.ObserveEstimate(res.Name, res.Estimate.Value, res.Estimate.AbsError(), res.Duration(), res.Estimate.WorkerDurations)
		}
		if usageOK {
			r.ObserveUsage(usage)
		}
	})
}

// runCalibration times the parallel estimator for several worker counts.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	n := calibration.CalibrationIntervals(int(a.Config.N))
	counts := calibration.GenerateWorkerCounts(sysmon.LogicalCPUs())
	_, best, err := calibration.Run(ctx, n, counts, a.Clock, a.Logger, out)
	if err != nil {
		return a.handleError(err, 0)
	}
	if best == 0 {
		return a.handleError(apperrors.NewConfigError("every calibration run failed"), 0)
	}
	return apperrors.ExitSuccess
}

// progressReporter returns the spinner when stderr is a terminal and the
// run is not quiet.
func (a *Application) progressReporter() orchestration.ProgressReporter {
	if a.Config.Quiet || !a.Interactive {
		return orchestration.NullProgressReporter{}
	}
	return cli.CLIProgressReporter{}
}

// readIntervals prompts on out and reads the interval count from Stdin.
func (a *Application) readIntervals(out io.Writer) (int64, error) {
	fmt.Fprint(out, ReadIntervalsPrompt)
	scanner := bufio.NewScanner(a.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, apperrors.WrapError(err, "reading the number of intervals")
		}
		return 0, apperrors.NewConfigError("no number of intervals on standard input")
	}
	text := strings.TrimSpace(scanner.Text())
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("n", "invalid number of intervals %q", text)
	}
	if err := pi.ValidateIntervals(n); err != nil {
		return 0, err
	}
	return n, nil
}

// exportMetrics writes the run metrics to the configured file, if any.
// observe fills the recorder with the program-specific values.
func (a *Application) exportMetrics(observe func(*metrics.Recorder)) int {
	if a.Config.MetricsFile == "" {
		return apperrors.ExitSuccess
	}
	r := metrics.NewRecorder(a.Config.Program.String(), a.RunID)
	observe(r)
	r.ObserveMemory(metrics.ReadMemory())
	if err := r.WriteTextfile(a.Config.MetricsFile); err != nil {
		return a.handleError(apperrors.ResourceError{Resource: "metrics file", Cause: err}, 0)
	}
	a.Logger.Debug("metrics written", logging.String("path", a.Config.MetricsFile))
	return apperrors.ExitSuccess
}

func totalDuration(results []orchestration.EstimationResult) time.Duration {
	var total time.Duration
	for _, r := range results {
		total += r.Duration()
	}
	return total
}
