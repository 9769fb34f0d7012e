// Package app wires configuration, computation and presentation into the
// fibseq, pi and pi-parallel programs.
package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agbru/threadcalc/internal/clock"
	"github.com/agbru/threadcalc/internal/config"
	"github.com/agbru/threadcalc/internal/logging"
	"github.com/agbru/threadcalc/internal/sysmon"
	"github.com/agbru/threadcalc/internal/ui"
)

// Application is one run of a threadcalc program.
type Application struct {
	Config    config.AppConfig
	Clock     clock.Clock
	ErrWriter io.Writer
	// Stdin is read by --read-n.
	Stdin   io.Reader
	Logger  logging.Logger
	Sampler sysmon.Sampler
	// RunID identifies the run in logs and exported metrics.
	RunID string
	// Interactive enables the progress spinner on ErrWriter.
	Interactive bool
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithClock sets the clock used to time the run.
func WithClock(c clock.Clock) AppOption {
	return func(a *Application) { a.Clock = c }
}

// WithStdin sets the reader used by --read-n.
func WithStdin(r io.Reader) AppOption {
	return func(a *Application) { a.Stdin = r }
}

// WithLogger replaces the default zerolog console logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithSampler sets the host sampler of the dashboard.
func WithSampler(s sysmon.Sampler) AppOption {
	return func(a *Application) { a.Sampler = s }
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) AppOption {
	return func(a *Application) { a.RunID = id }
}

// New parses args (args[0] being the program name) for program and returns
// the configured Application. Usage and parse errors are written to
// errWriter.
func New(program config.Program, args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := program.String()
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(program, programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app := &Application{
		Config:      cfg,
		Clock:       clock.System{},
		ErrWriter:   errWriter,
		Stdin:       os.Stdin,
		Sampler:     sysmon.System,
		RunID:       uuid.NewString(),
		Interactive: ui.IsTerminal(errWriter),
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		level := zerolog.WarnLevel
		if cfg.Verbose {
			level = zerolog.DebugLevel
		}
		fields := []logging.Field{logging.String("run_id", app.RunID), logging.String("program", program.String())}
		if cfg.LogFormat == config.LogFormatJSON {
			app.Logger = logging.NewLogger(errWriter, program.String()).WithLevel(level).With(fields...)
		} else {
			app.Logger = logging.NewConsoleLogger(errWriter, level, fields...)
		}
	}
	return app, nil
}

// Run executes the configured program, writing results to out, and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	a.Logger.Debug("starting run", logging.String("version", Version))
	switch a.Config.Program {
	case config.ProgramFibonacci:
		return a.runFibonacci(ctx, out)
	case config.ProgramPiParallel:
		if a.Config.Calibrate {
			return a.runCalibration(ctx, out)
		}
		return a.runPi(ctx, out)
	default:
		return a.runPi(ctx, out)
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
