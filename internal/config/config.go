// Package config parses the command line and environment of the three
// threadcalc programs into an AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	apperrors "github.com/agbru/threadcalc/internal/errors"
	"github.com/agbru/threadcalc/internal/fibonacci"
	"github.com/agbru/threadcalc/internal/parallel"
	"github.com/agbru/threadcalc/internal/pi"
)

// EnvPrefix is prepended to every environment variable read by the programs.
const EnvPrefix = "THREADCALC_"

// DefaultTolerance is the largest accepted difference between the serial and
// parallel estimates in comparison mode.
const DefaultTolerance = 1e-6

// Log formats accepted by --log-format.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Program identifies which command is being configured.
type Program int

const (
	// ProgramFibonacci prints the leading Fibonacci numbers.
	ProgramFibonacci Program = iota
	// ProgramPi runs the serial π estimate.
	ProgramPi
	// ProgramPiParallel runs the parallel π estimate.
	ProgramPiParallel
)

// String returns the default binary name of the program.
func (p Program) String() string {
	switch p {
	case ProgramFibonacci:
		return "fibseq"
	case ProgramPi:
		return "pi"
	case ProgramPiParallel:
		return "pi-parallel"
	default:
		return fmt.Sprintf("Program(%d)", int(p))
	}
}

// AppConfig aggregates the configuration of one program run.
type AppConfig struct {
	Program Program

	// Elements is the Fibonacci sequence length (fibseq).
	Elements int
	// Exact prints arbitrary-precision values instead of int64 ones (fibseq).
	Exact bool

	// N is the number of integration intervals (pi, pi-parallel).
	N int64
	// ReadN reads N from standard input after a prompt.
	ReadN bool
	// Workers is the number of parallel workers (pi-parallel).
	Workers int
	// Compare also runs the serial estimator and checks agreement.
	Compare bool
	// Tolerance bounds the serial/parallel difference in comparison mode.
	Tolerance float64
	// TUI enables the interactive dashboard.
	TUI bool
	// Calibrate times several worker counts instead of running one estimate.
	Calibrate bool

	Quiet       bool
	Verbose     bool
	NoColor     bool
	MetricsFile string
	// LogFormat is LogFormatConsole or LogFormatJSON.
	LogFormat string
}

// Default returns the configuration used when no flag, argument or
// environment variable overrides it.
func Default(program Program) AppConfig {
	return AppConfig{
		Program:   program,
		N:         pi.DefaultIntervals,
		Workers:   1,
		Tolerance: DefaultTolerance,
		LogFormat: LogFormatConsole,
	}
}

// ParseConfig parses args (without the program name) for program. Usage and
// parse errors go to errWriter. A -h or --help flag yields flag.ErrHelp.
func ParseConfig(program Program, programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := Default(program)
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() { printUsage(fs, program, programName) }

	fs.BoolVar(&cfg.Quiet, "quiet", false, "Only print results.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging on stderr.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this path.")
	fs.StringVar(&cfg.LogFormat, "log-format", LogFormatConsole, "Diagnostics format on stderr: console or json.")
	fs.Bool("version", false, "Print version information and exit.")

	switch program {
	case ProgramFibonacci:
		fs.BoolVar(&cfg.Exact, "exact", false, "Print exact values instead of 64-bit integers.")
	case ProgramPi, ProgramPiParallel:
		fs.Int64Var(&cfg.N, "n", pi.DefaultIntervals, "Number of integration intervals.")
		fs.BoolVar(&cfg.ReadN, "read-n", false, "Read the number of intervals from standard input.")
		if program == ProgramPiParallel {
			fs.BoolVar(&cfg.Compare, "compare", false, "Also run the serial estimate and compare the results.")
			fs.Float64Var(&cfg.Tolerance, "tolerance", DefaultTolerance, "Maximum serial/parallel difference in --compare mode.")
			fs.BoolVar(&cfg.TUI, "tui", false, "Show a live per-worker dashboard.")
			fs.BoolVar(&cfg.Calibrate, "calibrate", false, "Time a range of worker counts and suggest the fastest.")
		}
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	applyEnvOverrides(&cfg, fs)

	if err := parsePositional(&cfg, fs.Args()); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		fs.Usage()
		return AppConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

func parsePositional(cfg *AppConfig, rest []string) error {
	switch cfg.Program {
	case ProgramFibonacci:
		if len(rest) == 0 {
			return apperrors.NewConfigError("missing required argument <elements>")
		}
		if len(rest) > 1 {
			return apperrors.NewConfigError("unexpected arguments after <elements>: %v", rest[1:])
		}
		v, err := strconv.Atoi(rest[0])
		if err != nil {
			return apperrors.NewConfigError("invalid number of elements %q", rest[0])
		}
		cfg.Elements = v
	case ProgramPiParallel:
		if len(rest) > 1 {
			return apperrors.NewConfigError("unexpected arguments after [workers]: %v", rest[1:])
		}
		if len(rest) == 1 {
			v, err := strconv.Atoi(rest[0])
			if err != nil {
				return apperrors.NewConfigError("invalid number of workers %q", rest[0])
			}
			cfg.Workers = v
		}
	default:
		if len(rest) > 0 {
			return apperrors.NewConfigError("unexpected arguments: %v", rest)
		}
	}
	return nil
}

// Validate checks the semantic consistency of the configuration. N is not
// checked when ReadN is set since it is only known after reading stdin.
func (c AppConfig) Validate() error {
	if c.LogFormat != LogFormatConsole && c.LogFormat != LogFormatJSON {
		return apperrors.NewValidationError("log-format", "must be %q or %q, got %q",
			LogFormatConsole, LogFormatJSON, c.LogFormat)
	}
	switch c.Program {
	case ProgramFibonacci:
		if c.Exact && c.Elements > fibonacci.MaxExactElements {
			return apperrors.NewValidationError("elements", "must be at most %d with --exact, got %d",
				fibonacci.MaxExactElements, c.Elements)
		}
		return fibonacci.ValidateElements(c.Elements)
	case ProgramPiParallel:
		if err := parallel.ValidateWorkers(c.Workers); err != nil {
			return err
		}
		if c.Tolerance <= 0 {
			return apperrors.NewValidationError("tolerance", "must be positive, got %g", c.Tolerance)
		}
		if c.TUI && c.Quiet {
			return apperrors.NewConfigError("--tui and --quiet cannot be used together")
		}
		if c.Calibrate && (c.TUI || c.Compare) {
			return apperrors.NewConfigError("--calibrate cannot be combined with --tui or --compare")
		}
	}
	if c.ReadN {
		return nil
	}
	return pi.ValidateIntervals(c.N)
}

func printUsage(fs *flag.FlagSet, program Program, name string) {
	out := fs.Output()
	switch program {
	case ProgramFibonacci:
		fmt.Fprintf(out, "Usage: %s [flags] <elements>\n", name)
		fmt.Fprintf(out, "Example: %s 10\n", name)
	case ProgramPi:
		fmt.Fprintf(out, "Usage: %s [flags]\n", name)
		fmt.Fprintf(out, "Example: %s -n 1000000\n", name)
	case ProgramPiParallel:
		fmt.Fprintf(out, "Usage: %s [flags] [workers]\n", name)
		fmt.Fprintf(out, "Example: %s -n 1000000 4\n", name)
	}
	fmt.Fprintf(out, "\nFlags:\n")
	fs.PrintDefaults()
	fmt.Fprintf(out, "\nEnvironment variables use the %s prefix, e.g. %sN=1000.\n", EnvPrefix, EnvPrefix)
}
