package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic or resource error.
	ExitErrorUsage    = 1   // Indicates invalid input; shares the generic status.
	ExitErrorMismatch = 3   // Indicates a result mismatch between estimators.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for field with a formatted message.
func NewValidationError(field, format string, a ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// WorkerError reports that a worker could not produce its partial result.
// A worker failure is fatal for the whole run.
type WorkerError struct {
	// Worker is the zero-based index of the failing worker.
	Worker int
	// Cause is the underlying failure.
	Cause error
}

// Error returns a message naming the failed worker.
func (e WorkerError) Error() string {
	return fmt.Sprintf("worker %d failed: %v", e.Worker, e.Cause)
}

// Unwrap returns the underlying cause.
func (e WorkerError) Unwrap() error { return e.Cause }

// ResourceError represents a failure to acquire memory, goroutines or output
// resources required by the run.
type ResourceError struct {
	// Resource names what could not be acquired.
	Resource string
	// Cause is the underlying failure, if any.
	Cause error
}

// Error returns a formatted message describing the resource failure.
func (e ResourceError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("could not acquire %s", e.Resource)
	}
	return fmt.Sprintf("could not acquire %s: %v", e.Resource, e.Cause)
}

// Unwrap returns the underlying cause.
func (e ResourceError) Unwrap() error { return e.Cause }

// MismatchError reports that two estimators disagreed beyond the tolerance.
type MismatchError struct {
	Delta     float64
	Tolerance float64
}

// Error returns a formatted message describing the disagreement.
func (e MismatchError) Error() string {
	return fmt.Sprintf("estimates differ by %g (tolerance %g)", e.Delta, e.Tolerance)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ColorProvider supplies the escape sequences used when printing errors.
// A nil ColorProvider prints without colors.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// ExitCodeFor maps an error to the process exit status. Every error class is
// terminal for the run; only the status differs.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		mismatch   MismatchError
		configErr  ConfigError
		validation ValidationError
	)
	switch {
	case IsContextError(err):
		return ExitErrorCanceled
	case errors.As(err, &mismatch):
		return ExitErrorMismatch
	case errors.As(err, &configErr), errors.As(err, &validation):
		return ExitErrorUsage
	default:
		return ExitErrorGeneric
	}
}

// HandleError prints a description of err to out and returns the matching exit
// code. The duration, when non-zero, is reported alongside the failure.
func HandleError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	red, yellow, reset := "", "", ""
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	var (
		validation ValidationError
		config     ConfigError
		worker     WorkerError
		resource   ResourceError
	)
	switch {
	case IsContextError(err):
		fmt.Fprintf(out, "%sRun canceled:%s %v\n", yellow, reset, err)
	case errors.As(err, &validation), errors.As(err, &config):
		fmt.Fprintf(out, "%sError:%s %v\n", red, reset, err)
	case errors.As(err, &worker):
		fmt.Fprintf(out, "%sWorker failure:%s %v\n", red, reset, err)
	case errors.As(err, &resource):
		fmt.Fprintf(out, "%sResource failure:%s %v\n", red, reset, err)
	default:
		fmt.Fprintf(out, "%sError:%s %v\n", red, reset, err)
	}
	if duration > 0 {
		fmt.Fprintf(out, "Failed after %s\n", duration)
	}
	return ExitCodeFor(err)
}
