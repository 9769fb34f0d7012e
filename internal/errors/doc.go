// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// validation, worker and resource failures) and for carrying the underlying cause.
//
// Every error class is terminal for the run. HandleError prints the failure and
// ExitCodeFor maps it to the process exit status.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Error types that carry a cause implement Unwrap() to support errors.Is() and errors.As().
package apperrors
