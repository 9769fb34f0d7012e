//go:build !unix

package metrics

// ReadUsage is not supported on this platform.
func ReadUsage() (Usage, bool) { return Usage{}, false }
