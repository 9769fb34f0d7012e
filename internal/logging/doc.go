// Package logging provides a unified logging interface for the threadcalc
// programs. It abstracts the underlying logging implementation (zerolog by
// default), allowing consistent structured logging across the partitioner,
// the coordinator and the CLIs while keeping standard output free for results.
package logging
