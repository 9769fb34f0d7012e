// Package parallel implements fixed-partition parallel reduction.
//
// Reduce splits [0, n) into k chunks, runs one goroutine per chunk, waits for
// every goroutine at an unconditional join-barrier and then sums the k partial
// results in ascending worker order. Each worker writes only its own result
// slot and the coordinator reads the slots only after the barrier, so no locks
// or atomics are involved. There is no work queue, no work stealing and no
// cancellation of running workers.
package parallel
