// Package runner is a bounded-parallelism worker pool. It wraps a node
// operation with a fixed-size semaphore so that no more than parallelism
// operations run at once, starts a taskgraph.Run over
// that wrapped operation, and gives the caller a handle to wait for the
// phase's outcome vector or to cancel the run early.
package runner
