package runner

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/vk/lakedag/internal/ctxlog"
	"github.com/vk/lakedag/internal/dagnode"
	"github.com/vk/lakedag/internal/graph"
	"github.com/vk/lakedag/internal/taskgraph"
)

// Runner owns the worker-pool policy for one phase run: a fixed number of
// node operations may be in flight at once, regardless of how much of the
// graph is otherwise ready to go. Runner itself is stateless and reusable
// across phases; each Start call builds its own semaphore and taskgraph.Run.
type Runner struct {
	parallelism int64
}

// New returns a Runner that never runs more than parallelism node
// operations concurrently. parallelism <= 0 is treated as 1.
func New(parallelism int) *Runner {
	if parallelism <= 0 {
		parallelism = 1
	}
	return &Runner{parallelism: int64(parallelism)}
}

// Execution is one in-flight phase run: the caller can Cancel it from any
// goroutine, and eventually must Wait for its outcome vector.
type Execution struct {
	run  *taskgraph.Run
	done chan struct{}

	outcomes []dagnode.ResultOutcome
	err      error
}

// Start begins evaluating g's end nodes under op, gated to r's parallelism.
// The returned Execution is already running in the background; ctx
// cancellation is mirrored into the run's own cancellation flag, and so is
// an explicit call to Execution.Cancel.
func (r *Runner) Start(ctx context.Context, g *graph.Graph, op dagnode.Op) *Execution {
	sem := semaphore.NewWeighted(r.parallelism)

	// run is assigned below, before bounded is ever invoked (taskgraph.New
	// never calls op synchronously) — the closure only reads it once the
	// background goroutine starts resolving nodes.
	var run *taskgraph.Run
	bounded := func(ctx context.Context, n *dagnode.Node, predecessors []dagnode.Result) ([]dagnode.Result, error) {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, &dagnode.CancelledError{Node: n.ID}
		}
		defer sem.Release(1)

		// A node can sit queued on the semaphore for as long as every slot
		// stays busy; Cancel may have been requested at any point during
		// that wait, so it must be re-checked here rather than trusting the
		// check evaluate already made before this node reached the pool.
		if run.Cancelled() {
			return nil, &dagnode.CancelledError{Node: n.ID}
		}
		return op(ctx, n, predecessors)
	}

	run = taskgraph.New(ctx, g, bounded)
	ex := &Execution{run: run, done: make(chan struct{})}

	logger := ctxlog.FromContext(ctx)
	go func() {
		defer close(ex.done)
		ex.outcomes, ex.err = run.Await(ctx)
	}()
	go func() {
		select {
		case <-ctx.Done():
			logger.Warn("runner: context cancelled, cancelling run")
			run.Cancel()
		case <-ex.done:
		}
	}()

	return ex
}

// Cancel requests early termination. It has no effect on an operation whose
// op has already been invoked; every other node — including one already
// queued for a worker-pool slot — resolves to *dagnode.CancelledError.
func (ex *Execution) Cancel() {
	ex.run.Cancel()
}

// Wait blocks, with no timeout of its own, until every end node has
// resolved, then returns the flattened outcome vector.
//
// A non-nil error return means a structural failure aborted the whole run;
// the outcome vector is not meaningful in that case.
func (ex *Execution) Wait(ctx context.Context) ([]dagnode.ResultOutcome, error) {
	select {
	case <-ex.done:
		return ex.outcomes, ex.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
