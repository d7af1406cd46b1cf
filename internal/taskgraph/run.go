package taskgraph

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/vk/lakedag/internal/ctxlog"
	"github.com/vk/lakedag/internal/dagnode"
	"github.com/vk/lakedag/internal/graph"
)

// future memoizes a single node's outcome: whichever consumer resolves the
// node first runs evaluate; every later resolver — from any goroutine —
// observes the same completed outcome.
type future struct {
	once    sync.Once
	outcome dagnode.NodeOutcome
}

// Run is one lazy walk of a Graph with a fixed operation. It is built fresh
// per phase (see internal/orchestrator) and discarded once its end nodes
// have been resolved; it is not reusable across phases because a node's
// memoized outcome from one phase has no meaning in the next.
type Run struct {
	g      *graph.Graph
	op     dagnode.Op
	logger *slog.Logger

	futures map[dagnode.ID]*future

	cancelled atomic.Bool

	abortMu  sync.Mutex
	abortErr error
}

// New prepares a Run over g. op is invoked at most once per node, only for
// nodes actually reachable from the end nodes ultimately awaited.
func New(ctx context.Context, g *graph.Graph, op dagnode.Op) *Run {
	r := &Run{
		g:       g,
		op:      op,
		logger:  ctxlog.FromContext(ctx),
		futures: make(map[dagnode.ID]*future, g.Len()),
	}
	for _, n := range g.Nodes() {
		r.futures[n.ID] = &future{}
	}
	return r
}

// Cancel requests that no further node operations start. Nodes already
// running are not interrupted; nodes not yet started resolve to
// *dagnode.CancelledError. Safe to call concurrently with Await, from any
// goroutine, any number of times — only the first call has an effect.
func (r *Run) Cancel() {
	if r.cancelled.CompareAndSwap(false, true) {
		r.logger.Warn("taskgraph: run cancelled")
	}
}

// Cancelled reports whether Cancel has been called. internal/runner uses
// this to re-check for cancellation after a node has cleared the bounded
// worker pool's semaphore but before its op actually runs — a node can sit
// queued for a free slot for arbitrarily long, and Cancel must still take
// effect for it even though it already passed evaluate's own check at the
// fan-in barrier.
func (r *Run) Cancelled() bool {
	return r.cancelled.Load()
}

// Await resolves every end node of the graph in parallel and flattens the
// results into a single result-outcome vector, in end-node order.
//
// A non-nil error return means a structural problem — currently only a
// node's Op not emitting a result id that a downstream edge declared —
// aborted the whole run. That
// is distinct from ordinary per-node failure, which is represented inside
// the returned outcome vector and never surfaces as this error.
func (r *Run) Await(ctx context.Context) ([]dagnode.ResultOutcome, error) {
	ends := r.g.Ends()
	outcomes := make([]dagnode.NodeOutcome, len(ends))

	var eg errgroup.Group
	for i, id := range ends {
		i, id := i, id
		eg.Go(func() error {
			outcomes[i] = r.Resolve(ctx, id)
			return nil
		})
	}
	_ = eg.Wait() // errgroup used only for fan-out; Resolve never returns an error itself.

	if err := r.abort(); err != nil {
		return nil, err
	}

	flat := make([]dagnode.ResultOutcome, 0, len(ends))
	for _, o := range outcomes {
		flat = append(flat, dagnode.Flatten(o)...)
	}
	return flat, nil
}

// Resolve returns id's memoized outcome, computing it on first access.
// Concurrent resolvers of the same id block on the same computation rather
// than duplicating it.
func (r *Run) Resolve(ctx context.Context, id dagnode.ID) dagnode.NodeOutcome {
	f := r.futures[id]
	f.once.Do(func() {
		f.outcome = r.evaluate(ctx, id)
	})
	return f.outcome
}

func (r *Run) evaluate(ctx context.Context, id dagnode.ID) dagnode.NodeOutcome {
	n, _ := r.g.Node(id)
	edges := r.g.IncomingEdges(id)

	predecessors := make([]dagnode.NodeOutcome, len(edges))
	if len(edges) > 0 {
		var eg errgroup.Group
		for i, e := range edges {
			i, e := i, e
			eg.Go(func() error {
				predecessors[i] = r.Resolve(ctx, e.From)
				return nil
			})
		}
		_ = eg.Wait()
	}

	// Cancellation takes priority over predecessor failure: a node whose
	// predecessors already failed, in a run that has since been cancelled,
	// is reported as cancelled rather than as skipped-for-failure.
	if r.cancelled.Load() {
		r.logger.Warn("taskgraph: node skipped, run cancelled", "node_id", id)
		return dagnode.Fail[dagnode.Bundle](&dagnode.CancelledError{Node: id})
	}

	inputs := make([]dagnode.Result, 0, len(edges))
	var firstFailure error
	for i, e := range edges {
		res, err := graph.ResultOf(predecessors[i], e)
		if err != nil {
			var missing *dagnode.MissingResultError
			if errors.As(err, &missing) {
				r.setAbort(err)
				r.logger.Error("taskgraph: structural failure, aborting run", "node_id", id, "error", err)
				return dagnode.Fail[dagnode.Bundle](err)
			}
			if firstFailure == nil {
				firstFailure = err
			}
			continue
		}
		inputs = append(inputs, res)
	}

	if firstFailure != nil {
		r.logger.Warn("taskgraph: node skipped, predecessor failed", "node_id", id, "cause", firstFailure)
		return dagnode.Fail[dagnode.Bundle](&dagnode.PredecessorFailedError{Node: id, Cause: firstFailure})
	}

	r.logger.Debug("taskgraph: node running", "node_id", id)
	out, err := r.op(ctx, n, inputs)
	if err != nil {
		var cancelled *dagnode.CancelledError
		if errors.As(err, &cancelled) {
			r.logger.Warn("taskgraph: node cancelled before op ran", "node_id", id)
			return dagnode.Fail[dagnode.Bundle](cancelled)
		}
		r.logger.Error("taskgraph: node failed", "node_id", id, "error", err)
		return dagnode.Fail[dagnode.Bundle](&dagnode.OperationFailedError{Node: id, Cause: err})
	}
	r.logger.Debug("taskgraph: node succeeded", "node_id", id)
	return dagnode.Ok(dagnode.Bundle(out))
}

func (r *Run) setAbort(err error) {
	r.abortMu.Lock()
	defer r.abortMu.Unlock()
	if r.abortErr == nil {
		r.abortErr = err
	}
}

func (r *Run) abort() error {
	r.abortMu.Lock()
	defer r.abortMu.Unlock()
	return r.abortErr
}
