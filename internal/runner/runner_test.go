package runner_test

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/lakedag/internal/ctxlog"
	"github.com/vk/lakedag/internal/dagnode"
	"github.com/vk/lakedag/internal/graph"
	"github.com/vk/lakedag/internal/runner"
)

func testCtx() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

func userNode(id dagnode.ID) *dagnode.Node {
	return &dagnode.Node{ID: id, Kind: dagnode.KindUser}
}

func TestRunner_LimitsConcurrentOperations(t *testing.T) {
	nodes := make([]*dagnode.Node, 6)
	for i := range nodes {
		nodes[i] = userNode(dagnode.ID(rune('A' + i)))
	}
	g, err := graph.Build(testCtx(), nodes, nil)
	require.NoError(t, err)

	var inFlight, maxSeen int64
	op := func(ctx context.Context, n *dagnode.Node, _ []dagnode.Result) ([]dagnode.Result, error) {
		cur := atomic.AddInt64(&inFlight, 1)
		defer atomic.AddInt64(&inFlight, -1)
		for {
			seen := atomic.LoadInt64(&maxSeen)
			if cur <= seen || atomic.CompareAndSwapInt64(&maxSeen, seen, cur) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		return []dagnode.Result{{ID: "out", Value: cty.True}}, nil
	}

	rn := runner.New(2)
	ex := rn.Start(testCtx(), g, op)
	outcomes, err := ex.Wait(testCtx())
	require.NoError(t, err)
	require.Len(t, outcomes, 6)
	assert.LessOrEqual(t, atomic.LoadInt64(&maxSeen), int64(2))
}

func TestRunner_CancelStopsUnstartedWork(t *testing.T) {
	nodes := []*dagnode.Node{userNode("A"), userNode("B"), userNode("C")}
	edges := []dagnode.Edge{
		{From: "A", To: "B", ResultID: "out"},
		{From: "A", To: "C", ResultID: "out"},
	}
	g, err := graph.Build(testCtx(), nodes, edges)
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	op := func(_ context.Context, n *dagnode.Node, _ []dagnode.Result) ([]dagnode.Result, error) {
		if n.ID == "A" {
			close(started)
			<-release
		}
		return []dagnode.Result{{ID: "out", Value: cty.True}}, nil
	}

	rn := runner.New(1)
	ex := rn.Start(testCtx(), g, op)

	<-started
	ex.Cancel()
	close(release)

	outcomes, err := ex.Wait(testCtx())
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		require.False(t, o.Succeeded())
		var cancelled *dagnode.CancelledError
		require.ErrorAs(t, o.Err, &cancelled)
	}
}

func TestRunner_CancelWhileQueuedForWorkerSlotDoesNotRunOp(t *testing.T) {
	// A and B are independent (no edges), so both reach the worker pool
	// immediately, in no fixed order; with parallelism 1, whichever takes the
	// only slot first holds it, and the other must queue on the semaphore.
	nodes := []*dagnode.Node{userNode("A"), userNode("B")}
	g, err := graph.Build(testCtx(), nodes, nil)
	require.NoError(t, err)

	holderStarted := make(chan struct{})
	release := make(chan struct{})
	var slotTaken, queuedRanForReal atomic.Bool
	var holder dagnode.ID
	op := func(_ context.Context, n *dagnode.Node, _ []dagnode.Result) ([]dagnode.Result, error) {
		if slotTaken.CompareAndSwap(false, true) {
			holder = n.ID
			close(holderStarted)
			<-release
			return []dagnode.Result{{ID: "out", Value: cty.True}}, nil
		}
		queuedRanForReal.Store(true)
		return []dagnode.Result{{ID: "out", Value: cty.True}}, nil
	}

	rn := runner.New(1)
	ex := rn.Start(testCtx(), g, op)

	<-holderStarted
	queued := dagnode.ID("B")
	if holder == "B" {
		queued = "A"
	}
	// give the queued node time to actually queue on the semaphore the holder
	// is holding, rather than cancelling before it ever gets scheduled at all.
	time.Sleep(10 * time.Millisecond)
	ex.Cancel()
	close(release)

	outcomes, err := ex.Wait(testCtx())
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.False(t, queuedRanForReal.Load(), "the queued node must not run its real op once cancelled while queued for a worker slot")

	var sawCancelledQueued bool
	for _, o := range outcomes {
		if o.Succeeded() {
			continue
		}
		var cancelled *dagnode.CancelledError
		if assert.ErrorAs(t, o.Err, &cancelled) && cancelled.Node == queued {
			sawCancelledQueued = true
		}
	}
	assert.True(t, sawCancelledQueued, "expected the queued node's outcome to be *dagnode.CancelledError, not an operation failure")
}

func TestRunner_ContextCancellationWhileQueuedForWorkerSlotIsCancelledNotFailed(t *testing.T) {
	// Independent nodes so B is queued directly on the semaphore rather
	// than blocked at the fan-in barrier waiting on a predecessor.
	nodes := []*dagnode.Node{userNode("A"), userNode("B")}
	g, err := graph.Build(testCtx(), nodes, nil)
	require.NoError(t, err)

	aStarted := make(chan struct{})
	release := make(chan struct{})
	op := func(_ context.Context, n *dagnode.Node, _ []dagnode.Result) ([]dagnode.Result, error) {
		if n.ID == "A" {
			close(aStarted)
			<-release
		}
		return []dagnode.Result{{ID: "out", Value: cty.True}}, nil
	}

	ctx, cancel := context.WithCancel(testCtx())
	rn := runner.New(1)
	ex := rn.Start(ctx, g, op)

	<-aStarted
	time.Sleep(10 * time.Millisecond)
	cancel()
	close(release)

	outcomes, err := ex.Wait(testCtx())
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	for _, o := range outcomes {
		if o.Succeeded() {
			continue
		}
		var cancelled *dagnode.CancelledError
		assert.ErrorAs(t, o.Err, &cancelled, "a node cancelled while queued for a worker slot must resolve to *dagnode.CancelledError, not *dagnode.OperationFailedError")
	}
}

func TestRunner_ContextCancellationStopsRun(t *testing.T) {
	nodes := []*dagnode.Node{userNode("A"), userNode("B")}
	edges := []dagnode.Edge{{From: "A", To: "B", ResultID: "out"}}
	g, err := graph.Build(testCtx(), nodes, edges)
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	op := func(_ context.Context, n *dagnode.Node, _ []dagnode.Result) ([]dagnode.Result, error) {
		if n.ID == "A" {
			close(started)
			<-release
		}
		return []dagnode.Result{{ID: "out", Value: cty.True}}, nil
	}

	ctx, cancel := context.WithCancel(testCtx())
	rn := runner.New(1)
	ex := rn.Start(ctx, g, op)

	<-started
	cancel()
	close(release)

	outcomes, err := ex.Wait(testCtx())
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.False(t, outcomes[0].Succeeded())
}
