package orchestrator

import (
	"context"
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/lakedag/internal/ctxlog"
	"github.com/vk/lakedag/internal/dagnode"
	"github.com/vk/lakedag/internal/graph"
	"github.com/vk/lakedag/internal/runner"
)

// Orchestrator is the built, immutable driver for one set of work units: one
// Graph, reused unmodified across however many phases the caller runs.
type Orchestrator struct {
	g           *graph.Graph
	units       map[dagnode.ID]*WorkUnit
	initBundle  dagnode.Bundle
	runID       string
	parallelism int
}

// New derives the edge set from units' declared inputs/outputs, builds the
// Graph, and resolves the synthetic Init node's output bundle from
// partitionValues: any input id with no declared producer among units must
// have a matching entry in partitionValues, supplied once for the whole
// run and reused, unchanged, across every phase.
func New(ctx context.Context, units []*WorkUnit, runID string, partitionValues map[string]cty.Value, parallelism int) (*Orchestrator, error) {
	logger := ctxlog.FromContext(ctx).With("run_id", runID)
	logger.Debug("orchestrator: building graph", "unit_count", len(units))

	byOutput := make(map[string]dagnode.ID, len(units))
	for _, u := range units {
		for _, out := range u.OutputIDs {
			if prev, dup := byOutput[out]; dup {
				return nil, &dagnode.DuplicateOutputError{OutputID: out, First: prev, Second: u.ID}
			}
			byOutput[out] = u.ID
		}
	}

	nodes := make([]*dagnode.Node, 0, len(units)+1)
	nodes = append(nodes, dagnode.NewInit())
	unitByID := make(map[dagnode.ID]*WorkUnit, len(units))
	for _, u := range units {
		nodes = append(nodes, &dagnode.Node{ID: u.ID, Kind: dagnode.KindUser, Payload: u})
		unitByID[u.ID] = u
	}

	var edges []dagnode.Edge
	initInputs := make(map[string]struct{})
	for _, u := range units {
		for _, in := range u.InputIDs {
			from := dagnode.InitID
			if producer, ok := byOutput[in]; ok {
				from = producer
			} else {
				initInputs[in] = struct{}{}
			}
			edges = append(edges, dagnode.Edge{From: from, To: u.ID, ResultID: in})
		}
	}

	ids := make([]string, 0, len(initInputs))
	for id := range initInputs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	initBundle := make(dagnode.Bundle, 0, len(ids))
	for _, id := range ids {
		v, ok := partitionValues[id]
		if !ok {
			return nil, fmt.Errorf("orchestrator: graph-level input %q has no producer and no partition value was supplied", id)
		}
		initBundle = append(initBundle, dagnode.Result{ID: id, Value: v})
	}

	g, err := graph.Build(ctx, nodes, edges)
	if err != nil {
		return nil, err
	}
	logger.Debug("orchestrator: graph built", "starts", g.Starts(), "ends", g.Ends())

	return &Orchestrator{
		g:           g,
		units:       unitByID,
		initBundle:  initBundle,
		runID:       runID,
		parallelism: parallelism,
	}, nil
}

// PhaseResult separates a phase's root-cause failures from failures that
// are purely symptoms of an upstream failure or of cancellation, so a
// single broken node doesn't drown the caller in redundant error lines.
type PhaseResult struct {
	Phase Phase

	// Outcomes is the full flattened outcome vector, in end-node order.
	Outcomes []dagnode.ResultOutcome

	// RootFailures maps a failed node id to the error its own operation
	// returned.
	RootFailures map[dagnode.ID]error

	// SkippedFailures maps a node id skipped due to a predecessor failure
	// or cancellation to that skip's immediate cause.
	SkippedFailures map[dagnode.ID]error
}

// RunPhase evaluates every work unit's PhaseFunc for phase, over the one
// Graph built at construction. Returns a fresh Execution-backed run each
// time: no state survives from one phase to the next except what a work
// unit chose to persist for itself.
func (o *Orchestrator) RunPhase(ctx context.Context, phase Phase) (*PhaseResult, error) {
	logger := ctxlog.FromContext(ctx).With("run_id", o.runID, "phase", phase)
	logger.Info("▶️ Starting phase")

	op := func(ctx context.Context, n *dagnode.Node, predecessors []dagnode.Result) ([]dagnode.Result, error) {
		if n.Kind == dagnode.KindInit {
			return o.initBundle, nil
		}
		unit := n.Payload.(*WorkUnit)
		fn := unit.phaseFunc(phase)
		if fn == nil {
			placeholders := make([]dagnode.Result, len(unit.OutputIDs))
			for i, out := range unit.OutputIDs {
				placeholders[i] = dagnode.Result{ID: out, Value: cty.NullVal(cty.DynamicPseudoType)}
			}
			return placeholders, nil
		}
		return fn(ctx, n.ID, predecessors)
	}

	rn := runner.New(o.parallelism)
	ex := rn.Start(ctx, o.g, op)
	outcomes, err := ex.Wait(ctx)
	if err != nil {
		logger.Error("phase aborted by structural failure", "error", err)
		return nil, err
	}

	result := o.classify(phase, outcomes)
	if len(outcomes) == 0 {
		logger.Info("phase produced no outcomes")
	} else {
		succeeded := 0
		for _, oc := range outcomes {
			if oc.Succeeded() {
				succeeded++
			}
		}
		logger.Info("✅ Finished phase",
			"succeeded", succeeded,
			"root_failures", len(result.RootFailures),
			"skipped", len(result.SkippedFailures))
	}
	return result, nil
}

// classify walks the flattened outcome vector back to per-node failures. It
// only inspects failures whose originating node it can identify — that is
// every failure in this scheduler, since every non-success ResultOutcome
// wraps one of the typed errors carrying a Node field.
func (o *Orchestrator) classify(phase Phase, outcomes []dagnode.ResultOutcome) *PhaseResult {
	result := &PhaseResult{
		Phase:           phase,
		Outcomes:        outcomes,
		RootFailures:    make(map[dagnode.ID]error),
		SkippedFailures: make(map[dagnode.ID]error),
	}

	for _, outcome := range outcomes {
		if outcome.Succeeded() {
			continue
		}
		switch e := outcome.Err.(type) {
		case *dagnode.OperationFailedError:
			result.RootFailures[e.Node] = e.Cause
		case *dagnode.PredecessorFailedError:
			// Walk the cause chain so every skipped node on it, and the
			// upstream node whose own operation failed, are recorded too.
			var err error = e
			for pf, ok := err.(*dagnode.PredecessorFailedError); ok; pf, ok = err.(*dagnode.PredecessorFailedError) {
				result.SkippedFailures[pf.Node] = pf.Cause
				err = pf.Cause
			}
			if root, ok := err.(*dagnode.OperationFailedError); ok {
				result.RootFailures[root.Node] = root.Cause
			}
		case *dagnode.CancelledError:
			result.SkippedFailures[e.Node] = outcome.Err
		default:
			// MissingResult and friends never reach here — Await already
			// turned them into a run-aborting error above.
		}
	}
	return result
}
