package dagnode

import (
	"fmt"
	"strings"
)

// CycleDetectedError is raised synchronously from graph construction when
// Kahn-style source-peeling stalls with nodes remaining. Remaining
// holds every node id that was still unresolved at the point of failure,
// in the order the nodes were passed to the graph builder.
type CycleDetectedError struct {
	Remaining []ID
}

func (e *CycleDetectedError) Error() string {
	ids := make([]string, len(e.Remaining))
	for i, id := range e.Remaining {
		ids[i] = string(id)
	}
	return fmt.Sprintf("dagnode: cycle detected, involving node(s): %s", strings.Join(ids, ", "))
}

// DuplicateEdgeError is raised when two edges share the same
// (from, to, resultId) triple.
type DuplicateEdgeError struct {
	Edge Edge
}

func (e *DuplicateEdgeError) Error() string {
	return fmt.Sprintf("dagnode: duplicate edge %s -> %s (result %q)", e.Edge.From, e.Edge.To, e.Edge.ResultID)
}

// MissingResultError is a structural/programming error: a producer
// completed successfully but never emitted the result a downstream edge
// declared it wanted. It aborts the whole run rather than becoming a
// per-node failure.
type MissingResultError struct {
	Producer ID
	ResultID string
}

func (e *MissingResultError) Error() string {
	return fmt.Sprintf("dagnode: node %s did not produce declared result %q", e.Producer, e.ResultID)
}

// OperationFailedError wraps the error an Op returned for Node.
type OperationFailedError struct {
	Node  ID
	Cause error
}

func (e *OperationFailedError) Error() string {
	return fmt.Sprintf("dagnode: node %s: operation failed: %v", e.Node, e.Cause)
}

func (e *OperationFailedError) Unwrap() error { return e.Cause }

// PredecessorFailedError attaches to every node downstream of a failure.
// Cause is the first predecessor failure encountered in incoming-edge
// declaration order; later causes on the same node are dropped from the
// chain. Root, reached by repeatedly unwrapping, is always an
// *OperationFailedError or a *CancelledError.
type PredecessorFailedError struct {
	Node  ID
	Cause error
}

func (e *PredecessorFailedError) Error() string {
	return fmt.Sprintf("dagnode: node %s: predecessor failed: %v", e.Node, e.Cause)
}

func (e *PredecessorFailedError) Unwrap() error { return e.Cause }

// DuplicateOutputError is raised by internal/orchestrator when two work
// units declare the same output id — every declared output must be
// unique across units, since edge derivation resolves an input by looking
// up its single producer.
type DuplicateOutputError struct {
	OutputID string
	First    ID
	Second   ID
}

func (e *DuplicateOutputError) Error() string {
	return fmt.Sprintf("dagnode: output %q is declared by both %s and %s", e.OutputID, e.First, e.Second)
}

// CancelledError attaches to a node whose run-scoped cancellation flag was
// already set when the node reached its fan-in barrier. Nodes already past
// the barrier and running their Op are not interrupted.
type CancelledError struct {
	Node ID
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("dagnode: node %s: cancelled", e.Node)
}
