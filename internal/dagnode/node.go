package dagnode

import (
	"context"
	"fmt"
)

// ID is a node identity. It must be non-empty and unique within a Graph.
type ID string

// InitID is the identity of the synthetic producer that internal/orchestrator
// wires in front of any edge whose consumer input has no declared producer.
// It is reserved: user-supplied nodes may not use it.
const InitID ID = "Init"

// Kind distinguishes the synthetic Init node from ordinary user nodes. The
// scheduler core never branches on it; internal/orchestrator's node
// operation does, to answer for Init with the run's partition values
// instead of a work unit's phase function.
type Kind int

const (
	// KindUser is an ordinary node backed by a caller-supplied payload.
	KindUser Kind = iota
	// KindInit is the synthetic source node for graph-level inputs.
	KindInit
)

func (k Kind) String() string {
	if k == KindInit {
		return "init"
	}
	return "user"
}

// Node is a vertex in the graph: a stable ID plus an opaque payload. The
// scheduler never inspects Payload; it exists purely for the caller's
// operation callback to recover context about what to compute.
type Node struct {
	ID      ID
	Kind    Kind
	Payload any
}

// NewInit returns the synthetic Init node for a graph.
func NewInit() *Node {
	return &Node{ID: InitID, Kind: KindInit}
}

// Validate reports whether a node's identity is well-formed on its own
// (non-empty ID; Init reserved for KindInit). Uniqueness across a node set
// is checked by the graph builder, not here.
func (n *Node) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("dagnode: node id must not be empty")
	}
	if n.ID == InitID && n.Kind != KindInit {
		return fmt.Errorf("dagnode: node id %q is reserved for the synthetic Init node", InitID)
	}
	if n.ID != InitID && n.Kind == KindInit {
		return fmt.Errorf("dagnode: synthetic Init node must use id %q, got %q", InitID, n.ID)
	}
	return nil
}

// Op is the node operation callback described by the scheduler's external
// interface: given a node and the results its incoming edges resolved (in
// incoming-edge declaration order), produce this node's own results.
//
// Op must be safe to call concurrently from any worker; the scheduler makes
// no guarantee about which goroutine invokes it. For the synthetic Init
// node, predecessors is always empty and the callback must return one
// placeholder Result per input edge declared for Init.
type Op func(ctx context.Context, node *Node, predecessors []Result) ([]Result, error)
