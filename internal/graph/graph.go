package graph

import "github.com/vk/lakedag/internal/dagnode"

// Graph is the immutable product of Build: a topologically sorted node
// sequence plus an incoming-edges index. Every field is read-only after
// construction.
type Graph struct {
	order    []dagnode.ID
	nodes    map[dagnode.ID]*dagnode.Node
	incoming map[dagnode.ID][]dagnode.Edge
	starts   []dagnode.ID
	ends     []dagnode.ID
}

// Nodes returns every node in topological order: for any edge (f,t,_) in
// the graph, f appears before t in this slice.
func (g *Graph) Nodes() []*dagnode.Node {
	out := make([]*dagnode.Node, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}

// Node looks up a single node by id.
func (g *Graph) Node(id dagnode.ID) (*dagnode.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// IncomingEdges returns id's incoming edges in declaration order. Every
// node has an entry, possibly empty.
func (g *Graph) IncomingEdges(id dagnode.ID) []dagnode.Edge {
	return g.incoming[id]
}

// Starts returns the ids of nodes with no incoming edges.
func (g *Graph) Starts() []dagnode.ID {
	return append([]dagnode.ID(nil), g.starts...)
}

// Ends returns the ids of nodes with no outgoing edges. internal/runner
// awaits exactly these nodes' computations to determine when a phase run
// is complete.
func (g *Graph) Ends() []dagnode.ID {
	return append([]dagnode.ID(nil), g.ends...)
}

// Len reports the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}
