package graph

import (
	"fmt"
	"strings"
)

// Render produces a deterministic textual summary of the graph — every
// node in topological order, each followed by its incoming edges in
// declaration order — suitable for a debug log line or CLI diagnostic.
// The layout is not a wire format; it is only guaranteed stable across
// runs of the same Graph.
func (g *Graph) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "graph: %d node(s)\n", len(g.order))
	for _, id := range g.order {
		n := g.nodes[id]
		fmt.Fprintf(&b, "  node %s [%s]\n", n.ID, n.Kind)
		for _, e := range g.incoming[id] {
			fmt.Fprintf(&b, "    <- %s (result %q)\n", e.From, e.ResultID)
		}
	}
	return b.String()
}
