package graph

import (
	"context"
	"fmt"

	"github.com/vk/lakedag/internal/ctxlog"
	"github.com/vk/lakedag/internal/dagnode"
)

// Build constructs a validated, topologically sorted Graph from a node and
// edge set. It fails with *dagnode.CycleDetectedError or
// *dagnode.DuplicateEdgeError rather than ever returning a graph with a
// cycle or a duplicate edge in it.
func Build(ctx context.Context, nodes []*dagnode.Node, edges []dagnode.Edge) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("graph.Build: starting", "node_count", len(nodes), "edge_count", len(edges))

	nodeOrder := make([]dagnode.ID, 0, len(nodes))
	byID := make(map[dagnode.ID]*dagnode.Node, len(nodes))
	for _, n := range nodes {
		if err := n.Validate(); err != nil {
			return nil, err
		}
		if _, exists := byID[n.ID]; exists {
			return nil, fmt.Errorf("graph: duplicate node id %q", n.ID)
		}
		byID[n.ID] = n
		nodeOrder = append(nodeOrder, n.ID)
	}

	seenEdges := make(map[dagnode.Edge]struct{}, len(edges))
	incoming := make(map[dagnode.ID][]dagnode.Edge, len(nodes))
	depSet := make(map[dagnode.ID]map[dagnode.ID]struct{}, len(nodes))
	for _, id := range nodeOrder {
		incoming[id] = []dagnode.Edge{}
		depSet[id] = map[dagnode.ID]struct{}{}
	}

	for _, e := range edges {
		if _, ok := byID[e.From]; !ok {
			return nil, fmt.Errorf("graph: edge %s->%s(%s): unknown source node %q", e.From, e.To, e.ResultID, e.From)
		}
		if _, ok := byID[e.To]; !ok {
			return nil, fmt.Errorf("graph: edge %s->%s(%s): unknown destination node %q", e.From, e.To, e.ResultID, e.To)
		}
		if _, dup := seenEdges[e]; dup {
			return nil, &dagnode.DuplicateEdgeError{Edge: e}
		}
		seenEdges[e] = struct{}{}

		if e.From == e.To {
			return nil, &dagnode.CycleDetectedError{Remaining: []dagnode.ID{e.From}}
		}

		incoming[e.To] = append(incoming[e.To], e)
		depSet[e.To][e.From] = struct{}{}
	}

	order, err := topoSort(nodeOrder, depSet)
	if err != nil {
		return nil, err
	}
	logger.Debug("graph.Build: topological sort complete", "order", order)

	starts := make([]dagnode.ID, 0)
	ends := make([]dagnode.ID, 0)
	outDegree := make(map[dagnode.ID]int, len(nodeOrder))
	for _, id := range nodeOrder {
		if len(incoming[id]) == 0 {
			starts = append(starts, id)
		}
	}
	for _, edgeList := range incoming {
		for _, e := range edgeList {
			outDegree[e.From]++
		}
	}
	for _, id := range nodeOrder {
		if outDegree[id] == 0 {
			ends = append(ends, id)
		}
	}

	g := &Graph{
		order:    order,
		nodes:    byID,
		incoming: incoming,
		starts:   starts,
		ends:     ends,
	}
	logger.Debug("graph.Build: done", "starts", starts, "ends", ends)
	return g, nil
}

// topoSort implements a round-based, Kahn-style source-peeling algorithm:
// at each step the "front" is every remaining node whose
// predecessor set (restricted to still-remaining nodes) is empty. The
// front is appended to the output in the caller's original node order, then
// removed from every remaining node's predecessor set, and the process
// repeats. If a round produces an empty front while nodes remain, the
// remaining ids form (at least) one cycle.
func topoSort(nodeOrder []dagnode.ID, depSet map[dagnode.ID]map[dagnode.ID]struct{}) ([]dagnode.ID, error) {
	remaining := append([]dagnode.ID(nil), nodeOrder...)
	work := make(map[dagnode.ID]map[dagnode.ID]struct{}, len(depSet))
	for id, preds := range depSet {
		copied := make(map[dagnode.ID]struct{}, len(preds))
		for p := range preds {
			copied[p] = struct{}{}
		}
		work[id] = copied
	}

	sorted := make([]dagnode.ID, 0, len(nodeOrder))
	for len(work) > 0 {
		front := make([]dagnode.ID, 0)
		frontSet := make(map[dagnode.ID]struct{})
		for _, id := range remaining {
			if _, ok := work[id]; !ok {
				continue
			}
			if len(work[id]) == 0 {
				front = append(front, id)
				frontSet[id] = struct{}{}
			}
		}

		if len(front) == 0 {
			rem := make([]dagnode.ID, 0, len(work))
			for _, id := range remaining {
				if _, ok := work[id]; ok {
					rem = append(rem, id)
				}
			}
			return nil, &dagnode.CycleDetectedError{Remaining: rem}
		}

		sorted = append(sorted, front...)

		next := remaining[:0:0]
		for _, id := range remaining {
			if _, isFront := frontSet[id]; !isFront {
				next = append(next, id)
			}
		}
		remaining = next

		for _, id := range front {
			delete(work, id)
		}
		for _, preds := range work {
			for id := range frontSet {
				delete(preds, id)
			}
		}
	}

	return sorted, nil
}
