// Package dagnode holds the data model shared by every layer of the
// scheduler: node identity, edges, typed results, per-node outcomes, and
// the error taxonomy a run can surface. Nothing in this package knows how
// a graph gets built or executed — internal/graph, internal/taskgraph, and
// internal/runner all import it, never the other way around.
package dagnode
