// Package graph builds and queries the validated dependency graph the rest
// of the scheduler runs over.
//
// # Why Graph Exists
//
// Everything downstream — the lazy task graph in internal/taskgraph and the
// worker pool in internal/runner — wants to walk nodes in an order where a
// node's predecessors are always already known, and wants a single place to
// ask "does this edge's declared result actually exist". Graph answers both
// questions once, up front, so the concurrent layers never have to.
//
// # Responsibilities
//
//   - Validate that a node/edge set has no cycles and no duplicate edges.
//   - Produce a deterministic topological order by repeated source-peeling
//     (Kahn-style), grouping nodes into rounds rather than a single FIFO,
//     so the front of any round preserves the caller's original node order.
//   - Index each node's incoming edges in declaration order, so consumers
//     that fan in from several producers see a stable, repeatable order.
//   - Resolve a producer's completed output bundle against a single edge's
//     declared resultId (ResultOf), the one place a MissingResult
//     structural error can originate.
//
// # Lifecycle
//
// A Graph is built once from a node/edge set and is immutable afterward.
// internal/orchestrator builds one Graph per run and reuses it, unmodified,
// across every phase (prepare, init, exec).
package graph
