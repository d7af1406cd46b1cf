// Package taskgraph turns a built *graph.Graph plus a node operation into
// a set of memoized,
// recursively-awaited futures: resolving any node pulls its predecessors in
// parallel, resolves each one at most once no matter how many consumers
// share it, and folds predecessor failures and run cancellation into the
// node's own outcome instead of ever panicking or hanging.
package taskgraph
