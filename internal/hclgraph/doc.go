// Package hclgraph loads a graph description written in HCL into the work
// units internal/orchestrator understands. A file is a sequence of
// top-level `node` blocks; each names an operation type registered in an
// internal/opregistry.Registry, the result ids it consumes and produces,
// and an `arguments` body left undecoded for that operation to interpret
// itself, since only the operation knows the shape its own arguments take.
package hclgraph
