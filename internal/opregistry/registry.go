package opregistry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/lakedag/internal/dagnode"
)

// Operation is the compiled Go implementation an HCL node block refers to by
// type name. Any phase left nil means the operation has nothing to do
// during that phase: its node produces one null placeholder result per
// declared output and moves on, rather than the orchestrator treating a
// missing phase as an error.
type Operation struct {
	Prepare Func
	Init    Func
	Exec    Func
}

// Func is a single phase of an Operation. args carries the node's decoded
// HCL arguments block (see internal/hclgraph); it is opaque to the
// scheduler and meaningful only to this specific operation's implementation.
type Func func(ctx context.Context, args any, predecessors []dagnode.Result) ([]dagnode.Result, error)

// Registry maps operation type names to their compiled implementation. It
// is built once at process startup and read-only thereafter.
type Registry struct {
	operations map[string]*Operation
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{operations: make(map[string]*Operation)}
}

// Register adds an operation under name. Registering the same name twice is
// a wiring bug, not a runtime condition: it panics immediately at startup
// rather than silently letting the second registration win.
func (r *Registry) Register(name string, op *Operation) {
	if _, exists := r.operations[name]; exists {
		panic(fmt.Sprintf("opregistry: operation %q already registered", name))
	}
	slog.Debug("opregistry: registering operation", "name", name)
	r.operations[name] = op
}

// Lookup returns the operation registered under name, if any.
func (r *Registry) Lookup(name string) (*Operation, bool) {
	op, ok := r.operations[name]
	return op, ok
}
