package hclgraph

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/lakedag/internal/ctxlog"
	"github.com/vk/lakedag/internal/dagnode"
	"github.com/vk/lakedag/internal/opregistry"
	"github.com/vk/lakedag/internal/orchestrator"
)

// Load parses path as an HCL graph description and resolves every node
// block's operation type against reg, returning one orchestrator.WorkUnit
// per block. It fails closed: an unregistered operation type, a malformed
// block, or a duplicate node id is a load error, never a partially built
// work-unit set.
func Load(ctx context.Context, path string, reg *opregistry.Registry) ([]*orchestrator.WorkUnit, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("hclgraph: loading graph description", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("hclgraph: parsing %s: %w", path, diags)
	}

	var f file
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &f); diags.HasErrors() {
		return nil, fmt.Errorf("hclgraph: decoding %s: %w", path, diags)
	}

	seen := make(map[string]struct{}, len(f.Nodes))
	units := make([]*orchestrator.WorkUnit, 0, len(f.Nodes))
	for _, nb := range f.Nodes {
		id := fmt.Sprintf("%s.%s", nb.Type, nb.Name)
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("hclgraph: duplicate node %q in %s", id, path)
		}
		seen[id] = struct{}{}

		op, ok := reg.Lookup(nb.Type)
		if !ok {
			return nil, fmt.Errorf("hclgraph: node %q: unregistered operation type %q", id, nb.Type)
		}

		logger.Debug("hclgraph: loaded node", "id", id, "inputs", nb.Inputs, "outputs", nb.Outputs)
		units = append(units, &orchestrator.WorkUnit{
			ID:        dagnode.ID(id),
			InputIDs:  nb.Inputs,
			OutputIDs: nb.Outputs,
			Prepare:   adapt(op.Prepare, nb.Remain),
			Init:      adapt(op.Init, nb.Remain),
			Exec:      adapt(op.Exec, nb.Remain),
		})
	}

	logger.Debug("hclgraph: graph description loaded", "node_count", len(units))
	return units, nil
}

// adapt binds an operation's phase function to this node's undecoded
// arguments body, or returns nil if the operation has nothing to do in this
// phase — that omission is legitimate, not an error, since not every
// operation needs work in every phase.
func adapt(fn opregistry.Func, args hcl.Body) orchestrator.PhaseFunc {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context, _ dagnode.ID, predecessors []dagnode.Result) ([]dagnode.Result, error) {
		return fn(ctx, args, predecessors)
	}
}
