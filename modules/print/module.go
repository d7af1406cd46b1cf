// Package print implements the "print" node operation: it prints every
// predecessor result it receives to standard output, sorted by result id,
// and produces nothing of its own, making it
// useful as a terminal node for inspecting a run's outcome from the CLI.
package print

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/lakedag/internal/dagnode"
	"github.com/vk/lakedag/internal/dagvalue"
	"github.com/vk/lakedag/internal/opregistry"
)

// Register wires this package's operation into reg under the name "print".
func Register(reg *opregistry.Registry) {
	reg.Register("print", &opregistry.Operation{Exec: exec})
}

func exec(_ context.Context, _ any, predecessors []dagnode.Result) ([]dagnode.Result, error) {
	slog.Info("print: rendering predecessor results", "count", len(predecessors))

	if len(predecessors) == 0 {
		fmt.Println("      (empty)")
		return nil, nil
	}

	sorted := make([]dagnode.Result, len(predecessors))
	copy(sorted, predecessors)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, r := range sorted {
		fmt.Printf("      %s = %v\n", r.ID, dagvalue.ForLog(r.Value))
	}

	return nil, nil
}
