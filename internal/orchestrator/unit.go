package orchestrator

import (
	"context"

	"github.com/vk/lakedag/internal/dagnode"
)

// Phase names one of the three independent runs the orchestrator supports
// over the same Graph. Phases share no scheduler state: a work unit sees
// only whatever its upstream units returned during that same phase.
type Phase string

const (
	PhasePrepare Phase = "prepare"
	PhaseInit    Phase = "init"
	PhaseExec    Phase = "exec"
)

// PhaseFunc is one work unit's operation for a single phase. It receives
// its own node id (useful for logging without a closure capturing it) and
// its predecessor results in incoming-edge declaration order.
type PhaseFunc func(ctx context.Context, id dagnode.ID, inputs []dagnode.Result) ([]dagnode.Result, error)

// WorkUnit is a caller-supplied unit of work: a stable id, the input and
// output names it participates in, and one PhaseFunc per phase. A nil
// PhaseFunc means the unit has nothing to do in that phase: its node
// succeeds with one null placeholder result per OutputIDs entry, so units
// downstream of it still find every input they declared.
type WorkUnit struct {
	ID        dagnode.ID
	InputIDs  []string
	OutputIDs []string

	Prepare PhaseFunc
	Init    PhaseFunc
	Exec    PhaseFunc
}

func (w *WorkUnit) phaseFunc(phase Phase) PhaseFunc {
	switch phase {
	case PhasePrepare:
		return w.Prepare
	case PhaseInit:
		return w.Init
	case PhaseExec:
		return w.Exec
	default:
		return nil
	}
}
