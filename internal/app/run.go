package app

import (
	"context"
	"fmt"

	"github.com/vk/lakedag/internal/ctxlog"
	"github.com/vk/lakedag/internal/orchestrator"
)

// Run builds one Orchestrator over the App's loaded work units and drives
// its exec phase to completion, printing a phase summary. It returns an
// error only for a structural failure (cycle, missing result, duplicate
// output) or when the phase produced at least one root-cause failure — a
// caller-visible non-zero exit condition.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("app run started", "unit_count", len(a.units))

	if len(a.units) == 0 {
		a.logger.Warn("no nodes found in graph, run not required")
		return nil
	}

	orc, err := orchestrator.New(ctx, a.units, "cli-run", nil, cfg.Parallelism)
	if err != nil {
		return fmt.Errorf("failed to build orchestrator: %w", err)
	}

	a.logger.Info("🚀 Starting run")
	result, err := orc.RunPhase(ctx, orchestrator.PhaseExec)
	if err != nil {
		return fmt.Errorf("exec phase aborted: %w", err)
	}
	a.logger.Info("🏁 Run finished")

	for id, cause := range result.RootFailures {
		fmt.Fprintf(a.outW, "FAILED  %s: %v\n", id, cause)
	}
	for id, cause := range result.SkippedFailures {
		fmt.Fprintf(a.outW, "SKIPPED %s: %v\n", id, cause)
	}

	if len(result.RootFailures) > 0 {
		return fmt.Errorf("run finished with %d root failure(s)", len(result.RootFailures))
	}
	return nil
}
