package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/lakedag/internal/ctxlog"
	"github.com/vk/lakedag/internal/hclgraph"
	"github.com/vk/lakedag/internal/opregistry"
	"github.com/vk/lakedag/internal/orchestrator"
)

// App encapsulates one CLI invocation's dependencies: its logger, the
// operations registered for this run, and the work units loaded from the
// configured graph description.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	units  []*orchestrator.WorkUnit
}

// NewApp builds a Registry from modules (coreModules if none are given),
// loads cfg.GraphPath against it, and returns a ready-to-run App. A failure
// to load the graph description is a fatal startup error, so NewApp panics
// on it — there is no sensible partially-started App to return.
func NewApp(outW io.Writer, cfg *Config, modules ...func(*opregistry.Registry)) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("logger configured")

	reg := opregistry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, register := range modules {
		register(reg)
	}
	logger.Debug("node operations registered", "count", len(modules))

	units, err := hclgraph.Load(ctx, cfg.GraphPath, reg)
	if err != nil {
		panic(fmt.Errorf("failed to load graph description: %w", err))
	}
	logger.Debug("graph description loaded", "unit_count", len(units))

	return &App{outW: outW, logger: logger, units: units}
}
