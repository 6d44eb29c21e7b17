// Package app wires configuration, registry, executor and reporting into a
// runnable job-runner instance.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/ashkalikava/net-parser/internal/command"
	"github.com/ashkalikava/net-parser/internal/ctxlog"
	"github.com/ashkalikava/net-parser/internal/executor"
	"github.com/ashkalikava/net-parser/internal/pipeline"
	"github.com/ashkalikava/net-parser/internal/registry"
)

// App encapsulates the runner's dependencies, configuration and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	model    *pipeline.Model
	runner   command.Runner

	lastJob atomic.Pointer[executor.JobResult]
}

// NewApp constructs a fully initialized App: logger, loaded pipelines and a
// validated registry. Startup configuration errors are fatal and panic; the
// caller recovers to present a clean exit message.
func NewApp(outW io.Writer, cfg *Config, runner command.Runner, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := pipeline.Load(ctx, cfg.PipelinePath)
	if err != nil {
		panic(fmt.Errorf("failed to load pipelines: %w", err))
	}
	logger.Debug("Pipeline definitions loaded.", "pipelines", len(model.Pipelines))

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All step modules registered.", "count", len(modules))

	if err := reg.Validate(model); err != nil {
		// A step type with no compiled handler is a config/code mismatch.
		panic(err)
	}
	logger.Debug("Registry validation passed.", "types", reg.Types())

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		model:    model,
		runner:   runner,
	}
}

// LastJob returns the most recent job result, or nil before any job ran.
func (a *App) LastJob() *executor.JobResult {
	return a.lastJob.Load()
}

// Model returns the loaded pipeline model. This is primarily for testing.
func (a *App) Model() *pipeline.Model {
	return a.model
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
