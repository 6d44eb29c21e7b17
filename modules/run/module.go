// Package run implements the generic 'run' step: an arbitrary command
// executed in the job workspace.
package run

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/zclconf/go-cty/cty"

	"github.com/ashkalikava/net-parser/internal/command"
	"github.com/ashkalikava/net-parser/internal/ctxlog"
	"github.com/ashkalikava/net-parser/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the run step.
type Input struct {
	// Command is the executable to invoke.
	Command string `hcl:"command"`
	// Args are passed verbatim; no shell interpretation happens.
	Args []string `hcl:"args,optional"`
	// Dir is the working directory relative to the workspace.
	Dir string `hcl:"dir,optional"`
	// Env holds extra KEY=VALUE pairs for the process environment.
	Env []string `hcl:"env,optional"`
}

// OnRunCommand is the handler for the 'run' step.
func OnRunCommand(ctx context.Context, tb *registry.Toolbox, input any) (cty.Value, error) {
	in := input.(*Input)
	logger := ctxlog.FromContext(ctx)

	if in.Command == "" {
		return cty.NilVal, fmt.Errorf("run step requires a command")
	}

	dir := tb.Workspace
	if in.Dir != "" {
		dir = filepath.Join(tb.Workspace, in.Dir)
	}

	spec := command.Spec{
		Name:   in.Command,
		Args:   in.Args,
		Dir:    dir,
		Env:    in.Env,
		Stdout: tb.Output,
		Stderr: tb.Output,
	}
	logger.Info("Running command.", "command", spec.Line())
	if err := tb.Commands.Run(ctx, spec); err != nil {
		return cty.NilVal, err
	}
	return cty.NilVal, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterStep("run", &registry.RegisteredStep{
		NewInput: func() any { return new(Input) },
		Fn:       OnRunCommand,
	})
}
