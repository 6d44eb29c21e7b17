// Package pip implements the 'pip' step: mutating the runtime's package
// environment by installing tools, pinned requirement sets, or checked-out
// project trees.
package pip

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

// Input defines the arguments for the pip step. Exactly one of Packages,
// Requirements or Project selects what gets installed; UpgradePip may be
// combined with any of them or used alone.
type Input struct {
	// Python is the interpreter to install into. Defaults to "python3";
	// pipelines normally wire it to the python step's output.
	Python string `hcl:"python,optional"`
	// Packages is an explicit list of package names.
	Packages []string `hcl:"packages,optional"`
	// Requirements is a requirements file relative to the workspace.
	Requirements string `hcl:"requirements,optional"`
	// Project is a directory relative to the workspace, installed as an
	// importable library (pip install <dir>).
	Project string `hcl:"project,optional"`
	// UpgradePip upgrades the installer itself before anything else.
	UpgradePip bool `hcl:"upgrade_pip,optional"`
}

func (in *Input) validate() error {
	selected := 0
	if len(in.Packages) > 0 {
		selected++
	}
	if in.Requirements != "" {
		selected++
	}
	if in.Project != "" {
		selected++
	}
	if selected > 1 {
		return fmt.Errorf("pip step accepts only one of packages, requirements or project")
	}
	if selected == 0 && !in.UpgradePip {
		return fmt.Errorf("pip step has nothing to install")
	}
	return nil
}

// OnRunPip is the handler for the 'pip' step.
func OnRunPip(ctx context.Context, tb *registry.Toolbox, input any) (cty.Value, error) {
	in := input.(*Input)
	logger := ctxlog.FromContext(ctx)

	if err := in.validate(); err != nil {
		return cty.NilVal, err
	}

	python := in.Python
	if python == "" {
		python = "python3"
	}

	install := func(args ...string) error {
		spec := command.Spec{
			Name:   python,
			Args:   append([]string{"-m", "pip", "install"}, args...),
			Dir:    tb.Workspace,
			Stdout: tb.Output,
			Stderr: tb.Output,
		}
		return tb.Commands.Run(ctx, spec)
	}

	if in.UpgradePip {
		logger.Info("Upgrading pip.")
		if err := install("--upgrade", "pip"); err != nil {
			return cty.NilVal, fmt.Errorf("failed to upgrade pip: %w", err)
		}
	}

	switch {
	case len(in.Packages) > 0:
		logger.Info("Installing packages.", "packages", in.Packages)
		if err := install(in.Packages...); err != nil {
			return cty.NilVal, fmt.Errorf("failed to install packages: %w", err)
		}
	case in.Requirements != "":
		logger.Info("Installing requirements file.", "file", in.Requirements)
		if err := install("-r", in.Requirements); err != nil {
			return cty.NilVal, fmt.Errorf("failed to install requirements from %s: %w", in.Requirements, err)
		}
	case in.Project != "":
		logger.Info("Installing project tree.", "project", in.Project)
		if err := install(filepath.Join(tb.Workspace, in.Project)); err != nil {
			return cty.NilVal, fmt.Errorf("failed to install project %s: %w", in.Project, err)
		}
	}

	return cty.NilVal, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterStep("pip", &registry.RegisteredStep{
		NewInput: func() any { return new(Input) },
		Fn:       OnRunPip,
	})
}
