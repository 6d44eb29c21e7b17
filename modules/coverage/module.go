// Package coverage implements the 'coverage' step, wrapping the external
// coverage tool in its two roles: running a test suite under measurement and
// printing the resulting report.
package coverage

import (
	"context"
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/ashkalikava/net-parser/internal/command"
	"github.com/ashkalikava/net-parser/internal/ctxlog"
	"github.com/ashkalikava/net-parser/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the coverage step.
type Input struct {
	// Action selects the role: "run" executes the test suite under the
	// coverage wrapper, "report" prints per-file and total percentages from
	// the data file the run left behind.
	Action string `hcl:"action"`
	// Python is the interpreter driving the tool. Defaults to "python3".
	Python string `hcl:"python,optional"`
	// Root is the test discovery root ("run" only). Defaults to "tests".
	Root string `hcl:"root,optional"`
	// Pattern is the test file glob ("run" only). Defaults to "test_*.py".
	Pattern string `hcl:"pattern,optional"`
	// Omit lists path globs excluded from measurement ("run" only).
	Omit []string `hcl:"omit,optional"`
}

// OnRunCoverage is the handler for the 'coverage' step.
func OnRunCoverage(ctx context.Context, tb *registry.Toolbox, input any) (cty.Value, error) {
	in := input.(*Input)
	logger := ctxlog.FromContext(ctx)

	python := in.Python
	if python == "" {
		python = "python3"
	}

	var args []string
	switch in.Action {
	case "run":
		root := in.Root
		if root == "" {
			root = "tests"
		}
		pattern := in.Pattern
		if pattern == "" {
			pattern = "test_*.py"
		}
		args = []string{"-m", "coverage", "run"}
		if len(in.Omit) > 0 {
			args = append(args, "--omit", strings.Join(in.Omit, ","))
		}
		args = append(args, "-m", "unittest", "discover", "-s", root, "-p", pattern)
		logger.Info("Running test suite under coverage.", "root", root, "pattern", pattern, "omit", in.Omit)
	case "report":
		args = []string{"-m", "coverage", "report"}
		logger.Info("Printing coverage report.")
	case "":
		return cty.NilVal, fmt.Errorf("coverage step requires an action")
	default:
		return cty.NilVal, fmt.Errorf("unknown coverage action %q, want 'run' or 'report'", in.Action)
	}

	spec := command.Spec{
		Name:   python,
		Args:   args,
		Dir:    tb.Workspace,
		Stdout: tb.Output,
		Stderr: tb.Output,
	}
	if err := tb.Commands.Run(ctx, spec); err != nil {
		if in.Action == "run" {
			return cty.NilVal, fmt.Errorf("test suite failed: %w", err)
		}
		return cty.NilVal, fmt.Errorf("coverage report failed: %w", err)
	}
	return cty.NilVal, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterStep("coverage", &registry.RegisteredStep{
		NewInput: func() any { return new(Input) },
		Fn:       OnRunCoverage,
	})
}
