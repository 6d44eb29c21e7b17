// Package python implements the 'python' step: provisioning a fixed
// interpreter version for the rest of the job.
package python

import (
	"bytes"
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

// Input defines the arguments for the python step.
type Input struct {
	// Version is the required interpreter series, e.g. "3.9". The resolved
	// interpreter must report exactly this series.
	Version string `hcl:"version"`
}

// OnRunPython resolves a matching interpreter on PATH and verifies its
// reported version. The resolved path is exposed as the step's output so
// later steps can invoke the exact same interpreter.
func OnRunPython(ctx context.Context, tb *registry.Toolbox, input any) (cty.Value, error) {
	in := input.(*Input)
	logger := ctxlog.FromContext(ctx)

	if in.Version == "" {
		return cty.NilVal, fmt.Errorf("python step requires a version")
	}

	binary, err := tb.Commands.LookPath("python" + in.Version)
	if err != nil {
		return cty.NilVal, fmt.Errorf("python %s not available: %w", in.Version, err)
	}

	var out bytes.Buffer
	probe := command.Spec{
		Name:   binary,
		Args:   []string{"--version"},
		Stdout: &out,
		Stderr: &out,
	}
	if err := tb.Commands.Run(ctx, probe); err != nil {
		return cty.NilVal, fmt.Errorf("failed to probe interpreter %s: %w", binary, err)
	}

	reported := strings.TrimSpace(out.String())
	if reported != "" && !strings.HasPrefix(reported, "Python "+in.Version) {
		return cty.NilVal, fmt.Errorf("interpreter %s reports %q, want series %s", binary, reported, in.Version)
	}

	logger.Info("Interpreter provisioned.", "binary", binary, "version", in.Version)
	return cty.ObjectVal(map[string]cty.Value{
		"interpreter": cty.StringVal(binary),
		"version":     cty.StringVal(in.Version),
	}), nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterStep("python", &registry.RegisteredStep{
		NewInput: func() any { return new(Input) },
		Fn:       OnRunPython,
	})
}
