// Package executor runs a pipeline's steps strictly sequentially with
// fail-fast semantics: the first failing step halts the job and every
// remaining step is recorded as skipped.
package executor

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"

	"github.com/ashkalikava/net-parser/internal/command"
	"github.com/ashkalikava/net-parser/internal/ctxlog"
	"github.com/ashkalikava/net-parser/internal/event"
	"github.com/ashkalikava/net-parser/internal/fsutil"
	"github.com/ashkalikava/net-parser/internal/pipeline"
	"github.com/ashkalikava/net-parser/internal/registry"
)

// Executor dispatches pipeline steps to their registered handlers.
type Executor struct {
	registry  *registry.Registry
	runner    command.Runner
	workspace string
	outW      io.Writer
}

// New creates an Executor bound to one workspace and one command runner.
func New(reg *registry.Registry, runner command.Runner, workspace string, outW io.Writer) *Executor {
	return &Executor{
		registry:  reg,
		runner:    runner,
		workspace: workspace,
		outW:      outW,
	}
}

// Run executes every step of the pipeline in declaration order. It returns
// the per-step results together with the first error encountered, if any.
// Steps after a failure never execute; they appear in the results as skipped.
func (e *Executor) Run(ctx context.Context, p *pipeline.Pipeline, ev *event.Event) ([]StepResult, error) {
	logger := ctxlog.FromContext(ctx).With("pipeline", p.Name)

	results := make([]StepResult, 0, len(p.Steps))
	outputs := make(map[string]cty.Value)
	var failed error

	for _, step := range p.Steps {
		if failed != nil {
			results = append(results, StepResult{
				ID:     step.ID(),
				Status: StatusSkipped,
				Reason: "earlier step failed",
			})
			continue
		}
		if err := ctx.Err(); err != nil {
			failed = err
			results = append(results, StepResult{
				ID:     step.ID(),
				Status: StatusSkipped,
				Reason: "job cancelled",
			})
			continue
		}

		result, output, err := e.runStep(ctx, step, ev, outputs)
		results = append(results, result)
		if err != nil {
			logger.Error("Step failed, halting remaining steps.", "step", step.ID(), "error", err)
			failed = fmt.Errorf("step %s failed: %w", step.ID(), err)
			continue
		}
		if result.Status == StatusSuccess {
			outputs[step.Name] = output
		}
	}

	return results, failed
}

// runStep evaluates a single step: its run_if gate, its arguments, and its
// handler.
func (e *Executor) runStep(ctx context.Context, step *pipeline.Step, ev *event.Event, outputs map[string]cty.Value) (StepResult, cty.Value, error) {
	logger := ctxlog.FromContext(ctx).With("step", step.ID())
	started := time.Now()

	if step.RunIf != nil {
		gate := filepath.Join(e.workspace, step.RunIf.FileExists)
		if !fsutil.FileExists(gate) {
			logger.Info("⏭️ Skipping step: run_if file not present.", "file", step.RunIf.FileExists)
			return StepResult{
				ID:       step.ID(),
				Status:   StatusSkipped,
				Reason:   fmt.Sprintf("file %s not present", step.RunIf.FileExists),
				Duration: time.Since(started),
			}, cty.NilVal, nil
		}
		logger.Debug("run_if condition satisfied.", "file", step.RunIf.FileExists)
	}

	handler, ok := e.registry.Lookup(step.Type)
	if !ok {
		// Validation at startup should make this unreachable.
		return e.failure(step, started), cty.NilVal, fmt.Errorf("unknown step type %q", step.Type)
	}

	var input any
	if handler.NewInput != nil {
		input = handler.NewInput()
	}
	if input != nil && step.Arguments != nil {
		evalCtx := buildEvalContext(e.workspace, ev, outputs)
		if diags := gohcl.DecodeBody(step.Arguments, evalCtx, input); diags.HasErrors() {
			return e.failure(step, started), cty.NilVal, fmt.Errorf("failed to decode arguments: %w", diags)
		}
	}

	logger.Info("▶️ Starting step")
	toolbox := &registry.Toolbox{
		Workspace: e.workspace,
		Commands:  e.runner,
		Output:    e.outW,
	}
	output, err := handler.Fn(ctx, toolbox, input)
	if err != nil {
		return e.failure(step, started), cty.NilVal, err
	}
	if output == cty.NilVal {
		output = cty.NullVal(cty.DynamicPseudoType)
	}

	logger.Info("✅ Finished step", "duration", time.Since(started).Round(time.Millisecond))
	return StepResult{
		ID:       step.ID(),
		Status:   StatusSuccess,
		Duration: time.Since(started),
	}, output, nil
}

func (e *Executor) failure(step *pipeline.Step, started time.Time) StepResult {
	return StepResult{
		ID:       step.ID(),
		Status:   StatusFailure,
		Duration: time.Since(started),
	}
}
