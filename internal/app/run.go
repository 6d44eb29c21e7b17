package app

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/ashkalikava/net-parser/internal/ctxlog"
	"github.com/ashkalikava/net-parser/internal/event"
	"github.com/ashkalikava/net-parser/internal/executor"
	"github.com/ashkalikava/net-parser/internal/notify"
	"github.com/ashkalikava/net-parser/internal/pipeline"
)

// Run loads the trigger event, executes every matching pipeline as a job,
// and reports the outcome. It returns a non-nil error iff a job failed.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.StatusPort > 0 {
		go a.startStatusServer(a.config.StatusPort)
	}

	ev, err := event.Load(a.config.EventPath)
	if err != nil {
		return err
	}
	a.logger.Info("Trigger event loaded.", "event", ev)

	if a.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.JobTimeout)
		defer cancel()
	}

	matched := 0
	var failed error
	for _, p := range a.model.Pipelines {
		if !p.Matches(ev) {
			a.logger.Info("Pipeline skipped: trigger does not match.", "pipeline", p.Name, "event", ev)
			a.lastJob.Store(&executor.JobResult{
				ID:       uuid.NewString(),
				Pipeline: p.Name,
				Event:    ev.String(),
				Status:   executor.StatusSkipped,
			})
			continue
		}
		matched++

		result, err := a.runJob(ctx, p, ev)
		a.lastJob.Store(result)
		if notifyErr := a.publish(ctx, result); notifyErr != nil {
			a.logger.Error("Failed to publish job status.", "error", notifyErr)
		}
		if err != nil {
			failed = err
			break
		}
	}

	if matched == 0 {
		a.logger.Info("No pipeline matched the trigger event, nothing to run.", "event", ev)
		return nil
	}

	a.logger.Debug("App.Run method finished.")
	return failed
}

// runJob executes a single pipeline in a fresh workspace.
func (a *App) runJob(ctx context.Context, p *pipeline.Pipeline, ev *event.Event) (*executor.JobResult, error) {
	workspace := a.config.Workspace
	if workspace == "" {
		tmp, err := os.MkdirTemp("", "net-parser-job-*")
		if err != nil {
			return nil, fmt.Errorf("failed to create job workspace: %w", err)
		}
		defer os.RemoveAll(tmp)
		workspace = tmp
	}

	result := &executor.JobResult{
		ID:       uuid.NewString(),
		Pipeline: p.Name,
		Event:    ev.String(),
	}
	a.logger.Info("🚀 Starting job.", "job", result.ID, "pipeline", p.Name, "workspace", workspace)

	exec := executor.New(a.registry, a.runner, workspace, a.outW)
	steps, err := exec.Run(ctx, p, ev)
	result.Steps = steps
	if err != nil {
		result.Status = executor.StatusFailure
		a.logger.Error("🏁 Job failed.", "job", result.ID, "error", err)
		return result, fmt.Errorf("job %s failed: %w", result.ID, err)
	}

	result.Status = executor.StatusSuccess
	a.logger.Info("🏁 Job finished.", "job", result.ID, "status", result.Status)
	return result, nil
}

// publish sends the job result to the configured status webhook, if any.
func (a *App) publish(ctx context.Context, result *executor.JobResult) error {
	if a.config.NotifyURL == "" || result == nil {
		return nil
	}
	notifier := notify.New(a.config.NotifyURL)
	defer notifier.Close()
	return notifier.Publish(ctx, result)
}
