// Package notify publishes finished job results to an external webhook, so a
// hosting platform can surface pass/fail status next to the commit.
package notify

import (
	"context"
	"fmt"

	"resty.dev/v3"

	"github.com/ashkalikava/net-parser/internal/ctxlog"
	"github.com/ashkalikava/net-parser/internal/executor"
)

// Notifier posts job results as JSON to a fixed URL.
type Notifier struct {
	url    string
	client *resty.Client
}

// New creates a Notifier for the given webhook URL.
func New(url string) *Notifier {
	return &Notifier{
		url:    url,
		client: resty.New(),
	}
}

// Publish sends the job result. A non-2xx response counts as a failure to
// publish; it never alters the job's own outcome.
func (n *Notifier) Publish(ctx context.Context, result *executor.JobResult) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Publishing job status.", "url", n.url, "status", result.Status)

	res, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(result).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("failed to publish job status: %w", err)
	}
	if !res.IsSuccess() {
		return fmt.Errorf("status webhook returned %d", res.StatusCode())
	}

	logger.Info("Job status published.", "status", result.Status)
	return nil
}

// Close releases the underlying HTTP client.
func (n *Notifier) Close() error {
	return n.client.Close()
}
