package executor

import (
	"time"
)

// Status is the outcome of a job or of a single step.
type Status string

const (
	// StatusSuccess means every executed step exited zero.
	StatusSuccess Status = "success"
	// StatusFailure means a step failed and the remainder was halted.
	StatusFailure Status = "failure"
	// StatusSkipped means the unit did not run: for a job, no trigger
	// matched; for a step, its run_if condition was unmet or an earlier
	// step had already failed.
	StatusSkipped Status = "skipped"
)

// StepResult records the outcome of one step instance.
type StepResult struct {
	ID       string        `json:"id"`
	Status   Status        `json:"status"`
	Reason   string        `json:"reason,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// JobResult is the complete record of one job: one trigger event applied to
// one pipeline.
type JobResult struct {
	ID       string       `json:"id"`
	Pipeline string       `json:"pipeline"`
	Event    string       `json:"event"`
	Status   Status       `json:"status"`
	Steps    []StepResult `json:"steps,omitempty"`
}

// Failed reports whether the job ended in failure.
func (r *JobResult) Failed() bool {
	return r.Status == StatusFailure
}
