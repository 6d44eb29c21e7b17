package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashkalikava/net-parser/internal/executor"
)

// AssertStepStatus checks a single step's recorded outcome within a job.
func AssertStepStatus(t *testing.T, result *HarnessResult, stepID string, want executor.Status) {
	t.Helper()
	require.NotNil(t, result.Job, "no job result recorded")
	for _, step := range result.Job.Steps {
		if step.ID == stepID {
			require.Equal(t, want, step.Status, "unexpected status for step %s", stepID)
			return
		}
	}
	t.Fatalf("step %s not found in job result", stepID)
}

// AssertStepRan checks the log output to confirm that a step completed.
func AssertStepRan(t *testing.T, result *HarnessResult, stepID string) {
	t.Helper()
	needle := fmt.Sprintf("step=%s", stepID)
	require.True(t,
		strings.Contains(result.LogOutput, needle),
		"expected log output for step %q was not found in logs", stepID,
	)
}
