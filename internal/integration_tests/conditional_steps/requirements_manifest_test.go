package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashkalikava/net-parser/internal/command"
	"github.com/ashkalikava/net-parser/internal/executor"
	"github.com/ashkalikava/net-parser/internal/testutil"
)

const gatedPipelineHCL = `
pipeline "ci" {
  on {
    push {
      branches = ["main"]
    }
  }

  step "pip" "extra_requirements" {
    run_if {
      file_exists = "tests/test-requirements.txt"
    }

    arguments {
      requirements = "tests/test-requirements.txt"
    }
  }

  step "run" "tests" {
    arguments {
      command = "pytest"
    }
  }
}
`

// Test for: a gated step whose manifest is absent is skipped without
// affecting the job outcome.
func TestMissingManifestSkipsGatedStep(t *testing.T) {
	rec := command.NewRecorder()
	result := testutil.RunJobTest(t, map[string]string{
		"pipelines/main.hcl": gatedPipelineHCL,
	}, "type: push\nbranch: main\n", rec)

	require.NoError(t, result.Err)
	require.Equal(t, executor.StatusSuccess, result.Job.Status)
	testutil.AssertStepStatus(t, result, "pip.extra_requirements", executor.StatusSkipped)
	testutil.AssertStepStatus(t, result, "run.tests", executor.StatusSuccess)

	require.Equal(t, []string{"pytest"}, rec.Lines(),
		"no pip invocation may happen when the manifest is absent")
}

// Test for: a gated step whose manifest exists runs and installs from it.
func TestPresentManifestRunsGatedStep(t *testing.T) {
	rec := command.NewRecorder()
	result := testutil.RunJobTest(t, map[string]string{
		"pipelines/main.hcl":                    gatedPipelineHCL,
		"workspace/tests/test-requirements.txt": "freezegun==1.2.2\n",
	}, "type: push\nbranch: main\n", rec)

	require.NoError(t, result.Err)
	require.Equal(t, executor.StatusSuccess, result.Job.Status)
	testutil.AssertStepStatus(t, result, "pip.extra_requirements", executor.StatusSuccess)
	testutil.AssertStepStatus(t, result, "run.tests", executor.StatusSuccess)

	require.Equal(t, []string{
		"python3 -m pip install -r tests/test-requirements.txt",
		"pytest",
	}, rec.Lines())
}

// Test for: the gate only accepts regular files, not directories.
func TestManifestDirectoryDoesNotSatisfyGate(t *testing.T) {
	rec := command.NewRecorder()
	result := testutil.RunJobTest(t, map[string]string{
		"pipelines/main.hcl": gatedPipelineHCL,
		// Creates tests/test-requirements.txt as a directory by placing a
		// file inside it.
		"workspace/tests/test-requirements.txt/placeholder": "",
	}, "type: push\nbranch: main\n", rec)

	require.NoError(t, result.Err)
	testutil.AssertStepStatus(t, result, "pip.extra_requirements", executor.StatusSkipped)
	require.Equal(t, []string{"pytest"}, rec.Lines())
}
