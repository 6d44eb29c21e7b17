package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashkalikava/net-parser/internal/ctxlog"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func writePipeline(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return dir
}

const validHCL = `
pipeline "ci" {
  on {
    push {
      branches = ["main", "develop"]
    }
  }

  step "run" "lint" {
    arguments {
      command = "flake8"
    }
  }

  step "pip" "extra" {
    run_if {
      file_exists = "tests/test-requirements.txt"
    }

    arguments {
      requirements = "tests/test-requirements.txt"
    }
  }
}
`

func TestLoadValidPipeline(t *testing.T) {
	dir := writePipeline(t, "main.hcl", validHCL)

	model, err := Load(testContext(), dir)
	require.NoError(t, err)
	require.Len(t, model.Pipelines, 1)

	p := model.Pipelines[0]
	require.Equal(t, "ci", p.Name)
	require.NotNil(t, p.Triggers.Push)
	require.Equal(t, []string{"main", "develop"}, p.Triggers.Push.Branches)
	require.Nil(t, p.Triggers.PullRequest)

	require.Len(t, p.Steps, 2)
	require.Equal(t, "run.lint", p.Steps[0].ID())
	require.Nil(t, p.Steps[0].RunIf)
	require.NotNil(t, p.Steps[0].Arguments)

	require.Equal(t, "pip.extra", p.Steps[1].ID())
	require.NotNil(t, p.Steps[1].RunIf)
	require.Equal(t, "tests/test-requirements.txt", p.Steps[1].RunIf.FileExists)
}

func TestLoadSingleFilePath(t *testing.T) {
	dir := writePipeline(t, "main.hcl", validHCL)

	model, err := Load(testContext(), filepath.Join(dir, "main.hcl"))
	require.NoError(t, err)
	require.Len(t, model.Pipelines, 1)
}

func TestLoadEmptyDirectoryYieldsEmptyModel(t *testing.T) {
	model, err := Load(testContext(), t.TempDir())
	require.NoError(t, err)
	require.Empty(t, model.Pipelines)
}

func TestLoadRejectsMissingTriggers(t *testing.T) {
	dir := writePipeline(t, "main.hcl", `
pipeline "never" {
  step "run" "lint" {
    arguments {
      command = "flake8"
    }
  }
}
`)

	_, err := Load(testContext(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing 'on' block")
}

func TestLoadRejectsEmptyRunIfFile(t *testing.T) {
	dir := writePipeline(t, "main.hcl", `
pipeline "ci" {
  on {
    push {
      branches = ["main"]
    }
  }

  step "pip" "extra" {
    run_if {
      file_exists = ""
    }

    arguments {
      requirements = "x.txt"
    }
  }
}
`)

	_, err := Load(testContext(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-empty file_exists")
}

func TestLoadRejectsDuplicatePipelineNames(t *testing.T) {
	dir := t.TempDir()
	one := `
pipeline "ci" {
  on {
    push {
      branches = ["main"]
    }
  }
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(one), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(one), 0644))

	_, err := Load(testContext(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), `duplicate pipeline name "ci"`)
}

func TestLoadRejectsDuplicateStepNames(t *testing.T) {
	dir := writePipeline(t, "main.hcl", `
pipeline "ci" {
  on {
    push {
      branches = ["main"]
    }
  }

  step "checkout" "companion" {
    arguments {
      repository = "a/b"
    }
  }

  step "pip" "companion" {
    arguments {
      project = "b"
    }
  }
}
`)

	_, err := Load(testContext(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), `duplicate step name "companion"`)
}

func TestLoadRejectsMalformedHCL(t *testing.T) {
	dir := writePipeline(t, "main.hcl", `pipeline "ci" { on {`)

	_, err := Load(testContext(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse HCL file")
}

func TestLoadRejectsMissingPath(t *testing.T) {
	_, err := Load(testContext(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}
