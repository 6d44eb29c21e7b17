// Package command abstracts external-process invocation behind a small
// interface. Every step that shells out to git, a Python interpreter or the
// coverage tool goes through a Runner, which is what lets the test harness
// record and script invocations without touching real tools.
package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/ashkalikava/net-parser/internal/ctxlog"
)

// Spec describes a single external-process invocation.
type Spec struct {
	Name   string
	Args   []string
	Dir    string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// Line renders the invocation the way a shell would show it.
func (s Spec) Line() string {
	line := s.Name
	for _, a := range s.Args {
		line += " " + a
	}
	return line
}

// ExitError reports a process that started but exited non-zero.
type ExitError struct {
	Spec Spec
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with code %d", e.Spec.Line(), e.Code)
}

// Runner executes external processes on behalf of step handlers.
type Runner interface {
	// Run blocks until the process exits. A non-zero exit is returned as an
	// *ExitError; any other error means the process could not be started.
	Run(ctx context.Context, spec Spec) error

	// LookPath resolves an executable name to an absolute path.
	LookPath(name string) (string, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner that spawns real processes.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, spec Spec) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Spawning external process.", "command", spec.Line(), "dir", spec.Dir)

	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = append(os.Environ(), spec.Env...)
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return &ExitError{Spec: spec, Code: exitErr.ExitCode()}
	}
	return fmt.Errorf("failed to start command %q: %w", spec.Line(), err)
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
