package command

import (
	"context"
	"sync"
)

// Recorder is a Runner for tests. It records every invocation in order and
// delegates behavior to an optional Handle hook, so tests can script failures
// and fake process output without spawning anything.
type Recorder struct {
	mu    sync.Mutex
	calls []Spec

	// Handle, when set, decides the outcome of each invocation. It may write
	// fake output to spec.Stdout before returning. A nil Handle means every
	// command succeeds silently.
	Handle func(spec Spec) error

	// Binaries maps executable names to fake resolved paths for LookPath.
	// Names not present resolve to themselves.
	Binaries map[string]string
}

// NewRecorder returns a Recorder where every command succeeds.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Run implements Runner.
func (r *Recorder) Run(ctx context.Context, spec Spec) error {
	r.mu.Lock()
	r.calls = append(r.calls, spec)
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if r.Handle != nil {
		return r.Handle(spec)
	}
	return nil
}

// LookPath implements Runner.
func (r *Recorder) LookPath(name string) (string, error) {
	if path, ok := r.Binaries[name]; ok {
		return path, nil
	}
	return name, nil
}

// Calls returns a snapshot of all recorded invocations in execution order.
func (r *Recorder) Calls() []Spec {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Spec, len(r.calls))
	copy(out, r.calls)
	return out
}

// Lines returns the recorded invocations rendered as shell-style lines, which
// keeps ordering assertions in tests readable.
func (r *Recorder) Lines() []string {
	calls := r.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.Line()
	}
	return lines
}
