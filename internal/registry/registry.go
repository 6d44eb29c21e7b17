// Package registry holds the step handlers compiled into the binary. The
// executor looks up a pipeline step's type here to find the Go code that
// implements it.
package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/ashkalikava/net-parser/internal/command"
	"github.com/ashkalikava/net-parser/internal/pipeline"
)

// Toolbox groups the capabilities a step handler may use. Handlers never
// touch os/exec or the filesystem layout directly.
type Toolbox struct {
	// Workspace is the absolute path of the job's ephemeral working
	// directory. It is created per job and discarded afterwards.
	Workspace string

	// Commands runs external processes on the handler's behalf.
	Commands command.Runner

	// Output receives the raw stdout/stderr of external tools, so their
	// diagnostics surface in the job log untouched.
	Output io.Writer
}

// StepFunc is the signature of a step handler. The input argument is the
// struct produced by the handler's NewInput, populated from the step's
// decoded 'arguments' block. The returned value is exposed to later steps as
// step.<name>.output.
type StepFunc func(ctx context.Context, tb *Toolbox, input any) (cty.Value, error)

// RegisteredStep binds a step type to its handler and input schema.
type RegisteredStep struct {
	// NewInput returns a pointer to a fresh input struct carrying hcl tags,
	// or nil for handlers that take no arguments.
	NewInput func() any

	// Fn is the handler invoked for each step instance.
	Fn StepFunc
}

// Module is the interface every step module implements to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry maps step type names to their registered handlers. One registry
// exists per application instance.
type Registry struct {
	steps map[string]*RegisteredStep
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{steps: make(map[string]*RegisteredStep)}
}

// RegisterStep registers the handler for a step type. Double registration is
// a programmer error and panics.
func (r *Registry) RegisterStep(stepType string, step *RegisteredStep) {
	if _, exists := r.steps[stepType]; exists {
		panic(fmt.Sprintf("step handler %q already registered", stepType))
	}
	slog.Debug("Registering step handler.", "type", stepType)
	r.steps[stepType] = step
}

// Lookup returns the handler for a step type.
func (r *Registry) Lookup(stepType string) (*RegisteredStep, bool) {
	step, ok := r.steps[stepType]
	return step, ok
}

// Types returns the registered step type names, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.steps))
	for t := range r.steps {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Validate checks that every step type referenced by the loaded pipelines has
// a registered handler. A mismatch between configuration and compiled code is
// reported in full rather than failing on the first hit.
func (r *Registry) Validate(model *pipeline.Model) error {
	var errs []string
	for _, p := range model.Pipelines {
		for _, s := range p.Steps {
			if _, ok := r.steps[s.Type]; !ok {
				errs = append(errs, fmt.Sprintf("pipeline %q step %q: unknown step type %q", p.Name, s.Name, s.Type))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
