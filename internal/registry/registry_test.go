package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/ashkalikava/net-parser/internal/pipeline"
)

func noop(ctx context.Context, tb *Toolbox, input any) (cty.Value, error) {
	return cty.NilVal, nil
}

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	r.RegisterStep("run", &RegisteredStep{Fn: noop})

	step, ok := r.Lookup("run")
	require.True(t, ok)
	require.NotNil(t, step)

	_, ok = r.Lookup("teleport")
	require.False(t, ok)
}

func TestDoubleRegistrationPanics(t *testing.T) {
	r := New()
	r.RegisterStep("run", &RegisteredStep{Fn: noop})

	require.Panics(t, func() {
		r.RegisterStep("run", &RegisteredStep{Fn: noop})
	})
}

func TestTypesAreSorted(t *testing.T) {
	r := New()
	r.RegisterStep("python", &RegisteredStep{Fn: noop})
	r.RegisterStep("checkout", &RegisteredStep{Fn: noop})
	r.RegisterStep("pip", &RegisteredStep{Fn: noop})

	require.Equal(t, []string{"checkout", "pip", "python"}, r.Types())
}

func TestValidateAcceptsKnownTypes(t *testing.T) {
	r := New()
	r.RegisterStep("run", &RegisteredStep{Fn: noop})

	model := &pipeline.Model{Pipelines: []*pipeline.Pipeline{{
		Name:  "ci",
		Steps: []*pipeline.Step{{Type: "run", Name: "lint"}},
	}}}

	require.NoError(t, r.Validate(model))
}

func TestValidateCollectsEveryUnknownType(t *testing.T) {
	r := New()
	r.RegisterStep("run", &RegisteredStep{Fn: noop})

	model := &pipeline.Model{Pipelines: []*pipeline.Pipeline{{
		Name: "ci",
		Steps: []*pipeline.Step{
			{Type: "run", Name: "lint"},
			{Type: "teleport", Name: "one"},
			{Type: "summon", Name: "two"},
		},
	}}}

	err := r.Validate(model)
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown step type "teleport"`)
	require.Contains(t, err.Error(), `unknown step type "summon"`)
}
