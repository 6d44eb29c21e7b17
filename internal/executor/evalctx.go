package executor

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/ashkalikava/net-parser/internal/event"
)

// buildEvalContext assembles the HCL evaluation context for a step's
// arguments. It exposes the workspace path, the trigger event, and the
// outputs of every completed step under step.<name>.output.
func buildEvalContext(workspace string, ev *event.Event, outputs map[string]cty.Value) *hcl.EvalContext {
	steps := make(map[string]cty.Value, len(outputs))
	for name, out := range outputs {
		steps[name] = cty.ObjectVal(map[string]cty.Value{
			"output": out,
		})
	}

	vars := map[string]cty.Value{
		"workspace": cty.StringVal(workspace),
		"event": cty.ObjectVal(map[string]cty.Value{
			"type":   cty.StringVal(string(ev.Type)),
			"branch": cty.StringVal(ev.Branch),
		}),
	}
	if len(steps) > 0 {
		vars["step"] = cty.ObjectVal(steps)
	}

	return &hcl.EvalContext{Variables: vars}
}
