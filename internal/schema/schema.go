// Package schema defines the raw HCL structures of a pipeline file. These
// types exist purely for decoding; the format-agnostic model lives in the
// pipeline package.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// StepArgs holds the undecoded body of a step's 'arguments' block. The body
// stays raw until execution time so argument expressions can reference the
// outputs of earlier steps.
type StepArgs struct {
	Body hcl.Body `hcl:",remain"`
}

// RunIf represents the 'run_if' block of a step. Presence of the named file
// is the only supported condition: an absent file skips the step with
// success, it is never an error.
type RunIf struct {
	FileExists string `hcl:"file_exists"`
}

// Step represents a `step` block from a pipeline file. Steps execute in the
// order they are declared.
type Step struct {
	Type      string    `hcl:"step_type,label"`
	Name      string    `hcl:"step_name,label"`
	RunIf     *RunIf    `hcl:"run_if,block"`
	Arguments *StepArgs `hcl:"arguments,block"`
}

// BranchFilter is the branch allow-list attached to a trigger kind.
type BranchFilter struct {
	Branches []string `hcl:"branches"`
}

// Triggers represents the 'on' block of a pipeline. A trigger kind that is
// not declared never matches.
type Triggers struct {
	Push        *BranchFilter `hcl:"push,block"`
	PullRequest *BranchFilter `hcl:"pull_request,block"`
}

// Pipeline represents a top-level `pipeline` block.
type Pipeline struct {
	Name     string    `hcl:"pipeline_name,label"`
	Triggers *Triggers `hcl:"on,block"`
	Steps    []*Step   `hcl:"step,block"`
}

// File represents the top-level structure of a pipeline definition file.
type File struct {
	Pipelines []*Pipeline `hcl:"pipeline,block"`
}
