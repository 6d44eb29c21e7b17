// Package pipeline holds the format-agnostic model of a pipeline definition
// and the logic for loading it from HCL files and matching it against trigger
// events.
package pipeline

import (
	"github.com/hashicorp/hcl/v2"

	"github.com/ashkalikava/net-parser/internal/event"
)

// Model aggregates every pipeline found across the configured paths.
type Model struct {
	Pipelines []*Pipeline
}

// Pipeline is a named, ordered sequence of steps plus the triggers that
// allow it to run.
type Pipeline struct {
	Name     string
	Triggers Triggers
	Steps    []*Step
	File     string
}

// Triggers holds the per-kind branch allow-lists. A nil filter means steps of
// that kind never trigger this pipeline.
type Triggers struct {
	Push        *BranchFilter
	PullRequest *BranchFilter
}

// BranchFilter is a branch allow-list.
type BranchFilter struct {
	Branches []string
}

// Contains reports whether branch is in the allow-list.
func (f *BranchFilter) Contains(branch string) bool {
	if f == nil {
		return false
	}
	for _, b := range f.Branches {
		if b == branch {
			return true
		}
	}
	return false
}

// Step is the model of a single pipeline step. Arguments stay as a raw HCL
// body so expressions can be evaluated against completed step outputs at
// execution time.
type Step struct {
	Type      string
	Name      string
	RunIf     *RunIf
	Arguments hcl.Body
}

// RunIf gates a step on the presence of a file, resolved relative to the
// job workspace.
type RunIf struct {
	FileExists string
}

// ID returns the step's canonical identifier, e.g. "pip.test_requirements".
func (s *Step) ID() string {
	return s.Type + "." + s.Name
}

// Matches reports whether the given event may trigger this pipeline.
func (p *Pipeline) Matches(ev *event.Event) bool {
	switch ev.Type {
	case event.Push:
		return p.Triggers.Push.Contains(ev.Branch)
	case event.PullRequest:
		return p.Triggers.PullRequest.Contains(ev.Branch)
	}
	return false
}
