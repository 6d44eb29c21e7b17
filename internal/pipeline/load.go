package pipeline

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/ashkalikava/net-parser/internal/ctxlog"
	"github.com/ashkalikava/net-parser/internal/fsutil"
	"github.com/ashkalikava/net-parser/internal/schema"
)

// Load finds and parses all .hcl pipeline files under path (a single file or
// a directory tree) and translates them into the format-agnostic model.
func Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading pipelines from path", "path", path)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find pipeline files in %s: %w", path, err)
	}

	model := &Model{}
	if len(files) == 0 {
		logger.Warn("No .hcl pipeline files found in path", "path", path)
		return model, nil
	}

	parser := hclparse.NewParser()
	for _, file := range files {
		pipelines, err := loadFile(file, parser)
		if err != nil {
			return nil, err
		}
		model.Pipelines = append(model.Pipelines, pipelines...)
	}

	if err := model.validate(); err != nil {
		return nil, err
	}

	logger.Debug("Pipelines loaded.", "count", len(model.Pipelines))
	return model, nil
}

// loadFile parses a single HCL file into pipeline models.
func loadFile(filePath string, parser *hclparse.Parser) ([]*Pipeline, error) {
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
	}

	var parsed schema.File
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filePath, diags)
	}

	pipelines := make([]*Pipeline, 0, len(parsed.Pipelines))
	for _, raw := range parsed.Pipelines {
		p, err := fromSchema(raw, filePath)
		if err != nil {
			return nil, fmt.Errorf("invalid pipeline %q in %s: %w", raw.Name, filePath, err)
		}
		pipelines = append(pipelines, p)
	}
	return pipelines, nil
}

// fromSchema translates a decoded pipeline block into the model.
func fromSchema(raw *schema.Pipeline, filePath string) (*Pipeline, error) {
	if raw.Triggers == nil {
		return nil, fmt.Errorf("missing 'on' block: a pipeline with no triggers can never run")
	}

	p := &Pipeline{
		Name: raw.Name,
		File: filePath,
	}
	if raw.Triggers.Push != nil {
		p.Triggers.Push = &BranchFilter{Branches: raw.Triggers.Push.Branches}
	}
	if raw.Triggers.PullRequest != nil {
		p.Triggers.PullRequest = &BranchFilter{Branches: raw.Triggers.PullRequest.Branches}
	}

	for _, rawStep := range raw.Steps {
		step := &Step{
			Type: rawStep.Type,
			Name: rawStep.Name,
		}
		if rawStep.RunIf != nil {
			if rawStep.RunIf.FileExists == "" {
				return nil, fmt.Errorf("step %s: run_if requires a non-empty file_exists", step.ID())
			}
			step.RunIf = &RunIf{FileExists: rawStep.RunIf.FileExists}
		}
		if rawStep.Arguments != nil {
			step.Arguments = rawStep.Arguments.Body
		}
		p.Steps = append(p.Steps, step)
	}

	return p, nil
}

// validate checks cross-pipeline consistency of the loaded model.
func (m *Model) validate() error {
	seenPipelines := make(map[string]struct{})
	for _, p := range m.Pipelines {
		if _, dup := seenPipelines[p.Name]; dup {
			return fmt.Errorf("duplicate pipeline name %q", p.Name)
		}
		seenPipelines[p.Name] = struct{}{}

		seenSteps := make(map[string]struct{})
		for _, s := range p.Steps {
			if _, dup := seenSteps[s.Name]; dup {
				return fmt.Errorf("pipeline %q: duplicate step name %q", p.Name, s.Name)
			}
			seenSteps[s.Name] = struct{}{}
		}
	}
	return nil
}
