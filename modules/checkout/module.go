// Package checkout implements the 'checkout' step: acquiring a source tree
// into the job workspace with git.
package checkout

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/ashkalikava/net-parser/internal/command"
	"github.com/ashkalikava/net-parser/internal/ctxlog"
	"github.com/ashkalikava/net-parser/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the checkout step.
type Input struct {
	// Repository is either an "owner/name" shorthand or a full clone URL.
	Repository string `hcl:"repository"`
	// Path is the checkout destination relative to the workspace. Defaults
	// to the repository name.
	Path string `hcl:"path,optional"`
	// Ref optionally pins the checkout to a commit, tag or branch. Left
	// empty, the default branch's HEAD is used.
	Ref string `hcl:"ref,optional"`
}

// OnRunCheckout is the handler for the 'checkout' step.
func OnRunCheckout(ctx context.Context, tb *registry.Toolbox, input any) (cty.Value, error) {
	in := input.(*Input)
	logger := ctxlog.FromContext(ctx)

	if in.Repository == "" {
		return cty.NilVal, fmt.Errorf("checkout requires a repository")
	}

	url := in.Repository
	if !strings.Contains(url, "://") && !strings.HasPrefix(url, "git@") {
		url = "https://github.com/" + url + ".git"
	}

	dest := in.Path
	if dest == "" {
		dest = strings.TrimSuffix(path.Base(in.Repository), ".git")
	}
	absDest := filepath.Join(tb.Workspace, dest)

	logger.Info("Cloning repository.", "url", url, "dest", dest)
	clone := command.Spec{
		Name:   "git",
		Args:   []string{"clone", url, absDest},
		Stdout: tb.Output,
		Stderr: tb.Output,
	}
	if err := tb.Commands.Run(ctx, clone); err != nil {
		return cty.NilVal, fmt.Errorf("failed to clone %s: %w", url, err)
	}

	if in.Ref != "" {
		logger.Info("Pinning checkout to ref.", "ref", in.Ref)
		checkout := command.Spec{
			Name:   "git",
			Args:   []string{"checkout", in.Ref},
			Dir:    absDest,
			Stdout: tb.Output,
			Stderr: tb.Output,
		}
		if err := tb.Commands.Run(ctx, checkout); err != nil {
			return cty.NilVal, fmt.Errorf("failed to checkout ref %s: %w", in.Ref, err)
		}
	}

	return cty.ObjectVal(map[string]cty.Value{
		"path": cty.StringVal(absDest),
	}), nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterStep("checkout", &registry.RegisteredStep{
		NewInput: func() any { return new(Input) },
		Fn:       OnRunCheckout,
	})
}
