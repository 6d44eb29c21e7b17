// Package event models the source-control trigger that starts a job. Events
// arrive as small YAML documents, typically written by a webhook receiver or
// passed by hand for local runs.
package event

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Kind enumerates the supported trigger kinds.
type Kind string

const (
	Push        Kind = "push"
	PullRequest Kind = "pull_request"
)

// Event describes a single trigger occurrence. For a push, Branch is the
// pushed branch; for a pull request, Branch is the branch the PR targets.
type Event struct {
	Type   Kind   `yaml:"type"`
	Branch string `yaml:"branch"`
}

// Parse decodes an event from raw YAML and validates it.
func Parse(data []byte) (*Event, error) {
	var ev Event
	if err := yaml.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return &ev, nil
}

// Load reads and parses an event file from disk.
func Load(path string) (*Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event file %s: %w", path, err)
	}
	ev, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid event file %s: %w", path, err)
	}
	return ev, nil
}

// Validate checks that the event is complete and of a known kind.
func (e *Event) Validate() error {
	switch e.Type {
	case Push, PullRequest:
	case "":
		return fmt.Errorf("event is missing a type")
	default:
		return fmt.Errorf("unknown event type %q", e.Type)
	}
	if e.Branch == "" {
		return fmt.Errorf("event of type %q is missing a branch", e.Type)
	}
	return nil
}

// String renders the event for log output.
func (e *Event) String() string {
	return fmt.Sprintf("%s:%s", e.Type, e.Branch)
}
