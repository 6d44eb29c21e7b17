package app

import (
	"errors"
	"time"
)

// Config holds everything an App instance needs to run one job.
type Config struct {
	// PipelinePath is a .hcl file or a directory of .hcl files.
	PipelinePath string
	// EventPath is the YAML trigger event file.
	EventPath string
	// Workspace is the job's working directory. Empty means a fresh
	// temporary directory, removed when the job ends.
	Workspace string

	LogFormat  string
	LogLevel   string
	StatusPort int
	JobTimeout time.Duration
	NotifyURL  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PipelinePath == "" {
		return nil, errors.New("PipelinePath is a required configuration field and cannot be empty")
	}
	if cfg.EventPath == "" {
		return nil, errors.New("EventPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
