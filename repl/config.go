package repl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tailored-agentic-units/rscli/pipeline"
	"github.com/tailored-agentic-units/rscli/session"
)

// Policy decides which evaluations commit their line to the session.
type Policy string

const (
	// CommitOnCompile commits every line whose program compiled, even if
	// the program then exits non-zero.
	CommitOnCompile Policy = "compile"
	// CommitOnRun additionally requires the program to exit zero.
	CommitOnRun Policy = "run"
)

// ParsePolicy validates a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case CommitOnCompile, CommitOnRun:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidPolicy, s, CommitOnCompile, CommitOnRun)
	}
}

// Config holds initialization parameters for the REPL and its subsystems.
type Config struct {
	Session      session.Config  `json:"session" yaml:"session"`
	Pipeline     pipeline.Config `json:"pipeline" yaml:"pipeline"`
	CommitPolicy Policy          `json:"commit_policy,omitempty" yaml:"commit_policy,omitempty"`
	Observers    []string        `json:"observers,omitempty" yaml:"observers,omitempty"`
}

// DefaultConfig returns a Config with defaults for all subsystems: rustc,
// commit on compile success, events to slog, no session file.
func DefaultConfig() Config {
	return Config{
		Session:      session.DefaultConfig(),
		Pipeline:     pipeline.DefaultConfig(),
		CommitPolicy: CommitOnCompile,
		Observers:    []string{"slog"},
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Session.Merge(&source.Session)
	c.Pipeline.Merge(&source.Pipeline)

	if source.CommitPolicy != "" {
		c.CommitPolicy = source.CommitPolicy
	}
	if len(source.Observers) > 0 {
		c.Observers = slices.Clone(source.Observers)
	}
}

// LoadConfig reads a config file, merges it with defaults, and returns the
// resulting Config. Files ending in .yaml or .yml are decoded as YAML;
// anything else as JSON.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &loaded)
	default:
		err = json.Unmarshal(data, &loaded)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
