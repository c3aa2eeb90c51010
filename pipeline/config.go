package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/tailored-agentic-units/rscli/toolchain"
)

// Config holds compile-execute pipeline parameters. Compiler and Flags
// override the values of the selected toolchain when set.
type Config struct {
	Toolchain  string   `json:"toolchain,omitempty" yaml:"toolchain,omitempty"`
	Compiler   string   `json:"compiler,omitempty" yaml:"compiler,omitempty"`
	Flags      []string `json:"flags,omitempty" yaml:"flags,omitempty"`
	SourcePath string   `json:"source_path,omitempty" yaml:"source_path,omitempty"`
	BinaryPath string   `json:"binary_path,omitempty" yaml:"binary_path,omitempty"`
}

// DefaultConfig returns the rustc toolchain with its source and binary in
// the system temp directory.
func DefaultConfig() Config {
	return Config{
		Toolchain:  toolchain.Default,
		SourcePath: filepath.Join(os.TempDir(), "rscli.rs"),
		BinaryPath: filepath.Join(os.TempDir(), "rscli.out"),
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Toolchain != "" {
		c.Toolchain = source.Toolchain
	}
	if source.Compiler != "" {
		c.Compiler = source.Compiler
	}
	if len(source.Flags) > 0 {
		c.Flags = slices.Clone(source.Flags)
	}
	if source.SourcePath != "" {
		c.SourcePath = source.SourcePath
	}
	if source.BinaryPath != "" {
		c.BinaryPath = source.BinaryPath
	}
}

// ResolveToolchain looks up the configured toolchain and applies the
// Compiler and Flags overrides.
func (c *Config) ResolveToolchain() (toolchain.Toolchain, error) {
	name := c.Toolchain
	if name == "" {
		name = toolchain.Default
	}

	tc, err := toolchain.Get(name)
	if err != nil {
		return toolchain.Toolchain{}, err
	}

	if c.Compiler != "" {
		tc.Compiler = c.Compiler
	}
	if len(c.Flags) > 0 {
		tc.Flags = slices.Clone(c.Flags)
	}

	if tc.Compiler == "" {
		return toolchain.Toolchain{}, fmt.Errorf("toolchain %s: no compiler executable", tc.Name)
	}
	return tc, nil
}
