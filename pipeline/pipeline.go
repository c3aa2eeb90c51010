// Package pipeline compiles a candidate program with an external toolchain
// and, when compilation succeeds, runs the produced binary. Output from both
// subprocesses is captured and relayed verbatim to the terminal.
//
// A Pipeline owns one fixed source path and one fixed binary path that are
// overwritten on every evaluation. Evaluations must not overlap.
//
//	p, err := pipeline.New(&cfg)
//	outcome, err := p.Evaluate(ctx, program.Synthesize(p.Template(), history, line))
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tailored-agentic-units/rscli/observability"
	"github.com/tailored-agentic-units/rscli/program"
	"github.com/tailored-agentic-units/rscli/toolchain"
)

// Option configures a Pipeline after config-driven initialization.
type Option func(*Pipeline)

// WithRunner overrides the os/exec subprocess runner.
func WithRunner(r Runner) Option {
	return func(p *Pipeline) { p.runner = r }
}

// WithOutput overrides where captured stdout and stderr are relayed.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(p *Pipeline) {
		p.stdout = stdout
		p.stderr = stderr
	}
}

// WithObserver overrides the default NoOpObserver.
func WithObserver(o observability.Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

// Pipeline is the compile-execute stage of the REPL.
type Pipeline struct {
	toolchain  toolchain.Toolchain
	sourcePath string
	binaryPath string
	runner     Runner
	stdout     io.Writer
	stderr     io.Writer
	observer   observability.Observer
}

// New creates a Pipeline from configuration. Relative source and binary
// paths are resolved against the working directory. Returns
// toolchain.ErrNotFound when the configured toolchain is not registered.
func New(cfg *Config, opts ...Option) (*Pipeline, error) {
	tc, err := cfg.ResolveToolchain()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve toolchain: %w", err)
	}

	defaults := DefaultConfig()
	p := &Pipeline{
		toolchain:  tc,
		sourcePath: cfg.SourcePath,
		binaryPath: cfg.BinaryPath,
		runner:     ExecRunner{},
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		observer:   observability.NoOpObserver{},
	}
	if p.sourcePath == "" {
		p.sourcePath = defaults.SourcePath
	}
	if p.binaryPath == "" {
		p.binaryPath = defaults.BinaryPath
	}

	// A bare binary name would be looked up on PATH when run.
	if p.sourcePath, err = filepath.Abs(p.sourcePath); err != nil {
		return nil, fmt.Errorf("%w: resolve source path: %v", ErrEnvironment, err)
	}
	if p.binaryPath, err = filepath.Abs(p.binaryPath); err != nil {
		return nil, fmt.Errorf("%w: resolve binary path: %v", ErrEnvironment, err)
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Toolchain returns the resolved toolchain.
func (p *Pipeline) Toolchain() toolchain.Toolchain {
	return p.toolchain
}

// Template returns the program wrapper of the resolved toolchain.
func (p *Pipeline) Template() program.Template {
	return p.toolchain.Template
}

// Evaluate writes text to the source path, compiles it, relays compiler
// output, and on a zero compiler exit runs the binary and relays its output.
// A compiler rejection is a CompileFailure outcome, not an error. A non-zero
// exit of the program itself is reported in Outcome.Run.ExitCode. Errors wrap
// ErrEnvironment.
func (p *Pipeline) Evaluate(ctx context.Context, text string) (Outcome, error) {
	var outcome Outcome

	if err := os.WriteFile(p.sourcePath, []byte(text), 0o644); err != nil {
		return outcome, fmt.Errorf("%w: write source %s: %v", ErrEnvironment, p.sourcePath, err)
	}

	p.emit(ctx, EventCompileStart, observability.LevelVerbose, map[string]any{
		"compiler":    p.toolchain.Compiler,
		"source":      p.sourcePath,
		"source_size": humanize.Bytes(uint64(len(text))),
	})

	compiled, err := p.runner.Run(ctx, p.toolchain.Compiler, p.toolchain.CompileArgs(p.sourcePath, p.binaryPath)...)
	if err != nil {
		return outcome, fmt.Errorf("%w: start compiler %s: %v", ErrEnvironment, p.toolchain.Compiler, err)
	}
	outcome.Compile = compiled

	if err := p.relay(compiled); err != nil {
		return outcome, err
	}

	if !compiled.Success() {
		outcome.Kind = CompileFailure
		p.emit(ctx, EventCompileComplete, observability.LevelInfo, map[string]any{
			"exit_code": compiled.ExitCode,
			"duration":  compiled.Duration.Round(time.Millisecond).String(),
			"stderr":    humanize.Bytes(uint64(len(compiled.Stderr))),
		})
		return outcome, nil
	}

	data := map[string]any{
		"exit_code": compiled.ExitCode,
		"duration":  compiled.Duration.Round(time.Millisecond).String(),
	}
	if info, err := os.Stat(p.binaryPath); err == nil {
		data["binary_size"] = humanize.Bytes(uint64(info.Size()))
	}
	p.emit(ctx, EventCompileComplete, observability.LevelVerbose, data)

	ran, err := p.runner.Run(ctx, p.binaryPath)
	if err != nil {
		return outcome, fmt.Errorf("%w: start binary %s: %v", ErrEnvironment, p.binaryPath, err)
	}
	outcome.Kind = RuntimeResult
	outcome.Run = ran

	if err := p.relay(ran); err != nil {
		return outcome, err
	}

	level := observability.LevelVerbose
	if !ran.Success() {
		level = observability.LevelWarning
	}
	p.emit(ctx, EventRunComplete, level, map[string]any{
		"exit_code": ran.ExitCode,
		"duration":  ran.Duration.Round(time.Millisecond).String(),
		"stdout":    humanize.Bytes(uint64(len(ran.Stdout))),
	})

	return outcome, nil
}

func (p *Pipeline) relay(proc Process) error {
	if _, err := p.stdout.Write(proc.Stdout); err != nil {
		return fmt.Errorf("%w: relay stdout: %v", ErrEnvironment, err)
	}
	if _, err := p.stderr.Write(proc.Stderr); err != nil {
		return fmt.Errorf("%w: relay stderr: %v", ErrEnvironment, err)
	}
	return nil
}

func (p *Pipeline) emit(ctx context.Context, typ observability.EventType, level observability.Level, data map[string]any) {
	p.observer.OnEvent(ctx, observability.Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now(),
		Source:    "pipeline.Evaluate",
		SessionID: observability.SessionID(ctx),
		Data:      data,
	})
}
