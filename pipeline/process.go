package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// Process is the captured result of one finished subprocess.
type Process struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// Success reports whether the process exited with status zero.
func (p Process) Success() bool {
	return p.ExitCode == 0
}

// Runner starts a subprocess and waits for it to finish. A process that runs
// and exits non-zero is a Process with that ExitCode, not an error; errors
// are reserved for processes that could not be started at all.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Process, error)
}

// ExecRunner runs subprocesses through os/exec with stdin attached to the
// null device and both output streams captured in memory.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Process, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	proc := Process{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			proc.ExitCode = exitErr.ExitCode()
			return proc, nil
		}
		return proc, err
	}

	return proc, nil
}
