// Package repl implements the read-eval-print loop that lets a user build a
// compiled program one line at a time.
//
// Every line is appended to the accepted history to form a candidate
// program, which is compiled and run from scratch. The line joins the
// history only if the candidate is accepted; otherwise it is dropped and the
// history is unchanged. The history is saved to the session file when the
// loop stops.
//
//	c, err := repl.New(&cfg, repl.WithEditor(term))
//	result, err := c.Run(ctx)
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tailored-agentic-units/rscli/lineedit"
	"github.com/tailored-agentic-units/rscli/observability"
	"github.com/tailored-agentic-units/rscli/pipeline"
	"github.com/tailored-agentic-units/rscli/program"
	"github.com/tailored-agentic-units/rscli/session"
)

// StopReason records why the loop reached its terminal state.
type StopReason string

const (
	StopInterrupt  StopReason = "interrupt"
	StopEndOfInput StopReason = "eof"
	StopInputError StopReason = "input_error"
	StopCancelled  StopReason = "cancelled"
)

// Result holds the outcome of a Run invocation.
type Result struct {
	Evaluations int        // Lines sent to the pipeline.
	Committed   int        // Lines appended to the session.
	Discarded   int        // Lines dropped after evaluation.
	Reason      StopReason // Why the loop stopped.
}

// Evaluator compiles and runs candidate programs. *pipeline.Pipeline is the
// production implementation.
type Evaluator interface {
	Template() program.Template
	Evaluate(ctx context.Context, text string) (pipeline.Outcome, error)
}

// Option configures a Controller after config-driven initialization.
type Option func(*Controller)

// WithSession overrides the config-loaded session.
func WithSession(s session.Session) Option {
	return func(c *Controller) {
		c.session = s
		c.loadErr = nil
	}
}

// WithEditor overrides the default stdin scanner.
func WithEditor(e lineedit.Editor) Option {
	return func(c *Controller) { c.editor = e }
}

// WithEvaluator overrides the config-created pipeline.
func WithEvaluator(e Evaluator) Option {
	return func(c *Controller) { c.evaluator = e }
}

// WithObserver overrides the config-resolved observer.
func WithObserver(o observability.Observer) Option {
	return func(c *Controller) { c.observer = o }
}

// WithStderr overrides where user-facing warnings are written.
func WithStderr(w io.Writer) Option {
	return func(c *Controller) { c.stderr = w }
}

// Controller runs the REPL state machine. It is single-threaded: one line
// is fully evaluated and committed or discarded before the next is read.
type Controller struct {
	session     session.Session
	sessionPath string
	loadErr     error
	editor      lineedit.Editor
	evaluator   Evaluator
	observer    observability.Observer
	policy      Policy
	stderr      io.Writer
}

// New creates a Controller from configuration. The session is loaded from
// cfg.Session.Path when set; a missing or unreadable file is not returned
// here but reported as a warning when Run starts. Observers are resolved against
// slog.Default().
func New(cfg *Config, opts ...Option) (*Controller, error) {
	policy := cfg.CommitPolicy
	if policy == "" {
		policy = CommitOnCompile
	}
	policy, err := ParsePolicy(string(policy))
	if err != nil {
		return nil, err
	}

	observer, err := observability.Resolve(cfg.Observers, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve observers: %w", err)
	}

	sesh, loadErr := session.New(&cfg.Session)

	p, err := pipeline.New(&cfg.Pipeline, pipeline.WithObserver(observer))
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}

	c := &Controller{
		session:     sesh,
		sessionPath: cfg.Session.Path,
		loadErr:     loadErr,
		editor:      lineedit.NewScanner(os.Stdin, os.Stdout),
		evaluator:   p,
		observer:    observer,
		policy:      policy,
		stderr:      os.Stderr,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Session returns the controller's session.
func (c *Controller) Session() session.Session {
	return c.session
}

// Prompt returns the input prompt: "> ", or "<session path> | > " when a
// session file is configured.
func (c *Controller) Prompt() string {
	if c.sessionPath == "" {
		return "> "
	}
	return c.sessionPath + " | > "
}

// Run reads and evaluates lines until the editor reports an interrupt, end
// of input, or an input error, then saves the session if a session path is
// configured. Input and persistence problems are reported on stderr and do
// not produce an error. An error wrapping pipeline.ErrEnvironment aborts the
// loop immediately without saving.
func (c *Controller) Run(ctx context.Context) (*Result, error) {
	ctx = observability.WithSessionID(ctx, c.session.ID())
	result := &Result{}

	c.start(ctx)
	prompt := c.Prompt()

	for {
		if err := ctx.Err(); err != nil {
			result.Reason = StopCancelled
			c.stop(ctx, result)
			return result, err
		}

		line, err := c.editor.ReadLine(prompt)
		if err != nil {
			result.Reason = c.classify(ctx, err)
			break
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		result.Evaluations++
		_, committed, err := c.Submit(ctx, line)
		if err != nil {
			c.emit(ctx, EventError, observability.LevelError, map[string]any{
				"error": err.Error(),
			})
			return result, err
		}
		if committed {
			result.Committed++
		} else {
			result.Discarded++
		}
	}

	c.stop(ctx, result)
	return result, nil
}

// Submit evaluates one line against the current session and commits it when
// the commit policy accepts the outcome. It reports whether the line was
// committed. The session is unchanged when an error is returned.
func (c *Controller) Submit(ctx context.Context, line string) (pipeline.Outcome, bool, error) {
	history := c.session.Lines()
	text := program.Synthesize(c.evaluator.Template(), history, line)

	outcome, err := c.evaluator.Evaluate(ctx, text)
	if err != nil {
		return outcome, false, err
	}

	if !c.accepts(outcome) {
		data := map[string]any{
			"kind":      outcome.Kind.String(),
			"exit_code": outcome.Compile.ExitCode,
		}
		if outcome.Compiled() {
			data["exit_code"] = outcome.Run.ExitCode
		}
		c.emit(ctx, EventDiscard, observability.LevelInfo, data)
		return outcome, false, nil
	}

	c.session.Append(line)
	if rec, ok := c.editor.(lineedit.HistoryRecorder); ok {
		if err := rec.AddHistory(line); err != nil {
			c.emit(ctx, EventError, observability.LevelWarning, map[string]any{
				"error": err.Error(),
			})
		}
	}

	c.emit(ctx, EventCommit, observability.LevelVerbose, map[string]any{
		"lines":     c.session.Len(),
		"exit_code": outcome.Run.ExitCode,
	})
	return outcome, true, nil
}

func (c *Controller) accepts(outcome pipeline.Outcome) bool {
	if !outcome.Compiled() {
		return false
	}
	if c.policy == CommitOnRun {
		return outcome.Run.Success()
	}
	return true
}

func (c *Controller) start(ctx context.Context) {
	if c.loadErr != nil {
		fmt.Fprintf(c.stderr, "Unable to load session file: %v\n", c.loadErr)
		c.emit(ctx, EventSessionLoad, observability.LevelWarning, map[string]any{
			"path":  c.sessionPath,
			"error": c.loadErr.Error(),
		})
		c.loadErr = nil
	} else if c.sessionPath != "" {
		c.emit(ctx, EventSessionLoad, observability.LevelVerbose, map[string]any{
			"path":  c.sessionPath,
			"lines": c.session.Len(),
		})
	}

	if rec, ok := c.editor.(lineedit.HistoryRecorder); ok {
		for _, line := range c.session.Lines() {
			if err := rec.AddHistory(line); err != nil {
				c.emit(ctx, EventError, observability.LevelWarning, map[string]any{
					"error": err.Error(),
				})
				break
			}
		}
	}

	c.emit(ctx, EventStart, observability.LevelInfo, map[string]any{
		"lines":  c.session.Len(),
		"policy": string(c.policy),
	})
}

func (c *Controller) classify(ctx context.Context, err error) StopReason {
	switch {
	case errors.Is(err, lineedit.ErrInterrupted):
		return StopInterrupt
	case errors.Is(err, io.EOF):
		return StopEndOfInput
	default:
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		c.emit(ctx, EventInputError, observability.LevelError, map[string]any{
			"error": err.Error(),
		})
		return StopInputError
	}
}

func (c *Controller) stop(ctx context.Context, result *Result) {
	if c.sessionPath != "" {
		if err := session.Save(c.sessionPath, c.session); err != nil {
			fmt.Fprintf(c.stderr, "Unable to save session file: %v\n", err)
			c.emit(ctx, EventSessionSave, observability.LevelWarning, map[string]any{
				"path":  c.sessionPath,
				"error": err.Error(),
			})
		} else {
			data := map[string]any{
				"path":  c.sessionPath,
				"lines": c.session.Len(),
			}
			if info, err := os.Stat(c.sessionPath); err == nil {
				data["size"] = humanize.Bytes(uint64(info.Size()))
			}
			c.emit(ctx, EventSessionSave, observability.LevelVerbose, data)
		}
	}

	c.emit(ctx, EventStop, observability.LevelInfo, map[string]any{
		"reason":      string(result.Reason),
		"evaluations": result.Evaluations,
		"committed":   result.Committed,
		"discarded":   result.Discarded,
	})
}

func (c *Controller) emit(ctx context.Context, typ observability.EventType, level observability.Level, data map[string]any) {
	c.observer.OnEvent(ctx, observability.Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now(),
		Source:    "repl.Controller",
		SessionID: c.session.ID(),
		Data:      data,
	})
}
