package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/tailored-agentic-units/rscli/observability"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		name  string
		level observability.Level
		want  string
	}{
		{name: "trace range", level: 1, want: "TRACE"},
		{name: "verbose maps to DEBUG", level: observability.LevelVerbose, want: "DEBUG"},
		{name: "info maps to INFO", level: observability.LevelInfo, want: "INFO"},
		{name: "warning maps to WARN", level: observability.LevelWarning, want: "WARN"},
		{name: "error maps to ERROR", level: observability.LevelError, want: "ERROR"},
		{name: "fatal range", level: 21, want: "FATAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		level observability.Level
		want  slog.Level
	}{
		{level: observability.LevelVerbose, want: slog.LevelDebug},
		{level: observability.LevelInfo, want: slog.LevelInfo},
		{level: observability.LevelWarning, want: slog.LevelWarn},
		{level: observability.LevelError, want: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := tt.level.SlogLevel(); got != tt.want {
				t.Errorf("Level(%d).SlogLevel() = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestMultiObserver(t *testing.T) {
	var events1, events2 []observability.Event

	multi := observability.NewMultiObserver(
		&captureObserver{events: &events1},
		nil,
		&captureObserver{events: &events2},
	)

	multi.OnEvent(context.Background(), observability.Event{
		Type:  "repl.commit",
		Level: observability.LevelInfo,
	})

	if len(events1) != 1 || len(events2) != 1 {
		t.Fatalf("observers received %d and %d events, want 1 each", len(events1), len(events2))
	}
	if events1[0].Type != "repl.commit" {
		t.Errorf("event type = %q, want %q", events1[0].Type, "repl.commit")
	}
}

func TestSlogObserver_LevelMapping(t *testing.T) {
	tests := []struct {
		name      string
		level     observability.Level
		minLevel  slog.Level
		expectLog bool
	}{
		{name: "verbose at debug handler", level: observability.LevelVerbose, minLevel: slog.LevelDebug, expectLog: true},
		{name: "verbose at info handler", level: observability.LevelVerbose, minLevel: slog.LevelInfo, expectLog: false},
		{name: "info at info handler", level: observability.LevelInfo, minLevel: slog.LevelInfo, expectLog: true},
		{name: "warning at info handler", level: observability.LevelWarning, minLevel: slog.LevelInfo, expectLog: true},
		{name: "info at warn handler", level: observability.LevelInfo, minLevel: slog.LevelWarn, expectLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: tt.minLevel}))

			observability.NewSlogObserver(logger).OnEvent(context.Background(), observability.Event{
				Type:      "test.event",
				Level:     tt.level,
				Timestamp: time.Now(),
				Source:    "test",
			})

			if hasOutput := buf.Len() > 0; hasOutput != tt.expectLog {
				t.Errorf("log output = %v, want %v (buf: %q)", hasOutput, tt.expectLog, buf.String())
			}
		})
	}
}

func TestSlogObserver_Attributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	observability.NewSlogObserver(logger).OnEvent(context.Background(), observability.Event{
		Type:      "pipeline.compile.complete",
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "pipeline.Evaluate",
		SessionID: "abc-123",
		Data: map[string]any{
			"exit_code": 1,
			"binary":    "/tmp/rscli.out",
		},
	})

	output := buf.String()
	for _, want := range []string{
		"pipeline.compile.complete",
		"source=pipeline.Evaluate",
		"session=abc-123",
		"exit_code=1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %s", want, output)
		}
	}
	if strings.Index(output, "binary=") > strings.Index(output, "exit_code=") {
		t.Errorf("data attributes not sorted: %s", output)
	}
}

func TestSlogObserver_OmitsEmptySession(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	observability.NewSlogObserver(logger).OnEvent(context.Background(), observability.Event{
		Type:  "repl.stop",
		Level: observability.LevelInfo,
	})

	if strings.Contains(buf.String(), "session=") {
		t.Errorf("unexpected session attribute: %s", buf.String())
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		wantErr bool
	}{
		{name: "none", names: nil},
		{name: "noop", names: []string{"noop"}},
		{name: "slog", names: []string{"slog"}},
		{name: "both", names: []string{"slog", "noop"}},
		{name: "unknown fails", names: []string{"slog", "nonexistent"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, err := observability.Resolve(tt.names, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve(%q) error = %v, wantErr %v", tt.names, err, tt.wantErr)
			}
			if !tt.wantErr && obs == nil {
				t.Errorf("Resolve(%q) returned nil observer", tt.names)
			}
		})
	}
}

func TestResolve_BindsLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	obs, err := observability.Resolve([]string{"slog"}, logger)
	if err != nil {
		t.Fatal(err)
	}
	obs.OnEvent(context.Background(), observability.Event{Type: "repl.start", Level: observability.LevelInfo})

	if !strings.Contains(buf.String(), "repl.start") {
		t.Errorf("event not written to supplied logger: %q", buf.String())
	}
}

func TestRegister(t *testing.T) {
	var events []observability.Event
	observability.Register("test-capture", func(*slog.Logger) observability.Observer {
		return &captureObserver{events: &events}
	})

	obs, err := observability.Resolve([]string{"test-capture", "test-capture"}, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	obs.OnEvent(context.Background(), observability.Event{Type: "test.event"})

	if len(events) != 2 {
		t.Errorf("received %d events, want 2", len(events))
	}
}

type captureObserver struct {
	events *[]observability.Event
}

func (c *captureObserver) OnEvent(ctx context.Context, event observability.Event) {
	*c.events = append(*c.events, event)
}

func TestSessionIDContext(t *testing.T) {
	ctx := context.Background()
	if got := observability.SessionID(ctx); got != "" {
		t.Errorf("SessionID(empty ctx) = %q, want empty", got)
	}

	ctx = observability.WithSessionID(ctx, "0190-abc")
	if got := observability.SessionID(ctx); got != "0190-abc" {
		t.Errorf("SessionID() = %q, want %q", got, "0190-abc")
	}
}
