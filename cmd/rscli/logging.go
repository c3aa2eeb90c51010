package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const defaultLogFile = "~/.rscli.log"

type logOptions struct {
	path  string
	level string // info or debug
	mode  string // append or overwrite
}

// openLogger opens the log file and returns a text logger writing to it,
// together with a function that closes the file. Invalid options are errors.
// A log file that cannot be opened is reported on warn and logging is
// discarded.
func openLogger(opts logOptions, warn io.Writer) (*slog.Logger, func() error, error) {
	var level slog.Level
	switch opts.level {
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		return nil, nil, fmt.Errorf("invalid log level %q: want info or debug", opts.level)
	}

	flags := os.O_CREATE | os.O_WRONLY
	switch opts.mode {
	case "append":
		flags |= os.O_APPEND
	case "overwrite":
		flags |= os.O_TRUNC
	default:
		return nil, nil, fmt.Errorf("invalid log mode %q: want append or overwrite", opts.mode)
	}

	path, err := expandHome(opts.path)
	if err != nil {
		return discardLogger(warn, err)
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return discardLogger(warn, err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: level,
	}))
	return logger, f.Close, nil
}

func discardLogger(warn io.Writer, err error) (*slog.Logger, func() error, error) {
	fmt.Fprintf(warn, "Unable to open log file, logging disabled: %v\n", err)
	return slog.New(slog.DiscardHandler), func() error { return nil }, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
