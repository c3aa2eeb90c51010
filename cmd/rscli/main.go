package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/tailored-agentic-units/rscli/lineedit"
	"github.com/tailored-agentic-units/rscli/repl"
)

func main() {
	var (
		configFile   = flag.String("config", "", "Path to rscli config file, JSON or YAML (optional)")
		toolchain    = flag.String("toolchain", "", "Compiler toolchain profile, e.g. rustc or rustc-2021 (overrides config)")
		commitPolicy = flag.String("commit-policy", "", "Commit lines that compile (compile) or that also exit zero (run) (overrides config)")
		logFile      string
		logLevel     string
		logMode      string
		sessionFile  string
	)
	stringFlag(&logFile, "log-file", "f", defaultLogFile, "Specifies the log file to write events to.")
	stringFlag(&logLevel, "log-level", "l", "info", "Specifies the log level to write at: info or debug.")
	stringFlag(&logMode, "log-mode", "m", "append", "Specifies whether to append to or overwrite an existing log file: append or overwrite.")
	stringFlag(&sessionFile, "session-file", "s", "", "Specifies a file containing evaluations from a previous session. If it does not exist, it is created when the shell exits.")
	flag.Parse()

	if err := run(*configFile, *toolchain, *commitPolicy, logOptions{
		path:  logFile,
		level: logLevel,
		mode:  logMode,
	}, sessionFile); err != nil {
		fmt.Fprintf(os.Stderr, "rscli: %v\n", err)
		os.Exit(1)
	}
}

func stringFlag(p *string, name, short, value, usage string) {
	flag.StringVar(p, name, value, usage)
	flag.StringVar(p, short, value, "Shorthand for -"+name+".")
}

func run(configFile, toolchain, commitPolicy string, logOpts logOptions, sessionFile string) error {
	cfg := repl.DefaultConfig()
	if configFile != "" {
		loaded, err := repl.LoadConfig(configFile)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	if sessionFile != "" {
		cfg.Session.Path = sessionFile
	}
	if toolchain != "" {
		cfg.Pipeline.Toolchain = toolchain
	}
	if commitPolicy != "" {
		policy, err := repl.ParsePolicy(commitPolicy)
		if err != nil {
			return err
		}
		cfg.CommitPolicy = policy
	}

	logger, closeLog, err := openLogger(logOpts, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	var opts []repl.Option
	if fd := os.Stdin.Fd(); isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		term, err := lineedit.NewTerminal()
		if err != nil {
			return err
		}
		defer term.Close()
		opts = append(opts, repl.WithEditor(term))
	}

	c, err := repl.New(&cfg, opts...)
	if err != nil {
		return fmt.Errorf("failed to create repl: %w", err)
	}

	result, err := c.Run(context.Background())
	if err != nil {
		return err
	}

	logger.Debug("rscli.exit",
		"reason", string(result.Reason),
		"committed", result.Committed,
		"discarded", result.Discarded,
	)
	return nil
}
