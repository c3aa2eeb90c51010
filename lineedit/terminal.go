package lineedit

import (
	"errors"
	"fmt"

	"github.com/chzyer/readline"
)

// Terminal is an Editor backed by readline, with cursor movement and
// arrow-key recall. Readline's automatic history is disabled; callers feed
// it accepted lines through AddHistory.
type Terminal struct {
	rl *readline.Instance
}

// NewTerminal opens a readline editor on the process terminal.
func NewTerminal() (*Terminal, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 "> ",
		InterruptPrompt:        "^C",
		EOFPrompt:              "^D",
		DisableAutoSaveHistory: true,
		HistorySearchFold:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}

	return &Terminal{rl: rl}, nil
}

func (t *Terminal) ReadLine(prompt string) (string, error) {
	t.rl.SetPrompt(prompt)
	line, err := t.rl.Readline()
	return line, translate(err)
}

func (t *Terminal) AddHistory(line string) error {
	if err := t.rl.SaveHistory(line); err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	return nil
}

func (t *Terminal) Close() error {
	return t.rl.Close()
}

func translate(err error) error {
	if errors.Is(err, readline.ErrInterrupt) {
		return ErrInterrupted
	}
	return err
}
