// Package lineedit adapts line-input sources to the single call the REPL
// needs: read one line or report why no line is coming.
package lineedit

import "errors"

// ErrInterrupted is returned by ReadLine when the user pressed Ctrl-C.
// End of input is reported as io.EOF.
var ErrInterrupted = errors.New("interrupted")

// Editor reads one line of input per call.
type Editor interface {
	// ReadLine shows prompt and returns the next line without its newline.
	ReadLine(prompt string) (string, error)
	// Close releases the underlying input.
	Close() error
}

// HistoryRecorder is implemented by editors that keep recall history.
// The REPL records only accepted lines, so history matches the session.
type HistoryRecorder interface {
	AddHistory(line string) error
}
