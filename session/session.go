// Package session holds the accepted source lines of one REPL run and
// persists them to a plain-text session file between runs.
package session

// Session is the ordered history of accepted source lines. Lines appear in
// acceptance order and duplicates are kept. A Session is owned by a single
// REPL loop and is not safe for concurrent use.
type Session interface {
	// ID returns the unique session identifier.
	ID() string
	// Append adds an accepted line to the end of the history.
	Append(line string)
	// Lines returns a defensive copy of the history.
	Lines() []string
	// Len reports the number of accepted lines.
	Len() int
}
