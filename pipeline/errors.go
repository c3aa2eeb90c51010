package pipeline

import "errors"

// ErrEnvironment marks failures of the toolchain environment itself: the
// source file could not be written, a subprocess could not be started, or
// captured output could not be relayed. These are not recoverable by
// changing the input line.
var ErrEnvironment = errors.New("toolchain environment failure")
