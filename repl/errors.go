package repl

import "errors"

// ErrInvalidPolicy is returned when the configured commit policy is not one
// of the known Policy values.
var ErrInvalidPolicy = errors.New("invalid commit policy")
