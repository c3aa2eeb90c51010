package toolchain

import "errors"

// Sentinel errors for the toolchain registry.
var (
	ErrNotFound      = errors.New("toolchain not found")
	ErrAlreadyExists = errors.New("toolchain already registered")
	ErrEmptyName     = errors.New("toolchain name is empty")
)
