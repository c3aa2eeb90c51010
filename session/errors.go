package session

import "errors"

// Sentinel errors for session file operations.
var (
	ErrNotFound   = errors.New("session file not found")
	ErrLoadFailed = errors.New("session load failed")
	ErrSaveFailed = errors.New("session save failed")
)
