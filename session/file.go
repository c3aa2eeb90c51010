package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Load reads a session file and splits it into lines. On failure an empty
// Session is still returned, together with an error wrapping ErrNotFound for
// a missing file or ErrLoadFailed for any other read failure. Both are
// warnings: the caller continues with the empty Session.
func Load(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewBuffer(), fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return NewBuffer(), fmt.Errorf("%w: %s: %v", ErrLoadFailed, path, err)
	}
	return FromLines(Split(string(data))), nil
}

// Split breaks session file contents into lines. CRLF endings and a single
// trailing newline are tolerated; empty content yields no lines.
func Split(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// Save writes the newline-joined history to path, replacing any prior
// contents. The write goes through a temp file in the same directory and is
// renamed into place, so a failed save leaves the previous file intact.
func Save(path string, s Session) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, path, err)
	}

	tmp, err := os.CreateTemp(dir, ".rscli-session-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(strings.Join(s.Lines(), "\n")); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, path, err)
	}

	return nil
}
