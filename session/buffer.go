package session

import (
	"slices"

	"github.com/google/uuid"
)

type buffer struct {
	id    string
	lines []string
}

// NewBuffer creates an empty in-memory Session with a UUIDv7 identifier.
func NewBuffer() Session {
	return FromLines(nil)
}

// FromLines creates a Session seeded with previously accepted lines.
func FromLines(lines []string) Session {
	return &buffer{
		id:    uuid.Must(uuid.NewV7()).String(),
		lines: slices.Clone(lines),
	}
}

func (b *buffer) ID() string {
	return b.id
}

func (b *buffer) Append(line string) {
	b.lines = append(b.lines, line)
}

func (b *buffer) Lines() []string {
	return slices.Clone(b.lines)
}

func (b *buffer) Len() int {
	return len(b.lines)
}
