package session_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tailored-agentic-units/rscli/session"
)

func TestLoad_MissingFile(t *testing.T) {
	s, err := session.Load(filepath.Join(t.TempDir(), "nonexistent.rs"))
	if !errors.Is(err, session.ErrNotFound) {
		t.Errorf("Load() error = %v, want %v", err, session.ErrNotFound)
	}
	if errors.Is(err, session.ErrLoadFailed) {
		t.Errorf("Load() error = %v, missing file reported as read failure", err)
	}
	if s == nil {
		t.Fatal("Load() returned nil session for missing file")
	}
	if s.Len() != 0 {
		t.Errorf("Load() returned %d lines, want 0", s.Len())
	}
}

func TestLoad_Unreadable(t *testing.T) {
	// A directory cannot be read as a file.
	s, err := session.Load(t.TempDir())
	if !errors.Is(err, session.ErrLoadFailed) {
		t.Errorf("Load() error = %v, want %v", err, session.ErrLoadFailed)
	}
	if s == nil {
		t.Fatal("Load() returned nil session on failure")
	}
	if s.Len() != 0 {
		t.Errorf("Load() returned %d lines, want 0", s.Len())
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "empty", content: "", want: nil},
		{name: "single line", content: "let x = 5;", want: []string{"let x = 5;"}},
		{name: "multiple lines", content: "a\nb\nc", want: []string{"a", "b", "c"}},
		{name: "trailing newline", content: "a\nb\n", want: []string{"a", "b"}},
		{name: "crlf", content: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "interior blank line kept", content: "a\n\nb", want: []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := session.Split(tt.content)
			if len(got) != len(tt.want) {
				t.Fatalf("Split(%q) = %q, want %q", tt.content, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Split(%q)[%d] = %q, want %q", tt.content, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSave_WritesJoinedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.rs")
	s := session.FromLines([]string{"let x = 5;", `println!("{}", x);`})

	if err := session.Save(path, s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "let x = 5;\nprintln!(\"{}\", x);"
	if string(data) != want {
		t.Errorf("file content = %q, want %q", string(data), want)
	}
}

func TestSave_ReplacesPriorContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.rs")
	if err := os.WriteFile(path, []byte("old line one\nold line two\nold line three"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := session.Save(path, session.FromLines([]string{"new"})); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Errorf("file content = %q, want %q", string(data), "new")
	}
}

func TestSave_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.rs")

	if err := session.Save(path, session.FromLines([]string{"let a = 1;"})); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("session file not created: %v", err)
	}
}

func TestSave_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.rs")

	if err := session.Save(path, session.FromLines([]string{"let a = 1;"})); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries in dir, want 1", len(entries))
	}
}

func TestSave_Failure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := session.FromLines([]string{"let a = 1;"})
	err := session.Save(filepath.Join(blocker, "session.rs"), s)
	if !errors.Is(err, session.ErrSaveFailed) {
		t.Errorf("Save() error = %v, want %v", err, session.ErrSaveFailed)
	}
	if s.Len() != 1 {
		t.Errorf("in-memory session changed after failed save: %d lines", s.Len())
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.rs")
	want := []string{
		"let x = 5;",
		`println!("{}", x);`,
		"let v = vec![1, 2, 3];",
		"let x = 5;",
	}

	if err := session.Save(path, session.FromLines(want)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := session.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got := loaded.Lines()
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSaveLoad_EmptySession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.rs")

	if err := session.Save(path, session.NewBuffer()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := session.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Len() != 0 {
		t.Errorf("got %d lines, want 0", loaded.Len())
	}
}
