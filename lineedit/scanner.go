package lineedit

import (
	"bufio"
	"fmt"
	"io"
)

const maxLineSize = 1 << 20

// Scanner is an Editor for non-interactive input such as a pipe or a file
// redirected to stdin. It writes the prompt to out and has no history.
type Scanner struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewScanner creates a Scanner reading lines from in.
func NewScanner(in io.Reader, out io.Writer) *Scanner {
	s := bufio.NewScanner(in)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Scanner{scanner: s, out: out}
}

func (s *Scanner) ReadLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(s.out, prompt); err != nil {
		return "", err
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

func (s *Scanner) Close() error {
	return nil
}
