// Package program builds the candidate source text compiled on every REPL
// iteration: a fixed wrapper around the accepted history plus one new line.
package program

import "strings"

// Template is the fixed wrapper that turns a list of statements into one
// compilable unit with a single entry point.
type Template struct {
	Prelude  string
	Epilogue string
}

// Rust wraps statements in a main function and silences unused-code lints,
// so a history of bare let bindings does not drown every compile in warnings.
var Rust = Template{
	Prelude:  "#[allow(unused)]\nfn main() {\n",
	Epilogue: "\n}",
}

// Synthesize returns Prelude + history joined by newlines + "\n" + line +
// Epilogue. The output depends only on its inputs, so identical history and
// line always produce byte-identical text.
func Synthesize(t Template, history []string, line string) string {
	var b strings.Builder
	b.Grow(len(t.Prelude) + len(t.Epilogue) + len(line) + 1 + size(history))

	b.WriteString(t.Prelude)
	for i, h := range history {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(h)
	}
	b.WriteByte('\n')
	b.WriteString(line)
	b.WriteString(t.Epilogue)
	return b.String()
}

func size(lines []string) int {
	n := 0
	for _, l := range lines {
		n += len(l) + 1
	}
	return n
}
