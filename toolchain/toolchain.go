// Package toolchain keeps named compiler profiles. A profile names the
// compiler executable, any flags placed before the source path, and the
// program wrapper its language needs.
package toolchain

import (
	"slices"

	"github.com/tailored-agentic-units/rscli/program"
)

// Toolchain describes how to turn one candidate program into a binary.
type Toolchain struct {
	Name     string
	Compiler string
	Flags    []string
	Template program.Template
}

// CompileArgs returns the compiler arguments for building src into out:
// Flags, then src, then "-o out".
func (t Toolchain) CompileArgs(src, out string) []string {
	args := slices.Clone(t.Flags)
	return append(args, src, "-o", out)
}
