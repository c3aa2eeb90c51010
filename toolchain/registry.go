package toolchain

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/tailored-agentic-units/rscli/program"
)

// Default is the toolchain used when configuration does not name one.
const Default = "rustc"

type registry struct {
	entries map[string]Toolchain
	mu      sync.RWMutex
}

var register = &registry{
	entries: map[string]Toolchain{
		"rustc": {
			Name:     "rustc",
			Compiler: "rustc",
			Template: program.Rust,
		},
		"rustc-2021": {
			Name:     "rustc-2021",
			Compiler: "rustc",
			Flags:    []string{"--edition", "2021"},
			Template: program.Rust,
		},
	},
}

// Register adds a new toolchain to the global registry.
// Returns ErrAlreadyExists if the name is taken; use Replace to update it.
func Register(tc Toolchain) error {
	if tc.Name == "" {
		return ErrEmptyName
	}

	register.mu.Lock()
	defer register.mu.Unlock()

	if _, exists := register.entries[tc.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, tc.Name)
	}

	register.entries[tc.Name] = clone(tc)
	return nil
}

// Replace updates an existing toolchain.
// Returns ErrNotFound if no toolchain with the given name is registered.
func Replace(tc Toolchain) error {
	if tc.Name == "" {
		return ErrEmptyName
	}

	register.mu.Lock()
	defer register.mu.Unlock()

	if _, exists := register.entries[tc.Name]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, tc.Name)
	}

	register.entries[tc.Name] = clone(tc)
	return nil
}

// Get retrieves a toolchain by name.
func Get(name string) (Toolchain, error) {
	register.mu.RLock()
	defer register.mu.RUnlock()

	tc, exists := register.entries[name]
	if !exists {
		return Toolchain{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return clone(tc), nil
}

// List returns all registered toolchains sorted by name.
func List() []Toolchain {
	register.mu.RLock()
	defer register.mu.RUnlock()

	list := make([]Toolchain, 0, len(register.entries))
	for _, tc := range register.entries {
		list = append(list, clone(tc))
	}
	slices.SortFunc(list, func(a, b Toolchain) int {
		return strings.Compare(a.Name, b.Name)
	})
	return list
}

func clone(tc Toolchain) Toolchain {
	tc.Flags = slices.Clone(tc.Flags)
	return tc
}
