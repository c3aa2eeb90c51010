package observability

import (
	"fmt"
	"log/slog"
	"sync"
)

// Factory builds an Observer bound to the logger chosen by the CLI.
type Factory func(logger *slog.Logger) Observer

var (
	factories = map[string]Factory{
		"noop": func(*slog.Logger) Observer { return NoOpObserver{} },
		"slog": func(logger *slog.Logger) Observer { return NewSlogObserver(logger) },
	}
	mutex sync.RWMutex
)

// Register adds or replaces a named observer factory.
// Pre-registered factories: "noop" and "slog".
func Register(name string, factory Factory) {
	mutex.Lock()
	defer mutex.Unlock()

	factories[name] = factory
}

// Resolve builds the named observers against logger and combines them.
// A single name returns that observer directly; no names returns a
// NoOpObserver.
func Resolve(names []string, logger *slog.Logger) (Observer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	mutex.RLock()
	defer mutex.RUnlock()

	observers := make([]Observer, 0, len(names))
	for _, name := range names {
		factory, exists := factories[name]
		if !exists {
			return nil, fmt.Errorf("unknown observer: %s", name)
		}
		observers = append(observers, factory(logger))
	}

	switch len(observers) {
	case 0:
		return NoOpObserver{}, nil
	case 1:
		return observers[0], nil
	default:
		return NewMultiObserver(observers...), nil
	}
}
