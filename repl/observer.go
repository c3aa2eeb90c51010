package repl

import "github.com/tailored-agentic-units/rscli/observability"

// REPL event types emitted by the loop controller.
const (
	EventStart       observability.EventType = "repl.start"
	EventCommit      observability.EventType = "repl.commit"
	EventDiscard     observability.EventType = "repl.discard"
	EventInputError  observability.EventType = "repl.input.error"
	EventSessionLoad observability.EventType = "repl.session.load"
	EventSessionSave observability.EventType = "repl.session.save"
	EventStop        observability.EventType = "repl.stop"
	EventError       observability.EventType = "repl.error"
)
