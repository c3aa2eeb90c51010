package pipeline

import "github.com/tailored-agentic-units/rscli/observability"

// Pipeline event types.
const (
	EventCompileStart    observability.EventType = "pipeline.compile.start"
	EventCompileComplete observability.EventType = "pipeline.compile.complete"
	EventRunComplete     observability.EventType = "pipeline.run.complete"
)
