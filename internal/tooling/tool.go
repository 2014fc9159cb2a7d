package tooling

import (
	"encoding/json"

	"huemcp/internal/domain"
)

// Tool is one externally-invocable operation. Its input is described by a
// JSON Schema generated from a Go struct via invopop/jsonschema; the same
// schema string serves protocol discovery and argument validation, so the
// two cannot drift.
type Tool interface {
	// Name returns the unique tool name used in tool-calling (e.g. "get-lights").
	Name() string
	// Description returns a human-readable description for the client.
	Description() string
	// Definition returns the JSON Schema string for the tool's input struct.
	Definition() string
	// Call executes the tool with the given JSON arguments.
	// Implementations must validate args against the schema before execution.
	Call(args json.RawMessage) (*domain.ToolResult, error)
}
