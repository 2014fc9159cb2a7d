package domain

import (
	"encoding/json"
	"strings"
)

// =============================================================================
// Core Configuration
// =============================================================================

// Config holds the fixed runtime settings the command builder depends on.
// It is constructed once at startup and read-only afterwards.
type Config struct {
	Runtime   string `yaml:"runtime"`   // Container runtime binary, e.g. "docker"
	Image     string `yaml:"image"`     // openhue CLI image reference
	ConfigDir string `yaml:"configDir"` // Host directory holding the CLI's bridge credentials
	MountPath string `yaml:"mountPath"` // Path the CLI expects its config at inside the container
}

// =============================================================================
// Tool Domain
// =============================================================================

// ToolDefinition describes one tool for protocol discovery: its name, a
// human-readable description, and the JSON Schema of its input.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// ToolResult is the outcome of a successful tool call. Data carries the text
// payload returned over the protocol; Metadata is diagnostic only.
type ToolResult struct {
	Data     string
	Metadata map[string]string
}

// ExecutionResult captures one subprocess run of the external CLI.
type ExecutionResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Failed reports whether the run must be treated as an external failure:
// a non-zero exit or any diagnostic text on stderr.
func (r ExecutionResult) Failed() bool {
	return r.ExitCode != 0 || strings.TrimSpace(r.Stderr) != ""
}
