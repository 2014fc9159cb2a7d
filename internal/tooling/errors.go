package tooling

import (
	"fmt"
	"strings"
)

// FieldViolation is one schema constraint broken by the caller's arguments.
type FieldViolation struct {
	Path   string // JSON pointer into the argument object, "" for object-level violations
	Reason string
}

func (v FieldViolation) String() string {
	if v.Path == "" {
		return v.Reason
	}
	return fmt.Sprintf("%s: %s", v.Path, v.Reason)
}

// ValidationError aggregates every violation found in one argument bag.
// All violations are collected before reporting; the validator never stops
// at the first offending field.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return "invalid arguments: " + strings.Join(parts, "; ")
}

// UnknownToolError reports a tool name absent from the registry.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %q", e.Name)
}

// ExternalError reports a CLI run that completed but failed: a non-zero exit
// or diagnostic text on stderr. The stderr text is authoritative output from
// the lighting tool and is carried verbatim, never re-interpreted.
type ExternalError struct {
	Stderr   string
	ExitCode int
}

func (e *ExternalError) Error() string {
	diag := strings.TrimSpace(e.Stderr)
	if diag == "" {
		return fmt.Sprintf("openhue command failed with exit status %d", e.ExitCode)
	}
	return fmt.Sprintf("openhue command failed: %s", diag)
}

// SpawnError reports a subprocess that could not start at all, which points
// at the environment (missing container runtime) rather than the request.
type SpawnError struct {
	Err error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start container runtime: %v", e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }
