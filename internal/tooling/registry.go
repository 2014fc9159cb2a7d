package tooling

import (
	"encoding/json"
	"fmt"

	"huemcp/internal/domain"
)

// ToolRegistry holds Tool implementations keyed by name. The protocol layer
// uses it to enumerate tool definitions for discovery and to dispatch calls.
// Registration order is preserved so discovery listings are stable.
type ToolRegistry struct {
	tools map[string]Tool
	order []string
}

// NewToolRegistry returns an empty, ready-to-use registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{tools: make(map[string]Tool)}
}

// Register adds a tool. Returns an error if the tool is nil or a tool with the
// same name is already registered.
func (r *ToolRegistry) Register(tool Tool) error {
	if tool == nil {
		return fmt.Errorf("tool must not be nil")
	}
	name := tool.Name()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q is already registered", name)
	}
	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// Get returns the tool with the given name, or an *UnknownToolError.
func (r *ToolRegistry) Get(name string) (Tool, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}
	return tool, nil
}

// List returns all registered tools in registration order.
func (r *ToolRegistry) List() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Definitions returns domain.ToolDefinition for every registered tool, in
// registration order, suitable for protocol discovery.
func (r *ToolRegistry) Definitions() []domain.ToolDefinition {
	out := make([]domain.ToolDefinition, 0, len(r.order))
	for _, t := range r.List() {
		out = append(out, domain.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: json.RawMessage(t.Definition()),
		})
	}
	return out
}

// CallTool dispatches one invocation: it resolves the tool by name and runs
// it with the raw arguments. An unregistered name fails with
// *UnknownToolError before any validation or execution happens.
func (r *ToolRegistry) CallTool(name string, args json.RawMessage) (*domain.ToolResult, error) {
	tool, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return tool.Call(args)
}
