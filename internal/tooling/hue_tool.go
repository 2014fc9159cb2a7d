package tooling

import (
	"encoding/json"
	"fmt"
	"strings"

	"huemcp/internal/domain"
)

// =============================================================================
// Tool Inputs
// =============================================================================

// GetLightsInput selects which lights to read.
type GetLightsInput struct {
	LightID string `json:"lightId,omitempty" jsonschema:"minLength=1,description=Identifier or name of one light to read"`
	Room    string `json:"room,omitempty" jsonschema:"minLength=1,description=Only include lights in this room"`
}

// LightActionInput controls one light.
type LightActionInput struct {
	Target      string   `json:"target" jsonschema:"minLength=1,description=Name or identifier of the light"`
	Action      string   `json:"action" jsonschema:"enum=on,enum=off,description=Whether to turn the light on or off"`
	Brightness  *float64 `json:"brightness,omitempty" jsonschema:"minimum=0,maximum=100,description=Brightness percentage between 0 and 100"`
	Color       string   `json:"color,omitempty" jsonschema:"minLength=1,description=Color name understood by the openhue CLI"`
	Temperature *float64 `json:"temperature,omitempty" jsonschema:"minimum=153,maximum=500,description=Color temperature in Mirek between 153 and 500"`
}

// RoomActionInput controls every light in a room. Same shape as
// LightActionInput; the target names a room instead of a light.
type RoomActionInput struct {
	Target      string   `json:"target" jsonschema:"minLength=1,description=Name or identifier of the room"`
	Action      string   `json:"action" jsonschema:"enum=on,enum=off,description=Whether to turn the room's lights on or off"`
	Brightness  *float64 `json:"brightness,omitempty" jsonschema:"minimum=0,maximum=100,description=Brightness percentage between 0 and 100"`
	Color       string   `json:"color,omitempty" jsonschema:"minLength=1,description=Color name understood by the openhue CLI"`
	Temperature *float64 `json:"temperature,omitempty" jsonschema:"minimum=153,maximum=500,description=Color temperature in Mirek between 153 and 500"`
}

// GetRoomsInput selects which rooms to read.
type GetRoomsInput struct {
	RoomID string `json:"roomId,omitempty" jsonschema:"minLength=1,description=Identifier or name of one room to read"`
}

// GetScenesInput selects which scenes to list.
type GetScenesInput struct {
	Room string `json:"room,omitempty" jsonschema:"minLength=1,description=Only include scenes of this room"`
}

// SceneActionInput activates a scene.
type SceneActionInput struct {
	Name string `json:"name" jsonschema:"minLength=1,description=Name of the scene to activate"`
	Room string `json:"room,omitempty" jsonschema:"minLength=1,description=Room the scene belongs to"`
	Mode string `json:"mode,omitempty" jsonschema:"enum=active,enum=dynamic,enum=static,description=Activation mode for the scene"`
}

// =============================================================================
// Tool Skeleton
// =============================================================================

// responder shapes one successful execution into the protocol payload.
type responder func(res domain.ExecutionResult) string

// runFunc unmarshals validated arguments and produces the openhue subcommand
// plus the responder for its output. It runs only after schema validation,
// so it never re-checks constraints.
type runFunc func(args json.RawMessage) (subcommand string, respond responder, err error)

// hueToolUnmarshalFunc is the JSON unmarshaler used by the run funcs.
// Package-level so tests can inject a failing unmarshaler to cover the
// defense-in-depth error path.
var hueToolUnmarshalFunc = json.Unmarshal

// HueTool is one table entry of the tool catalog: a name, a description, a
// generated schema, and the run func that maps validated arguments to an
// openhue subcommand. Every tool shares the same call pipeline: validate,
// build, execute, respond.
type HueTool struct {
	name        string
	description string
	schema      string
	builder     *CommandBuilder
	executor    *Executor
	run         runFunc
}

// Name returns the tool name used in tool-calling.
func (t *HueTool) Name() string { return t.name }

// Description returns a human-readable description for the client.
func (t *HueTool) Description() string { return t.description }

// Definition returns the JSON Schema for the tool's input.
func (t *HueTool) Definition() string { return t.schema }

// Call validates the JSON arguments against the schema, builds the container
// command, executes it, and shapes the result.
func (t *HueTool) Call(args json.RawMessage) (*domain.ToolResult, error) {
	if err := ValidateAgainstSchema(args, t.schema); err != nil {
		return nil, err
	}

	subcommand, respond, err := t.run(args)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}

	command := t.builder.Wrap(subcommand)
	res, err := t.executor.Execute(command)
	if err != nil {
		return nil, err
	}

	return &domain.ToolResult{
		Data: respond(res),
		Metadata: map[string]string{
			"command":   command,
			"exit_code": fmt.Sprintf("%d", res.ExitCode),
		},
	}, nil
}

// =============================================================================
// Tool Table
// =============================================================================

// NewHueTools builds the fixed tool catalog for the given config and runner.
// Adding a tool means adding one entry here.
func NewHueTools(cfg domain.Config, runner CommandRunner) []Tool {
	builder := NewCommandBuilder(cfg)
	executor := NewExecutor(runner)

	entry := func(name, description string, input interface{}, run runFunc) *HueTool {
		return &HueTool{
			name:        name,
			description: description,
			schema:      GenerateSchema(input),
			builder:     builder,
			executor:    executor,
			run:         run,
		}
	}

	return []Tool{
		entry("get-lights",
			"Lists Hue lights and their state as JSON, optionally one light or one room's lights",
			GetLightsInput{},
			func(args json.RawMessage) (string, responder, error) {
				var in GetLightsInput
				if err := hueToolUnmarshalFunc(args, &in); err != nil {
					return "", nil, err
				}
				return buildGetLights(in), passthrough, nil
			}),
		entry("control-light",
			"Turns a Hue light on or off, optionally setting brightness, color, or color temperature",
			LightActionInput{},
			func(args json.RawMessage) (string, responder, error) {
				var in LightActionInput
				if err := hueToolUnmarshalFunc(args, &in); err != nil {
					return "", nil, err
				}
				msg := fmt.Sprintf("Light %q turned %s", in.Target, in.Action)
				return buildSetCommand("light", in.Target, in.Action, in.Brightness, in.Color, in.Temperature), confirm(msg), nil
			}),
		entry("get-rooms",
			"Lists Hue rooms and their state as JSON, optionally one room",
			GetRoomsInput{},
			func(args json.RawMessage) (string, responder, error) {
				var in GetRoomsInput
				if err := hueToolUnmarshalFunc(args, &in); err != nil {
					return "", nil, err
				}
				return buildGetRooms(in), passthrough, nil
			}),
		entry("control-room",
			"Turns every light in a Hue room on or off, optionally setting brightness, color, or color temperature",
			RoomActionInput{},
			func(args json.RawMessage) (string, responder, error) {
				var in RoomActionInput
				if err := hueToolUnmarshalFunc(args, &in); err != nil {
					return "", nil, err
				}
				msg := fmt.Sprintf("Room %q turned %s", in.Target, in.Action)
				return buildSetCommand("room", in.Target, in.Action, in.Brightness, in.Color, in.Temperature), confirm(msg), nil
			}),
		entry("get-scenes",
			"Lists Hue scenes as JSON, optionally only the scenes of one room",
			GetScenesInput{},
			func(args json.RawMessage) (string, responder, error) {
				var in GetScenesInput
				if err := hueToolUnmarshalFunc(args, &in); err != nil {
					return "", nil, err
				}
				return buildGetScenes(in), passthrough, nil
			}),
		entry("activate-scene",
			"Activates a Hue scene by name, optionally scoped to a room and with an activation mode",
			SceneActionInput{},
			func(args json.RawMessage) (string, responder, error) {
				var in SceneActionInput
				if err := hueToolUnmarshalFunc(args, &in); err != nil {
					return "", nil, err
				}
				msg := fmt.Sprintf("Scene %q activated", in.Name)
				if in.Mode != "" {
					msg = fmt.Sprintf("Scene %q activated with %s mode", in.Name, in.Mode)
				}
				return buildActivateScene(in), confirm(msg), nil
			}),
	}
}

// passthrough returns the CLI's stdout verbatim; the JSON it emits for get
// commands is forwarded opaquely, not re-parsed.
func passthrough(res domain.ExecutionResult) string { return res.Stdout }

// confirm discards the CLI output and returns a fixed confirmation message.
func confirm(msg string) responder {
	return func(domain.ExecutionResult) string { return msg }
}

// =============================================================================
// Subcommand Builders
// =============================================================================

func buildGetLights(in GetLightsInput) string {
	parts := []string{"get", "light"}
	if in.LightID != "" {
		parts = append(parts, quoteArg(in.LightID))
	}
	if in.Room != "" {
		parts = append(parts, "--room", quoteArg(in.Room))
	}
	parts = append(parts, "--json")
	return strings.Join(parts, " ")
}

func buildGetRooms(in GetRoomsInput) string {
	parts := []string{"get", "room"}
	if in.RoomID != "" {
		parts = append(parts, quoteArg(in.RoomID))
	}
	parts = append(parts, "--json")
	return strings.Join(parts, " ")
}

func buildGetScenes(in GetScenesInput) string {
	parts := []string{"get", "scene"}
	if in.Room != "" {
		parts = append(parts, "--room", quoteArg(in.Room))
	}
	parts = append(parts, "--json")
	return strings.Join(parts, " ")
}

// buildSetCommand serializes a light or room action. Optional flags are
// appended in a fixed order: brightness, color, temperature.
func buildSetCommand(noun, target, action string, brightness *float64, color string, temperature *float64) string {
	parts := []string{"set", noun, quoteArg(target), "--" + action}
	if brightness != nil {
		parts = append(parts, "--brightness", formatNumber(*brightness))
	}
	if color != "" {
		parts = append(parts, "--color", quoteArg(color))
	}
	if temperature != nil {
		parts = append(parts, "--temperature", formatNumber(*temperature))
	}
	return strings.Join(parts, " ")
}

func buildActivateScene(in SceneActionInput) string {
	parts := []string{"set", "scene", quoteArg(in.Name)}
	if in.Room != "" {
		parts = append(parts, "--room", quoteArg(in.Room))
	}
	if in.Mode != "" {
		parts = append(parts, "--action", in.Mode)
	}
	return strings.Join(parts, " ")
}
