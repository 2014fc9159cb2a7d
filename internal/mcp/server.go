// Package mcp exposes the tool registry over the Model Context Protocol
// using a stdio transport. It is the protocol entry point: tools/list
// returns the registry's definitions verbatim, and tools/call dispatches
// through the registry, translating every failure kind into a protocol
// error result instead of letting it escape.
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"huemcp/internal/tooling"
)

// serverName and serverVersion identify this server during the MCP handshake.
const (
	serverName    = "huemcp"
	serverVersion = "1.0.0"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a structured logger for the Server. If l is nil it is
// ignored and slog.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// Server wraps the MCP server with the Hue tool registry.
type Server struct {
	mcpServer *server.MCPServer
	registry  *tooling.ToolRegistry
	logger    *slog.Logger
}

// NewServer creates an MCP server exposing every tool in the registry.
func NewServer(registry *tooling.ToolRegistry, opts ...Option) *Server {
	s := &Server{registry: registry}
	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	for _, def := range registry.Definitions() {
		tool := mcplib.NewToolWithRawSchema(def.Name, def.Description, def.InputSchema)
		s.mcpServer.AddTool(tool, s.handleCall(def.Name))
	}

	return s
}

// handleCall returns the transport handler for one tool. The handler is
// deliberately thin: dispatch happens in the registry so the same path is
// exercised with or without a transport in front of it.
func (s *Server) handleCall(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args, err := encodeArguments(req.GetArguments())
		if err != nil {
			s.log().Error("encode arguments", "tool", name, "error", err)
			return mcplib.NewToolResultError(err.Error()), nil
		}

		result, err := s.registry.CallTool(name, args)
		if err != nil {
			s.log().Error("tool call failed", "tool", name, "error", err)
			return mcplib.NewToolResultError(err.Error()), nil
		}

		s.log().Info("tool call succeeded", "tool", name)
		return mcplib.NewToolResultText(result.Data), nil
	}
}

// ServeStdio runs the server over stdin/stdout until the client disconnects.
// The duplex stream carries one request at a time; each call suspends on its
// subprocess and no request outlives the transport loop that received it.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// encodeArguments re-encodes the transport's argument map as a JSON object
// for schema validation. A call with no arguments validates as an empty
// object, not JSON null.
func encodeArguments(args map[string]any) (json.RawMessage, error) {
	if len(args) == 0 {
		return json.RawMessage(`{}`), nil
	}
	return json.Marshal(args)
}
