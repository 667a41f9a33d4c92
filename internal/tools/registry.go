package tools

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/pinkpantherking/calassist/internal/logging"
)

// Handler executes one tool invocation. It matches the mcp-go server
// handler signature so the same function can back the registry and an MCP
// server.
type Handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// Registry maps tool names to their definitions and handlers. Registration
// order is preserved so that the definitions offered to the model are
// stable across runs.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	tools  map[string]registration
	logger *slog.Logger
}

type registration struct {
	tool    mcp.Tool
	handler Handler
}

// NewRegistry creates an empty registry. A nil logger falls back to
// slog.Default().
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		tools:  make(map[string]registration),
		logger: logger,
	}
}

// Register adds a tool. Re-registering a name replaces the handler but
// keeps the original position in the definition order.
func (r *Registry) Register(tool mcp.Tool, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name]; !exists {
		r.order = append(r.order, tool.Name)
	}
	r.tools[tool.Name] = registration{tool: tool, handler: handler}
}

// Definitions returns the registered tool definitions in registration order.
func (r *Registry) Definitions() []mcp.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]mcp.Tool, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].tool)
	}
	return defs
}

// Call dispatches one tool invocation. Failures never escape as errors:
// unknown tools, handler errors, and handler panics packaged by mcp-go all
// come back as an error-flagged result the model can react to.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	r.mu.RLock()
	reg, ok := r.tools[name]
	r.mu.RUnlock()

	logger := logging.WithTool(r.logger, name)

	if !ok {
		logger.Warn("tool invocation for unregistered tool")
		return mcp.NewToolResultError(fmt.Sprintf("unknown tool: %s", name))
	}

	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args

	result, err := reg.handler(ctx, request)
	if err != nil {
		logger.Error("tool invocation failed", logging.Err(err))
		return mcp.NewToolResultError(fmt.Sprintf("tool %s failed: %v", name, err))
	}
	if result == nil {
		return mcp.NewToolResultError(fmt.Sprintf("tool %s returned no result", name))
	}

	if result.IsError {
		logger.Warn("tool invocation returned error result")
	} else {
		logger.Debug("tool invocation succeeded")
	}
	return result
}

// AttachTo registers every tool with an MCP server, in registration order.
func (r *Registry) AttachTo(s *mcpserver.MCPServer) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		reg := r.tools[name]
		s.AddTool(reg.tool, mcpserver.ToolHandlerFunc(reg.handler))
	}
}

// ResultText flattens the textual content of a tool result into one string.
// Non-text content is ignored.
func ResultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	var text string
	for _, content := range result.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			if text != "" {
				text += "\n"
			}
			text += tc.Text
		}
	}
	return text
}
