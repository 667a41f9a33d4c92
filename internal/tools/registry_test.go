package tools

import (
	"context"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDispatch(t *testing.T) {
	r := NewRegistry(nil)

	tool := mcp.NewTool("echo",
		mcp.WithDescription("Echoes its message argument"),
		mcp.WithString("message", mcp.Required()),
	)
	r.Register(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		msg, _ := args["message"].(string)
		return mcp.NewToolResultText("echo: " + msg), nil
	})

	result := r.Call(context.Background(), "echo", map[string]any{"message": "hello"})
	require.NotNil(t, result)
	assert.False(t, result.IsError)
	assert.Equal(t, "echo: hello", ResultText(result))
}

func TestRegistryUnknownTool(t *testing.T) {
	r := NewRegistry(nil)

	result := r.Call(context.Background(), "missing", nil)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Contains(t, ResultText(result), "unknown tool: missing")
}

func TestRegistryHandlerErrorBecomesResult(t *testing.T) {
	r := NewRegistry(nil)

	tool := mcp.NewTool("boom", mcp.WithDescription("Always fails"))
	r.Register(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, fmt.Errorf("backend unavailable")
	})

	result := r.Call(context.Background(), "boom", nil)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Contains(t, ResultText(result), "backend unavailable")
}

func TestRegistryDefinitionsOrder(t *testing.T) {
	r := NewRegistry(nil)

	names := []string{"gamma", "alpha", "beta"}
	for _, name := range names {
		r.Register(mcp.NewTool(name), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("ok"), nil
		})
	}

	defs := r.Definitions()
	require.Len(t, defs, 3)
	for i, name := range names {
		assert.Equal(t, name, defs[i].Name)
	}

	// Re-registration keeps the original position.
	r.Register(mcp.NewTool("alpha"), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("replaced"), nil
	})
	defs = r.Definitions()
	require.Len(t, defs, 3)
	assert.Equal(t, "alpha", defs[1].Name)

	result := r.Call(context.Background(), "alpha", nil)
	assert.Equal(t, "replaced", ResultText(result))
}

func TestResultTextMultipleBlocks(t *testing.T) {
	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent("first"),
			mcp.NewTextContent("second"),
		},
	}
	assert.Equal(t, "first\nsecond", ResultText(result))
	assert.Equal(t, "", ResultText(nil))
}
