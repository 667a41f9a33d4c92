package genai

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is a single entry in the conversation context sent to the model.
// Tool results travel as RoleTool messages carrying the originating tool
// name.
type Message struct {
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	ToolName  string     `json:"tool_name,omitempty"`
}

// ToolCall is a model-issued request to execute one registered tool.
type ToolCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ChatRequest carries everything the model needs for one round-trip.
type ChatRequest struct {
	// System is the system instruction; sent as the first message.
	System string
	// Tools are the registered tool definitions offered to the model.
	Tools []mcp.Tool
	// Messages is the conversation context, oldest first.
	Messages []Message
}

// ResponseKind tags a ChatResponse as either plain text or tool calls.
type ResponseKind int

const (
	// ResponseText means the model produced a final textual answer.
	ResponseText ResponseKind = iota
	// ResponseToolCalls means the model requested one or more tool
	// invocations and expects their results before answering.
	ResponseToolCalls
)

// ChatResponse is the tagged result of one model round-trip. Exactly one of
// Text or ToolCalls is meaningful, selected by Kind.
type ChatResponse struct {
	Kind      ResponseKind
	Text      string
	ToolCalls []ToolCall
}

// Client is the conversational model service abstraction consumed by the
// orchestrator.
type Client interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ModelServiceError indicates the model connection itself failed or returned
// a malformed response. Unlike individual tool failures, this aborts the
// orchestration turn and is reported to the caller.
type ModelServiceError struct {
	Op  string
	Err error
}

func (e *ModelServiceError) Error() string {
	return fmt.Sprintf("model service %s failed: %v", e.Op, e.Err)
}

func (e *ModelServiceError) Unwrap() error {
	return e.Err
}
