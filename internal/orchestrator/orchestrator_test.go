package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinkpantherking/calassist/internal/genai"
	"github.com/pinkpantherking/calassist/internal/tools"
)

// scriptedClient returns pre-baked responses in order. The test fails the
// conversation if more rounds are requested than scripted.
type scriptedClient struct {
	responses []*genai.ChatResponse
	errs      []error
	requests  []genai.ChatRequest
}

func (c *scriptedClient) Chat(ctx context.Context, req genai.ChatRequest) (*genai.ChatResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, &genai.ModelServiceError{Op: "chat", Err: err}
	}
	i := len(c.requests)
	c.requests = append(c.requests, req)
	if i < len(c.errs) && c.errs[i] != nil {
		return nil, c.errs[i]
	}
	if i >= len(c.responses) {
		return nil, &genai.ModelServiceError{Op: "chat", Err: errors.New("script exhausted")}
	}
	return c.responses[i], nil
}

func textResponse(text string) *genai.ChatResponse {
	return &genai.ChatResponse{Kind: genai.ResponseText, Text: text}
}

func toolResponse(calls ...genai.ToolCall) *genai.ChatResponse {
	return &genai.ChatResponse{Kind: genai.ResponseToolCalls, ToolCalls: calls}
}

func echoRegistry(t *testing.T) *tools.Registry {
	t.Helper()
	reg := tools.NewRegistry(nil)
	reg.Register(
		mcp.NewTool("echo", mcp.WithDescription("Echoes its input")),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			return mcp.NewToolResultText(fmt.Sprintf("echo: %v", args["text"])), nil
		},
	)
	reg.Register(
		mcp.NewTool("always_fails", mcp.WithDescription("Fails on purpose")),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return nil, errors.New("tool exploded")
		},
	)
	return reg
}

func TestRunImmediateText(t *testing.T) {
	client := &scriptedClient{responses: []*genai.ChatResponse{
		textResponse("The meeting is at 4pm Karachi time."),
	}}
	orch := New(client, echoRegistry(t), Config{SystemInstruction: "be helpful"})

	transcript := NewTranscript()
	result, err := orch.Run(context.Background(), transcript, "When is the meeting?")
	require.NoError(t, err)

	assert.Equal(t, StateDone, result.State)
	assert.Equal(t, 1, result.Iterations)
	assert.False(t, result.Incomplete)
	assert.Equal(t, "The meeting is at 4pm Karachi time.", result.Text)

	turns := transcript.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, genai.RoleUser, turns[0].Role)
	assert.Equal(t, genai.RoleAssistant, turns[1].Role)

	// System instruction and tool definitions travel on every request.
	require.Len(t, client.requests, 1)
	assert.Equal(t, "be helpful", client.requests[0].System)
	assert.Len(t, client.requests[0].Tools, 2)
}

func TestRunToolCallThenText(t *testing.T) {
	client := &scriptedClient{responses: []*genai.ChatResponse{
		toolResponse(genai.ToolCall{Name: "echo", Arguments: map[string]any{"text": "hello"}}),
		textResponse("done"),
	}}
	orch := New(client, echoRegistry(t), Config{})

	transcript := NewTranscript()
	result, err := orch.Run(context.Background(), transcript, "say hello")
	require.NoError(t, err)

	assert.Equal(t, StateDone, result.State)
	assert.Equal(t, 2, result.Iterations)

	turns := transcript.Turns()
	// user, assistant(tool_calls), tool, assistant(text)
	require.Len(t, turns, 4)
	assert.Equal(t, genai.RoleAssistant, turns[1].Role)
	require.Len(t, turns[1].ToolCalls, 1)
	assert.Equal(t, genai.RoleTool, turns[2].Role)
	assert.Equal(t, "echo", turns[2].ToolName)
	assert.Equal(t, "echo: hello", turns[2].Content)

	// Second round-trip sees the tool result in context.
	require.Len(t, client.requests, 2)
	assert.Len(t, client.requests[1].Messages, 3)
}

func TestRunToolOrderPreserved(t *testing.T) {
	client := &scriptedClient{responses: []*genai.ChatResponse{
		toolResponse(
			genai.ToolCall{Name: "echo", Arguments: map[string]any{"text": "first"}},
			genai.ToolCall{Name: "echo", Arguments: map[string]any{"text": "second"}},
			genai.ToolCall{Name: "echo", Arguments: map[string]any{"text": "third"}},
		),
		textResponse("done"),
	}}
	orch := New(client, echoRegistry(t), Config{})

	transcript := NewTranscript()
	_, err := orch.Run(context.Background(), transcript, "echo three times")
	require.NoError(t, err)

	turns := transcript.Turns()
	require.Len(t, turns, 6)
	assert.Equal(t, "echo: first", turns[2].Content)
	assert.Equal(t, "echo: second", turns[3].Content)
	assert.Equal(t, "echo: third", turns[4].Content)
}

func TestRunBudgetExhausted(t *testing.T) {
	// The model asks for a tool on every round-trip and never answers.
	responses := make([]*genai.ChatResponse, 10)
	for i := range responses {
		responses[i] = toolResponse(genai.ToolCall{Name: "echo", Arguments: map[string]any{"text": "again"}})
	}
	client := &scriptedClient{responses: responses}
	orch := New(client, echoRegistry(t), Config{MaxIterations: 3})

	transcript := NewTranscript()
	result, err := orch.Run(context.Background(), transcript, "loop forever")
	require.NoError(t, err, "budget exhaustion is a best-effort result, not a failure")

	assert.Equal(t, StateAborted, result.State)
	assert.True(t, result.Incomplete)
	assert.Equal(t, 3, result.Iterations)
	assert.NotEmpty(t, result.Text)

	// Exactly 3 round-trips happened, then the notice was appended.
	assert.Len(t, client.requests, 3)
	turns := transcript.Turns()
	last := turns[len(turns)-1]
	assert.Equal(t, genai.RoleAssistant, last.Role)
	assert.Equal(t, result.Text, last.Content)
}

func TestRunDefaultBudget(t *testing.T) {
	responses := make([]*genai.ChatResponse, 10)
	for i := range responses {
		responses[i] = toolResponse(genai.ToolCall{Name: "echo", Arguments: map[string]any{"text": "again"}})
	}
	client := &scriptedClient{responses: responses}
	orch := New(client, echoRegistry(t), Config{})

	result, err := orch.Run(context.Background(), NewTranscript(), "loop")
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxIterations, result.Iterations)
	assert.True(t, result.Incomplete)
}

func TestRunToolErrorAbsorbed(t *testing.T) {
	client := &scriptedClient{responses: []*genai.ChatResponse{
		toolResponse(genai.ToolCall{Name: "always_fails", Arguments: map[string]any{}}),
		textResponse("I could not complete that step."),
	}}
	orch := New(client, echoRegistry(t), Config{})

	transcript := NewTranscript()
	result, err := orch.Run(context.Background(), transcript, "try it")
	require.NoError(t, err, "tool failures are data, not orchestration errors")

	assert.Equal(t, StateDone, result.State)
	turns := transcript.Turns()
	require.Len(t, turns, 4)
	assert.Equal(t, genai.RoleTool, turns[2].Role)
	assert.Contains(t, turns[2].Content, "tool exploded")
}

func TestRunUnknownToolAbsorbed(t *testing.T) {
	client := &scriptedClient{responses: []*genai.ChatResponse{
		toolResponse(genai.ToolCall{Name: "no_such_tool", Arguments: map[string]any{}}),
		textResponse("never mind"),
	}}
	orch := New(client, echoRegistry(t), Config{})

	transcript := NewTranscript()
	result, err := orch.Run(context.Background(), transcript, "use a bogus tool")
	require.NoError(t, err)
	assert.Equal(t, StateDone, result.State)

	turns := transcript.Turns()
	assert.Contains(t, turns[2].Content, "no_such_tool")
}

func TestRunModelErrorAborts(t *testing.T) {
	modelErr := &genai.ModelServiceError{Op: "chat", Err: errors.New("connection refused")}
	client := &scriptedClient{errs: []error{modelErr}}
	orch := New(client, echoRegistry(t), Config{})

	transcript := NewTranscript()
	result, err := orch.Run(context.Background(), transcript, "hello")
	require.Error(t, err)
	assert.Nil(t, result)

	var msErr *genai.ModelServiceError
	assert.ErrorAs(t, err, &msErr)

	// The user message stays on the transcript so the turn can be retried.
	require.Equal(t, 1, transcript.Len())
	assert.Equal(t, genai.RoleUser, transcript.Turns()[0].Role)
}

func TestRunCancelledContext(t *testing.T) {
	client := &scriptedClient{responses: []*genai.ChatResponse{textResponse("never reached")}}
	orch := New(client, echoRegistry(t), Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := orch.Run(ctx, NewTranscript(), "hello")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, client.requests)
}

func TestRunStepTimeout(t *testing.T) {
	slow := &slowClient{delay: 200 * time.Millisecond}
	orch := New(slow, echoRegistry(t), Config{StepTimeout: 20 * time.Millisecond})

	_, err := orch.Run(context.Background(), NewTranscript(), "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// slowClient blocks until the context expires.
type slowClient struct {
	delay time.Duration
}

func (c *slowClient) Chat(ctx context.Context, req genai.ChatRequest) (*genai.ChatResponse, error) {
	select {
	case <-time.After(c.delay):
		return &genai.ChatResponse{Kind: genai.ResponseText, Text: "too late"}, nil
	case <-ctx.Done():
		return nil, &genai.ModelServiceError{Op: "chat", Err: ctx.Err()}
	}
}

func TestTranscriptTurnsIsCopy(t *testing.T) {
	transcript := NewTranscript()
	transcript.append(genai.Message{Role: genai.RoleUser, Content: "original"})

	turns := transcript.Turns()
	turns[0].Content = "mutated"

	assert.Equal(t, "original", transcript.Turns()[0].Content)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "awaiting_model", StateAwaitingModel.String())
	assert.Equal(t, "inspecting", StateInspecting.String())
	assert.Equal(t, "executing_tools", StateExecutingTools.String())
	assert.Equal(t, "done", StateDone.String())
	assert.Equal(t, "aborted", StateAborted.String())
}
