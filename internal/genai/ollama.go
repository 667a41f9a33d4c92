package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the local Ollama API endpoint.
const DefaultBaseURL = "http://localhost:11434/api"

// DefaultTemperature keeps scheduling answers deterministic; the assistant
// is doing arithmetic, not creative writing.
const DefaultTemperature = 0.1

// OllamaClient talks to an Ollama server's chat API with function-calling
// tools enabled.
type OllamaClient struct {
	baseURL     string
	httpClient  *http.Client
	model       string
	temperature float32
}

// ollamaMessage is the wire form of a conversation message.
type ollamaMessage struct {
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	ToolCalls []ollamaToolCall `json:"tool_calls,omitempty"`
	ToolName  string           `json:"tool_name,omitempty"`
}

// ollamaToolCall is the wire form of a model-issued tool call.
type ollamaToolCall struct {
	Function struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	} `json:"function"`
}

// ollamaTool is the wire form of a tool definition.
type ollamaTool struct {
	Type     string `json:"type"`
	Function struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Parameters  json.RawMessage `json:"parameters"`
	} `json:"function"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Tools    []ollamaTool    `json:"tools,omitempty"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature,omitempty"`
}

type ollamaChatResponse struct {
	Message *ollamaMessage `json:"message"`
	Done    bool           `json:"done"`
}

// NewOllamaClient creates a client for a local or remote Ollama server.
// An empty baseURL selects the default local endpoint.
func NewOllamaClient(model, baseURL string) *OllamaClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OllamaClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute, // generations can be slow on CPU
		},
		model:       model,
		temperature: DefaultTemperature,
	}
}

// WithTemperature overrides the sampling temperature.
func (c *OllamaClient) WithTemperature(t float32) *OllamaClient {
	c.temperature = t
	return c
}

// Chat performs one model round-trip. The tagged response kind is decided
// here: a reply carrying tool calls is ResponseToolCalls, anything else is
// ResponseText.
func (c *OllamaClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	wireReq := ollamaChatRequest{
		Model:    c.model,
		Messages: toWireMessages(req),
		Stream:   false,
		Options:  ollamaOptions{Temperature: c.temperature},
	}

	for _, tool := range req.Tools {
		schema, err := json.Marshal(tool.InputSchema)
		if err != nil {
			return nil, &ModelServiceError{Op: "chat", Err: fmt.Errorf("marshal schema for tool %s: %w", tool.Name, err)}
		}
		wt := ollamaTool{Type: "function"}
		wt.Function.Name = tool.Name
		wt.Function.Description = tool.Description
		wt.Function.Parameters = schema
		wireReq.Tools = append(wireReq.Tools, wt)
	}

	body, err := json.Marshal(wireReq)
	if err != nil {
		return nil, &ModelServiceError{Op: "chat", Err: fmt.Errorf("marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, &ModelServiceError{Op: "chat", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &ModelServiceError{Op: "chat", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slurp, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &ModelServiceError{
			Op:  "chat",
			Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(slurp)),
		}
	}

	var wireResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&wireResp); err != nil {
		return nil, &ModelServiceError{Op: "chat", Err: fmt.Errorf("decode response: %w", err)}
	}
	if wireResp.Message == nil {
		return nil, &ModelServiceError{Op: "chat", Err: fmt.Errorf("response carries no message")}
	}

	if len(wireResp.Message.ToolCalls) > 0 {
		calls := make([]ToolCall, 0, len(wireResp.Message.ToolCalls))
		for _, tc := range wireResp.Message.ToolCalls {
			calls = append(calls, ToolCall{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			})
		}
		return &ChatResponse{Kind: ResponseToolCalls, ToolCalls: calls}, nil
	}

	return &ChatResponse{Kind: ResponseText, Text: wireResp.Message.Content}, nil
}

// toWireMessages flattens the request into the Ollama message list, with the
// system instruction first.
func toWireMessages(req ChatRequest) []ollamaMessage {
	messages := make([]ollamaMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, ollamaMessage{Role: string(RoleSystem), Content: req.System})
	}
	for _, m := range req.Messages {
		wm := ollamaMessage{
			Role:     string(m.Role),
			Content:  m.Content,
			ToolName: m.ToolName,
		}
		for _, tc := range m.ToolCalls {
			var wtc ollamaToolCall
			wtc.Function.Name = tc.Name
			wtc.Function.Arguments = tc.Arguments
			wm.ToolCalls = append(wm.ToolCalls, wtc)
		}
		messages = append(messages, wm)
	}
	return messages
}
