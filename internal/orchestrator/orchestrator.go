package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pinkpantherking/calassist/internal/genai"
	"github.com/pinkpantherking/calassist/internal/instrumentation"
	"github.com/pinkpantherking/calassist/internal/logging"
	"github.com/pinkpantherking/calassist/internal/tools"
)

// DefaultMaxIterations is the number of model round-trips a single
// conversation turn may consume before it is cut off.
const DefaultMaxIterations = 5

// budgetNotice is appended to the transcript when a turn runs out of
// iterations so the user understands why the answer stopped short.
const budgetNotice = "I reached the limit of tool calls for this request. " +
	"The steps completed so far are recorded above; ask me to continue if anything is missing."

// State identifies where a conversation turn is in its lifecycle.
type State int

const (
	// StateAwaitingModel means a request is in flight to the model.
	StateAwaitingModel State = iota
	// StateInspecting means a model response is being classified.
	StateInspecting
	// StateExecutingTools means requested tool calls are running.
	StateExecutingTools
	// StateDone means the turn finished with a textual answer.
	StateDone
	// StateAborted means the turn stopped before completion, either from
	// budget exhaustion, cancellation, or a model service failure.
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateAwaitingModel:
		return "awaiting_model"
	case StateInspecting:
		return "inspecting"
	case StateExecutingTools:
		return "executing_tools"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Transcript is the append-only record of a conversation across turns.
// It is owned by a single conversation and is not safe for concurrent use.
type Transcript struct {
	turns []genai.Message
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Turns returns a copy of the recorded messages, oldest first.
func (t *Transcript) Turns() []genai.Message {
	out := make([]genai.Message, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len returns the number of recorded messages.
func (t *Transcript) Len() int {
	return len(t.turns)
}

func (t *Transcript) append(msgs ...genai.Message) {
	t.turns = append(t.turns, msgs...)
}

// Result is the outcome of one conversation turn.
type Result struct {
	// Text is the model's final answer, or the partial notice when the
	// iteration budget ran out.
	Text string
	// State is the terminal state of the turn: StateDone or StateAborted.
	State State
	// Iterations is the number of model round-trips consumed.
	Iterations int
	// Incomplete is true when the turn stopped because the iteration
	// budget was exhausted while the model still wanted tools.
	Incomplete bool
}

// Dispatcher executes registered tools on behalf of the model. It is
// satisfied by *tools.Registry.
type Dispatcher interface {
	Definitions() []mcp.Tool
	Call(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult
}

var _ Dispatcher = (*tools.Registry)(nil)

// Config carries the tunable parameters of an Orchestrator.
type Config struct {
	// MaxIterations caps model round-trips per turn. Zero or negative
	// values fall back to DefaultMaxIterations.
	MaxIterations int

	// StepTimeout bounds each model round-trip and each tool call.
	// Zero means no per-step timeout.
	StepTimeout time.Duration

	// SystemInstruction is sent to the model on every round-trip.
	SystemInstruction string

	// Model is the model name, used for metric labels only.
	Model string

	Logger  *slog.Logger
	Metrics *instrumentation.Metrics
}

// Orchestrator mediates between the model service and the tool registry.
type Orchestrator struct {
	client   genai.Client
	registry Dispatcher
	config   Config
	logger   *slog.Logger
	metrics  *instrumentation.Metrics
}

// New creates an Orchestrator. The client and registry are required; config
// fields have working defaults.
func New(client genai.Client, registry Dispatcher, config Config) *Orchestrator {
	if config.MaxIterations <= 0 {
		config.MaxIterations = DefaultMaxIterations
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := config.Metrics
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}
	return &Orchestrator{
		client:   client,
		registry: registry,
		config:   config,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run performs one conversation turn: it appends the user message to the
// transcript, loops over model round-trips and tool executions, and returns
// when the model answers in plain text or the iteration budget runs out.
//
// Budget exhaustion is not an error: the returned Result has Incomplete set
// and a notice is appended to the transcript. A nil Result is only returned
// together with a non-nil error (model service failure or cancellation).
func (o *Orchestrator) Run(ctx context.Context, transcript *Transcript, message string) (*Result, error) {
	runID := uuid.NewString()
	logger := logging.WithConversation(o.logger, runID)

	transcript.append(genai.Message{Role: genai.RoleUser, Content: message})

	result := &Result{State: StateAwaitingModel}
	for result.Iterations < o.config.MaxIterations {
		if err := ctx.Err(); err != nil {
			result.State = StateAborted
			o.metrics.RecordConversation(ctx, instrumentation.ConversationAborted, result.Iterations)
			return nil, fmt.Errorf("conversation cancelled after %d iterations: %w", result.Iterations, err)
		}

		result.State = StateAwaitingModel
		result.Iterations++

		resp, err := o.chat(ctx, transcript, result.Iterations)
		if err != nil {
			result.State = StateAborted
			logger.Error("model round-trip failed",
				logging.Iteration(result.Iterations),
				logging.Err(err))
			o.metrics.RecordConversation(ctx, instrumentation.ConversationAborted, result.Iterations)
			return nil, err
		}

		result.State = StateInspecting
		switch resp.Kind {
		case genai.ResponseText:
			transcript.append(genai.Message{Role: genai.RoleAssistant, Content: resp.Text})
			result.Text = resp.Text
			result.State = StateDone
			logger.Info("conversation turn complete",
				logging.Iteration(result.Iterations),
				logging.Status(logging.StatusSuccess))
			o.metrics.RecordConversation(ctx, instrumentation.ConversationDone, result.Iterations)
			return result, nil

		case genai.ResponseToolCalls:
			result.State = StateExecutingTools
			transcript.append(genai.Message{
				Role:      genai.RoleAssistant,
				ToolCalls: resp.ToolCalls,
			})
			o.executeToolCalls(ctx, logger, transcript, resp.ToolCalls, result.Iterations)

		default:
			result.State = StateAborted
			o.metrics.RecordConversation(ctx, instrumentation.ConversationAborted, result.Iterations)
			return nil, fmt.Errorf("unexpected model response kind %d", resp.Kind)
		}
	}

	// Budget exhausted while the model still wanted tools.
	transcript.append(genai.Message{Role: genai.RoleAssistant, Content: budgetNotice})
	result.Text = budgetNotice
	result.State = StateAborted
	result.Incomplete = true
	logger.Warn("iteration budget exhausted",
		logging.Iteration(result.Iterations))
	o.metrics.RecordConversation(ctx, instrumentation.ConversationBudgetExceeded, result.Iterations)
	return result, nil
}

// chat performs one model round-trip, applying the per-step timeout.
func (o *Orchestrator) chat(ctx context.Context, transcript *Transcript, iteration int) (*genai.ChatResponse, error) {
	if o.config.StepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.StepTimeout)
		defer cancel()
	}

	ctx, span := instrumentation.StartModelSpan(ctx, o.config.Model, iteration)
	defer span.End()

	start := time.Now()
	resp, err := o.client.Chat(ctx, genai.ChatRequest{
		System:   o.config.SystemInstruction,
		Tools:    o.registry.Definitions(),
		Messages: transcript.Turns(),
	})
	if err != nil {
		instrumentation.SetSpanError(span, err)
		o.metrics.RecordModelRoundTrip(ctx, o.config.Model, instrumentation.ModelResultError, time.Since(start))
		return nil, err
	}
	instrumentation.SetSpanSuccess(span)

	modelResult := instrumentation.ModelResultText
	if resp.Kind == genai.ResponseToolCalls {
		modelResult = instrumentation.ModelResultToolCalls
	}
	o.metrics.RecordModelRoundTrip(ctx, o.config.Model, modelResult, time.Since(start))
	return resp, nil
}

// executeToolCalls runs the requested tools in the order the model emitted
// them and appends each result to the transcript. Failures are recorded as
// error-flagged results; they never abort the turn.
func (o *Orchestrator) executeToolCalls(ctx context.Context, logger *slog.Logger, transcript *Transcript, calls []genai.ToolCall, iteration int) {
	for _, call := range calls {
		callCtx := ctx
		var cancel context.CancelFunc
		if o.config.StepTimeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, o.config.StepTimeout)
		}

		callCtx, span := instrumentation.StartToolSpan(callCtx, call.Name,
			instrumentation.NewSpanAttributeBuilder().WithIteration(iteration).Build()...)

		start := time.Now()
		toolResult := o.registry.Call(callCtx, call.Name, call.Arguments)
		span.End()
		if cancel != nil {
			cancel()
		}

		status := logging.StatusSuccess
		if toolResult.IsError {
			status = logging.StatusError
		}
		logger.Info("tool executed",
			logging.Tool(call.Name),
			logging.Iteration(iteration),
			logging.Status(status))
		o.metrics.RecordToolInvocation(ctx, call.Name, status, time.Since(start))

		transcript.append(genai.Message{
			Role:     genai.RoleTool,
			Content:  tools.ResultText(toolResult),
			ToolName: call.Name,
		})
	}
}
