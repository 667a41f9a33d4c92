// Package orchestrator drives bounded tool-calling conversations between a
// user, a conversational model, and the registered scheduling tools.
//
// Each call to Run performs one conversation turn as a small state machine:
// the user message is appended to the transcript, the model is consulted, and
// any tool calls it emits are executed in order with their results fed back
// as context for the next round-trip. The loop repeats until the model
// produces a plain text answer or the iteration budget is exhausted.
//
// Iteration budget semantics: each model round-trip consumes one unit of the
// budget. A turn that exhausts the budget is not an error; the caller
// receives a Result with Incomplete set and a notice appended to the
// transcript so the user can continue the conversation.
//
// Tool failures never abort a turn. A failing tool produces an error-flagged
// result message and the model decides how to proceed. Only model service
// failures and context cancellation abort the turn.
//
// Usage:
//
//	orch := orchestrator.New(client, registry, orchestrator.Config{
//		MaxIterations: 5,
//		SystemInstruction: genai.SystemInstruction(time.Now(), "Asia/Karachi", "primary"),
//	})
//	transcript := orchestrator.NewTranscript()
//	result, err := orch.Run(ctx, transcript, "Schedule a sync with Ana tomorrow at 4pm")
package orchestrator
