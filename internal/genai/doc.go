// Package genai defines the conversational model service boundary.
//
// The Client interface accepts a system instruction, a tool registry's
// definitions, and the transcript so far, and returns a ChatResponse that is
// explicitly either text or a batch of tool-invocation requests. That
// decision is made exactly once, here at the boundary, so downstream code
// never re-inspects a loosely structured response object.
//
// OllamaClient is the HTTP implementation against an Ollama server's
// /api/chat endpoint with function-calling tools enabled. Connectivity or
// malformed-response failures surface as *ModelServiceError; they are the
// only model failures that abort an orchestration turn.
package genai
