// Package tools provides the in-process tool registry the orchestrator
// dispatches model-issued tool calls through.
//
// Tools are described with mcp-go definitions and handlers, the same shape
// used by MCP servers, so one registration serves both the conversation
// loop and the serve command's stdio MCP server. Tool failures are data: a
// failed call yields a result with IsError set rather than an error return,
// which lets the model read the failure and decide whether to retry or
// report it.
package tools
