// Package cmd implements the command-line interface for calassist.
//
// This package provides the following commands:
//   - chat: Interactive scheduling assistant backed by a local Ollama model
//   - convert: Convert a wall-clock time between cities
//   - schedule: Plan (and optionally create) a meeting across timezones
//   - auth: Authorize access to Google Calendar
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
//
// The chat command is the default command when no subcommand is specified.
package cmd
