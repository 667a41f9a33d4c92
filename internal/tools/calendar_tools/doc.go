// Package calendar_tools provides tools for Google Calendar operations.
//
// The tools are registered with the shared tool registry, which serves both
// the conversation loop and the serve command's MCP server. They cover event
// listing, lookup, creation and deletion, calendar discovery, and free/busy
// based availability search, with multi-account support.
package calendar_tools
