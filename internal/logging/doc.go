// Package logging provides structured logging utilities for calassist.
//
// It centralizes attribute naming so that scheduling operations, tool
// invocations, and conversation runs log consistently with slog, and it
// anonymizes attendee email addresses before they reach log output.
//
// Usage:
//
//	logger := logging.WithOperation(slog.Default(), "planner.projections")
//	logger.Info("built projections",
//	    logging.Status(logging.StatusSuccess))
package logging
