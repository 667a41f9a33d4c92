package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation    = "operation"
	KeyTool         = "tool"
	KeyCalendar     = "calendar"
	KeyZone         = "zone"
	KeyConversation = "conversation"
	KeyIteration    = "iteration"
	KeyStatus       = "status"
	KeyError        = "error"
	KeyUserHash     = "user_hash"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithTool returns a logger with the tool attribute set.
func WithTool(logger *slog.Logger, tool string) *slog.Logger {
	return logger.With(slog.String(KeyTool, tool))
}

// WithConversation returns a logger with the conversation run ID set.
func WithConversation(logger *slog.Logger, id string) *slog.Logger {
	return logger.With(slog.String(KeyConversation, id))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Tool returns a slog attribute for the tool name.
func Tool(tool string) slog.Attr {
	return slog.String(KeyTool, tool)
}

// Zone returns a slog attribute for a timezone identifier.
func Zone(zone string) slog.Attr {
	return slog.String(KeyZone, zone)
}

// Calendar returns a slog attribute for the calendar ID.
func Calendar(id string) slog.Attr {
	return slog.String(KeyCalendar, id)
}

// Iteration returns a slog attribute for the orchestrator iteration count.
func Iteration(n int) slog.Attr {
	return slog.Int(KeyIteration, n)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from
// output, so Err(maybeNilErr) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeEmail returns a hashed representation of an email for logging.
// Attendee addresses are PII; the hash still allows correlating log entries.
func AnonymizeEmail(email string) string {
	if email == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(email))
	return "user:" + hex.EncodeToString(hash[:8])
}

// UserHash returns a slog attribute with the anonymized attendee email.
func UserHash(email string) slog.Attr {
	return slog.String(KeyUserHash, AnonymizeEmail(email))
}
