package logging

import (
	"log/slog"
	"strings"
	"testing"
)

func TestWithHelpers(t *testing.T) {
	logger := slog.Default()

	if WithOperation(logger, "convert") == nil {
		t.Error("WithOperation returned nil")
	}
	if WithTool(logger, "time_convert") == nil {
		t.Error("WithTool returned nil")
	}
	if WithConversation(logger, "run-1") == nil {
		t.Error("WithConversation returned nil")
	}
}

func TestAttrConstructors(t *testing.T) {
	tests := []struct {
		attr slog.Attr
		key  string
		want string
	}{
		{Operation("convert"), KeyOperation, "convert"},
		{Tool("plan_meeting"), KeyTool, "plan_meeting"},
		{Zone("Asia/Karachi"), KeyZone, "Asia/Karachi"},
		{Calendar("primary"), KeyCalendar, "primary"},
		{Status(StatusSuccess), KeyStatus, "success"},
	}

	for _, tt := range tests {
		if tt.attr.Key != tt.key {
			t.Errorf("attr key = %q, want %q", tt.attr.Key, tt.key)
		}
		if tt.attr.Value.String() != tt.want {
			t.Errorf("attr value = %q, want %q", tt.attr.Value.String(), tt.want)
		}
	}
}

func TestIterationAttr(t *testing.T) {
	attr := Iteration(3)
	if attr.Key != KeyIteration {
		t.Errorf("Iteration key = %q, want %q", attr.Key, KeyIteration)
	}
	if attr.Value.Int64() != 3 {
		t.Errorf("Iteration value = %d, want 3", attr.Value.Int64())
	}
}

func TestErrAttr(t *testing.T) {
	attr := Err(nil)
	if attr.Key != "" {
		t.Errorf("Err(nil) should produce an empty group, got key %q", attr.Key)
	}
}

func TestAnonymizeEmail(t *testing.T) {
	if AnonymizeEmail("") != "" {
		t.Error("empty email should anonymize to empty string")
	}

	hashed := AnonymizeEmail("ana@example.com")
	if !strings.HasPrefix(hashed, "user:") {
		t.Errorf("anonymized email should carry user: prefix, got %q", hashed)
	}
	if strings.Contains(hashed, "ana") || strings.Contains(hashed, "example.com") {
		t.Errorf("anonymized email leaks original address: %q", hashed)
	}

	// Stable: same input, same hash.
	if hashed != AnonymizeEmail("ana@example.com") {
		t.Error("anonymization must be deterministic")
	}
	if hashed == AnonymizeEmail("raj@example.com") {
		t.Error("different emails must hash differently")
	}
}
