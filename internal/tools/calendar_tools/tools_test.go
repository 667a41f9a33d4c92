package calendar_tools

import (
	"context"
	"strings"
	"testing"

	"github.com/pinkpantherking/calassist/internal/server"
	"github.com/pinkpantherking/calassist/internal/tools"
)

func TestRegisterCalendarTools(t *testing.T) {
	ctx := context.Background()

	sc, err := server.NewServerContext(ctx)
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	defer sc.Shutdown()

	registry := tools.NewRegistry(nil)
	if err := RegisterCalendarTools(registry, sc); err != nil {
		t.Fatalf("RegisterCalendarTools() error = %v", err)
	}

	expected := []string{
		"calendar_list_events",
		"calendar_get_event",
		"calendar_create_event",
		"calendar_delete_event",
		"calendar_list_calendars",
		"calendar_get_calendar",
		"calendar_query_freebusy",
		"calendar_find_available_time",
	}

	defs := registry.Definitions()
	if len(defs) != len(expected) {
		t.Fatalf("registered %d tools, expected %d", len(defs), len(expected))
	}
	for i, name := range expected {
		if defs[i].Name != name {
			t.Errorf("tool[%d] = %q, expected %q", i, defs[i].Name, name)
		}
	}
}

func TestToolCallMissingRequiredArgument(t *testing.T) {
	ctx := context.Background()

	sc, err := server.NewServerContext(ctx)
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	defer sc.Shutdown()

	registry := tools.NewRegistry(nil)
	if err := RegisterCalendarTools(registry, sc); err != nil {
		t.Fatalf("RegisterCalendarTools() error = %v", err)
	}

	// time_min/time_max absent: validation fails before any client is needed
	result := registry.Call(ctx, "calendar_list_events", map[string]any{})
	if result == nil {
		t.Fatal("expected result, got nil")
	}
	if !result.IsError {
		t.Error("expected error result for missing time_min")
	}
	text := tools.ResultText(result)
	if !strings.Contains(text, "time_min") {
		t.Errorf("error text %q should mention time_min", text)
	}
}

func TestToolCallBadTimeFormat(t *testing.T) {
	ctx := context.Background()

	sc, err := server.NewServerContext(ctx)
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	defer sc.Shutdown()

	registry := tools.NewRegistry(nil)
	if err := RegisterCalendarTools(registry, sc); err != nil {
		t.Fatalf("RegisterCalendarTools() error = %v", err)
	}

	result := registry.Call(ctx, "calendar_list_events", map[string]any{
		"time_min": "not-a-time",
		"time_max": "2025-01-31T23:59:59Z",
	})
	if !result.IsError {
		t.Error("expected error result for malformed time_min")
	}
}

func TestCreateEventRejectsInvertedRange(t *testing.T) {
	ctx := context.Background()

	sc, err := server.NewServerContext(ctx)
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	defer sc.Shutdown()

	registry := tools.NewRegistry(nil)
	if err := RegisterCalendarTools(registry, sc); err != nil {
		t.Fatalf("RegisterCalendarTools() error = %v", err)
	}

	result := registry.Call(ctx, "calendar_create_event", map[string]any{
		"summary": "Kickoff",
		"start":   "2025-01-15T15:00:00Z",
		"end":     "2025-01-15T14:00:00Z",
	})
	if !result.IsError {
		t.Error("expected error result when end precedes start")
	}
	text := tools.ResultText(result)
	if !strings.Contains(text, "end must be after start") {
		t.Errorf("error text %q should mention the inverted range", text)
	}
}
