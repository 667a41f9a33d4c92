package cmd

import (
	"fmt"
	"log/slog"

	"github.com/pinkpantherking/calassist/internal/server"
	"github.com/pinkpantherking/calassist/internal/tools"
	"github.com/pinkpantherking/calassist/internal/tools/calendar_tools"
	"github.com/pinkpantherking/calassist/internal/tools/scheduling_tools"
)

// buildToolRegistry registers every tool group with a fresh registry.
// The same registry backs the chat loop and the MCP server.
func buildToolRegistry(sc *server.ServerContext, logger *slog.Logger) (*tools.Registry, error) {
	registry := tools.NewRegistry(logger)

	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Scheduling",
			register: func() error {
				return scheduling_tools.RegisterSchedulingTools(registry, sc)
			},
		},
		{
			name: "Calendar",
			register: func() error {
				return calendar_tools.RegisterCalendarTools(registry, sc)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return nil, fmt.Errorf("failed to register %s tools: %w", reg.name, err)
		}
	}

	return registry, nil
}
