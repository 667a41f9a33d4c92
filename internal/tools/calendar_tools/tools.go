package calendar_tools

import (
	"context"
	"fmt"

	"github.com/pinkpantherking/calassist/internal/calendar"
	"github.com/pinkpantherking/calassist/internal/google"
	"github.com/pinkpantherking/calassist/internal/server"
	"github.com/pinkpantherking/calassist/internal/tools"
)

// getCalendarClient retrieves or creates a calendar client for the specified account
func getCalendarClient(ctx context.Context, account string, sc *server.ServerContext) (*calendar.Client, error) {
	client := sc.CalendarClientForAccount(account)
	if client == nil {
		// Check if token exists before trying to create client
		if !calendar.HasTokenForAccount(account) {
			authURL := google.GetAuthURL()
			return nil, fmt.Errorf(`Google OAuth token not found for account "%s". To authorize access:

1. Visit this URL in your browser:
   %s

2. Sign in with your Google account
3. Grant access to Google Calendar
4. Copy the authorization code and run: calassist auth --account %s <code>

Note: You only need to authorize once. The tokens will be automatically refreshed.`, account, authURL, account)
		}

		var err error
		client, err = calendar.NewClientForAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Calendar client for account %s: %w", account, err)
		}
		sc.SetCalendarClientForAccount(account, client)
	}
	return client, nil
}

// RegisterCalendarTools registers all Calendar-related tools with the registry
func RegisterCalendarTools(r *tools.Registry, sc *server.ServerContext) error {
	// Register event tools
	if err := RegisterEventTools(r, sc); err != nil {
		return fmt.Errorf("failed to register event tools: %w", err)
	}

	// Register calendar list tools
	if err := RegisterCalendarListTools(r, sc); err != nil {
		return fmt.Errorf("failed to register calendar list tools: %w", err)
	}

	// Register availability tools
	if err := RegisterAvailabilityTools(r, sc); err != nil {
		return fmt.Errorf("failed to register availability tools: %w", err)
	}

	return nil
}
