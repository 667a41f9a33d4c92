// Package calendar provides a client for interacting with the Google Calendar API.
//
// This package offers functionality for managing calendar events, including
// creating, reading, and deleting events, checking availability via freebusy
// queries, and finding open time slots for scheduling meetings. CreateMeeting
// accepts a planned meeting payload so events land with UTC boundaries and a
// per-attendee local time description.
//
// The client authenticates with the Google OAuth2 flow using cached tokens.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := calendar.NewClient(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// List upcoming events
//	events, err := client.ListEvents("primary", time.Now(), time.Now().AddDate(0, 0, 7), "")
//	if err != nil {
//	    log.Fatal(err)
//	}
package calendar
