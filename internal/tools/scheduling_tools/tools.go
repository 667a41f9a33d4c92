package scheduling_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pinkpantherking/calassist/internal/planner"
	"github.com/pinkpantherking/calassist/internal/server"
	"github.com/pinkpantherking/calassist/internal/timezone"
	"github.com/pinkpantherking/calassist/internal/tools"
	"github.com/pinkpantherking/calassist/internal/tools/common"
)

// RegisterSchedulingTools registers timezone and meeting planning tools with
// the registry
func RegisterSchedulingTools(r *tools.Registry, sc *server.ServerContext) error {
	// Time conversion tool
	timeConvertTool := mcp.NewTool("time_convert",
		mcp.WithDescription("Convert a wall-clock time from one city's timezone to another's"),
		mcp.WithString("source_city",
			mcp.Description("City whose timezone anchors the input time (e.g., 'Karachi'). Either this or source_utc_offset is required."),
		),
		mcp.WithString("source_utc_offset",
			mcp.Description("UTC offset label to anchor the input time (e.g., 'UTC+05:00 (Pakistan)'). Used when source_city is not given."),
		),
		mcp.WithString("target_city",
			mcp.Required(),
			mcp.Description("City to convert the time into (e.g., 'New York')"),
		),
		mcp.WithNumber("year", mcp.Required(), mcp.Description("Year, e.g. 2026")),
		mcp.WithNumber("month", mcp.Required(), mcp.Description("Month 1-12")),
		mcp.WithNumber("day", mcp.Required(), mcp.Description("Day of month")),
		mcp.WithNumber("hour", mcp.Required(), mcp.Description("Hour 0-23")),
		mcp.WithNumber("minute", mcp.Required(), mcp.Description("Minute 0-59")),
	)

	r.Register(timeConvertTool, common.InstrumentedToolHandler(
		"time_convert", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleTimeConvert(ctx, request)
		}))

	// Meeting planning tool
	planMeetingTool := mcp.NewTool("plan_meeting",
		mcp.WithDescription("Plan a meeting across timezones: validates the request, localizes the start for every participant, and renders the event payload. Set create=true to also create the event on Google Calendar."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Meeting title"),
		),
		mcp.WithString("organizer_city",
			mcp.Description("Organizer's city; anchors the start time. Either this or organizer_utc_offset is required."),
		),
		mcp.WithString("organizer_utc_offset",
			mcp.Description("Organizer's UTC offset label (e.g., 'UTC+05:30 (India)'). Used when organizer_city is not given."),
		),
		mcp.WithNumber("year", mcp.Required(), mcp.Description("Start year")),
		mcp.WithNumber("month", mcp.Required(), mcp.Description("Start month 1-12")),
		mcp.WithNumber("day", mcp.Required(), mcp.Description("Start day of month")),
		mcp.WithNumber("hour", mcp.Required(), mcp.Description("Start hour 0-23 in the organizer's timezone")),
		mcp.WithNumber("minute", mcp.Required(), mcp.Description("Start minute 0-59")),
		mcp.WithNumber("duration_minutes",
			mcp.Required(),
			mcp.Description("Meeting duration in minutes"),
		),
		mcp.WithString("participants",
			mcp.Required(),
			mcp.Description("Comma-separated participants as email:City pairs, e.g. 'ali@example.com:Karachi, bo@example.com:New York'"),
		),
		mcp.WithString("description",
			mcp.Description("Free-form description prepended to the attendee times block"),
		),
		mcp.WithBoolean("create",
			mcp.Description("Create the event on Google Calendar (default: false, plan only)"),
		),
		mcp.WithString("calendar_id",
			mcp.Description("Calendar ID for create=true (default: 'primary')"),
		),
		mcp.WithString("account",
			mcp.Description("Account name for create=true (default: 'default')"),
		),
	)

	r.Register(planMeetingTool, common.InstrumentedToolHandler(
		"plan_meeting", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handlePlanMeeting(ctx, request, sc)
		}))

	// City catalog tool
	listCitiesTool := mcp.NewTool("list_cities",
		mcp.WithDescription("List the cities available for timezone resolution"),
	)

	r.Register(listCitiesTool, common.InstrumentedToolHandler(
		"list_cities", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListCities(ctx, request)
		}))

	// Offset catalog tool
	listOffsetsTool := mcp.NewTool("list_utc_offsets",
		mcp.WithDescription("List the UTC offset choices available for organizers whose city is not in the catalog"),
	)

	r.Register(listOffsetsTool, common.InstrumentedToolHandler(
		"list_utc_offsets", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListOffsets(ctx, request)
		}))

	return nil
}

// clockArgs reads the year/month/day/hour/minute numbers shared by the
// time_convert and plan_meeting tools.
func clockArgs(args map[string]interface{}) (year int, month time.Month, day, hour, minute int, err error) {
	read := func(key string) (int, error) {
		v, ok := args[key].(float64)
		if !ok {
			return 0, fmt.Errorf("%s is required and must be a number", key)
		}
		return int(v), nil
	}

	if year, err = read("year"); err != nil {
		return
	}
	var m int
	if m, err = read("month"); err != nil {
		return
	}
	if m < 1 || m > 12 {
		err = fmt.Errorf("month must be between 1 and 12")
		return
	}
	month = time.Month(m)
	if day, err = read("day"); err != nil {
		return
	}
	if hour, err = read("hour"); err != nil {
		return
	}
	if minute, err = read("minute"); err != nil {
		return
	}
	return
}

// sourceZone resolves the organizer/source timezone from either a city name
// or a UTC offset label.
func sourceZone(args map[string]interface{}, cityKey, offsetKey string) (string, error) {
	if city, ok := args[cityKey].(string); ok && city != "" {
		return timezone.CityZone(city)
	}
	if label, ok := args[offsetKey].(string); ok && label != "" {
		spec, err := timezone.OffsetByLabel(label)
		if err != nil {
			return "", err
		}
		return timezone.OffsetZone(spec)
	}
	return "", fmt.Errorf("either %s or %s is required", cityKey, offsetKey)
}

func handleTimeConvert(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	zone, err := sourceZone(args, "source_city", "source_utc_offset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	targetCity, ok := args["target_city"].(string)
	if !ok || targetCity == "" {
		return mcp.NewToolResultError("target_city is required"), nil
	}
	targetZone, err := timezone.CityZone(targetCity)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	year, month, day, hour, minute, err := clockArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	source, err := timezone.NewInstant(year, month, day, hour, minute, zone)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to build source time: %v", err)), nil
	}

	target, err := timezone.Convert(source, targetZone)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to convert time: %v", err)), nil
	}

	const layout = "Mon, Jan 2 2006 at 15:04 MST"
	result := fmt.Sprintf("Source: %s (%s)\n", source.Time().Format(layout), source.ZoneID())
	result += fmt.Sprintf("Target: %s (%s)\n", target.Time().Format(layout), target.ZoneID())
	switch timezone.DayOffset(source, target) {
	case 1:
		result += "The target time falls on the next calendar day.\n"
	case -1:
		result += "The target time falls on the previous calendar day.\n"
	}

	return mcp.NewToolResultText(result), nil
}

func handlePlanMeeting(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	zone, err := sourceZone(args, "organizer_city", "organizer_utc_offset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	year, month, day, hour, minute, err := clockArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	durationMinutes, ok := args["duration_minutes"].(float64)
	if !ok || durationMinutes <= 0 {
		return mcp.NewToolResultError("duration_minutes is required and must be positive"), nil
	}

	participantsStr, ok := args["participants"].(string)
	if !ok || participantsStr == "" {
		return mcp.NewToolResultError("participants is required"), nil
	}
	participants, err := parseParticipants(participantsStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	organizer, err := timezone.NewInstant(year, month, day, hour, minute, zone)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to build organizer time: %v", err)), nil
	}

	req := planner.MeetingRequest{
		Title:        title,
		Organizer:    organizer,
		Duration:     time.Duration(durationMinutes) * time.Minute,
		Participants: participants,
	}
	if desc, ok := args["description"].(string); ok {
		req.Description = desc
	}

	calendarID := "primary"
	if v, ok := args["calendar_id"].(string); ok && v != "" {
		calendarID = v
	}

	projections, payload, err := planner.Plan(req, calendarID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to plan meeting: %v", err)), nil
	}

	const layout = "Mon, Jan 2 2006 at 15:04 MST"
	result := fmt.Sprintf("Meeting: %s\n", payload.Title)
	result += fmt.Sprintf("Organizer start: %s (%s)\n", organizer.Time().Format(layout), organizer.ZoneID())
	result += fmt.Sprintf("UTC: %s to %s\n\n", payload.StartUTC.Format(time.RFC3339), payload.EndUTC.Format(time.RFC3339))

	result += "Participant local times:\n"
	for _, proj := range projections {
		result += fmt.Sprintf("  - %s (%s): %s",
			proj.Participant.Email, proj.Participant.City,
			proj.Local.Time().Format(layout))
		switch proj.DayOffset {
		case 1:
			result += " (+1 day)"
		case -1:
			result += " (-1 day)"
		}
		result += "\n"
	}

	create, _ := args["create"].(bool)
	if !create {
		result += "\nPlan only; no event was created."
		return mcp.NewToolResultText(result), nil
	}

	account := common.GetAccountFromArgs(ctx, args)
	client := sc.CalendarClientForAccount(account)
	if client == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no Google Calendar client for account %q; authorize first with 'calassist auth'", account)), nil
	}

	event, err := client.CreateMeeting(payload)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create event: %v", err)), nil
	}

	result += fmt.Sprintf("\nCreated event %s on calendar %s.", event.ID, calendarID)
	return mcp.NewToolResultText(result), nil
}

// parseParticipants splits "email:City" pairs separated by commas. City
// names may contain spaces; the first colon delimits the pair.
func parseParticipants(s string) ([]planner.Participant, error) {
	entries := strings.Split(s, ",")
	participants := make([]planner.Participant, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		email, city, found := strings.Cut(entry, ":")
		if !found {
			return nil, fmt.Errorf("participant %q must be an email:City pair", entry)
		}
		email = strings.TrimSpace(email)
		city = strings.TrimSpace(city)
		if email == "" || city == "" {
			return nil, fmt.Errorf("participant %q must be an email:City pair", entry)
		}
		participants = append(participants, planner.Participant{Email: email, City: city})
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("participants must not be empty")
	}
	return participants, nil
}

func handleListCities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cities := timezone.Cities()

	result := fmt.Sprintf("%d cities available:\n\n", len(cities))
	for _, city := range cities {
		zone, err := timezone.CityZone(city)
		if err != nil {
			continue
		}
		result += fmt.Sprintf("  %s (%s)\n", city, zone)
	}

	return mcp.NewToolResultText(result), nil
}

func handleListOffsets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	offsets := timezone.Offsets()

	result := fmt.Sprintf("%d UTC offset choices:\n\n", len(offsets))
	for _, spec := range offsets {
		result += fmt.Sprintf("  %s\n", spec.Label)
	}

	return mcp.NewToolResultText(result), nil
}
