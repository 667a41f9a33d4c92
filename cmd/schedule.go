package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pinkpantherking/calassist/internal/calendar"
	"github.com/pinkpantherking/calassist/internal/config"
	"github.com/pinkpantherking/calassist/internal/logging"
	"github.com/pinkpantherking/calassist/internal/planner"
	"github.com/pinkpantherking/calassist/internal/timezone"
)

func newScheduleCmd() *cobra.Command {
	var (
		configPath      string
		title           string
		organizerCity   string
		organizerOffset string
		date            string
		clock           string
		durationMinutes int
		participants    []string
		description     string
		create          bool
		calendarID      string
		account         string
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Plan a meeting across timezones",
		Long: `Schedule anchors a meeting at the organizer's wall-clock time and
prints each participant's local start time, flagging day-boundary shifts.
With --create the event is written to Google Calendar with every
participant as an attendee.

Example:
  calassist schedule --title "Quarterly sync" \
    --organizer-city Karachi --date 2026-01-15 --time 17:00 --duration 45 \
    --participant alice@example.com:London \
    --participant bob@example.com:"New York" \
    --create`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(scheduleOptions{
				configPath:      configPath,
				title:           title,
				organizerCity:   organizerCity,
				organizerOffset: organizerOffset,
				date:            date,
				clock:           clock,
				durationMinutes: durationMinutes,
				participants:    participants,
				description:     description,
				create:          create,
				calendarID:      calendarID,
				account:         account,
			})
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file (default "+config.DefaultPath()+")")
	cmd.Flags().StringVar(&title, "title", "", "Meeting title")
	cmd.Flags().StringVar(&organizerCity, "organizer-city", "", "Organizer city (default from config)")
	cmd.Flags().StringVar(&organizerOffset, "organizer-offset", "", "Organizer fixed UTC offset label instead of a city")
	cmd.Flags().StringVar(&date, "date", "", "Meeting date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&clock, "time", "", "Meeting start, HH:MM in the organizer's zone")
	cmd.Flags().IntVar(&durationMinutes, "duration", 30, "Meeting length in minutes")
	cmd.Flags().StringArrayVar(&participants, "participant", nil, "Participant as email:City (repeatable)")
	cmd.Flags().StringVar(&description, "description", "", "Meeting description")
	cmd.Flags().BoolVar(&create, "create", false, "Create the event on Google Calendar")
	cmd.Flags().StringVar(&calendarID, "calendar", "", "Target calendar ID (default from config)")
	cmd.Flags().StringVar(&account, "account", "default", "Google account identifier")

	return cmd
}

type scheduleOptions struct {
	configPath      string
	title           string
	organizerCity   string
	organizerOffset string
	date            string
	clock           string
	durationMinutes int
	participants    []string
	description     string
	create          bool
	calendarID      string
	account         string
}

func runSchedule(opts scheduleOptions) error {
	_ = godotenv.Load()

	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}

	organizerZone, err := organizerZoneFor(opts, cfg)
	if err != nil {
		return err
	}

	year, month, day, hour, minute, err := parseClock(opts.date, opts.clock)
	if err != nil {
		return err
	}
	organizer, err := timezone.NewInstant(year, month, day, hour, minute, organizerZone)
	if err != nil {
		return err
	}

	attendees, err := parseAttendees(opts.participants)
	if err != nil {
		return err
	}

	calendarID := opts.calendarID
	if calendarID == "" {
		calendarID = cfg.CalendarID
	}

	req := planner.MeetingRequest{
		Title:        opts.title,
		Organizer:    organizer,
		Duration:     time.Duration(opts.durationMinutes) * time.Minute,
		Participants: attendees,
		Description:  opts.description,
	}

	projections, payload, err := planner.Plan(req, calendarID)
	if err != nil {
		return err
	}

	const layout = "Mon, Jan 2 2006 15:04 MST"
	fmt.Printf("%s\n", payload.Title)
	fmt.Printf("Organizer:  %s (%s)\n", organizer.Time().Format(layout), organizerZone)
	fmt.Printf("UTC:        %s - %s\n",
		payload.StartUTC.Format("2006-01-02 15:04"),
		payload.EndUTC.Format("15:04"))
	for _, proj := range projections {
		fmt.Printf("%-28s %s%s\n",
			proj.Participant.Email,
			proj.Local.Time().Format(layout),
			dayOffsetNote(proj.DayOffset))
	}

	if !opts.create {
		fmt.Println("\nPlan only. Re-run with --create to write the event.")
		return nil
	}

	if !calendar.HasTokenForAccount(opts.account) {
		return fmt.Errorf("no Google Calendar token for account %q: run 'calassist auth --account %s' first", opts.account, opts.account)
	}
	client, err := calendar.NewClientForAccount(context.Background(), opts.account)
	if err != nil {
		return err
	}
	created, err := client.CreateMeeting(payload)
	if err != nil {
		return err
	}
	fmt.Printf("\nCreated event %s on calendar %s\n", created.ID, calendarID)
	return nil
}

func organizerZoneFor(opts scheduleOptions, cfg *config.Config) (string, error) {
	if opts.organizerOffset != "" {
		if opts.organizerCity != "" {
			return "", fmt.Errorf("use either --organizer-city or --organizer-offset, not both")
		}
		spec, err := timezone.OffsetByLabel(opts.organizerOffset)
		if err != nil {
			return "", err
		}
		// A fixed offset ignores DST transitions; the city form is exact.
		slog.Warn("scheduling against a fixed UTC offset",
			logging.Zone(spec.Label),
			slog.String("hint", "prefer --organizer-city for DST-correct times"))
		return timezone.OffsetZone(spec)
	}
	if opts.organizerCity != "" {
		return timezone.CityZone(opts.organizerCity)
	}
	return cfg.OrganizerZone, nil
}

// parseAttendees splits repeated --participant flags of the form
// "email:City". City names may contain colons-free spaces, so only the
// first colon separates the two.
func parseAttendees(raw []string) ([]planner.Participant, error) {
	attendees := make([]planner.Participant, 0, len(raw))
	for _, entry := range raw {
		email, city, ok := strings.Cut(entry, ":")
		email = strings.TrimSpace(email)
		city = strings.TrimSpace(city)
		if !ok || email == "" || city == "" {
			return nil, fmt.Errorf("invalid participant %q: expected email:City", entry)
		}
		attendees = append(attendees, planner.Participant{Email: email, City: city})
	}
	return attendees, nil
}
