package planner

import (
	"strings"

	"github.com/pinkpantherking/calassist/internal/timezone"
)

// descriptionHeader opens the attendee-times block in the event description.
const descriptionHeader = "Meeting times for attendees:"

// Validate checks the structural invariants of a meeting request: non-empty
// title, at least one participant, a positive duration, and an organizer
// instant anchored to a resolvable timezone.
func Validate(req MeetingRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if req.Duration <= 0 {
		return &ValidationError{Field: "duration", Reason: "must be positive"}
	}
	if len(req.Participants) == 0 {
		return &ValidationError{Field: "participants", Reason: "must not be empty"}
	}
	if req.Organizer.IsZero() || req.Organizer.ZoneID() == "" {
		return &ValidationError{Field: "organizer", Reason: "must carry a timezone-anchored start"}
	}
	for _, p := range req.Participants {
		if strings.TrimSpace(p.Email) == "" {
			return &ValidationError{Field: "participants", Reason: "each participant needs a contact address"}
		}
	}
	return nil
}

// BuildProjections localizes the organizer's start for every participant.
// The result preserves participant order so that previews and description
// rendering agree, and calling it twice on an unchanged request yields
// identical projections.
func BuildProjections(req MeetingRequest) ([]LocalizedProjection, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	projections := make([]LocalizedProjection, 0, len(req.Participants))
	for _, p := range req.Participants {
		zone, err := timezone.CityZone(p.City)
		if err != nil {
			return nil, err
		}

		local, err := timezone.Convert(req.Organizer, zone)
		if err != nil {
			return nil, err
		}

		projections = append(projections, LocalizedProjection{
			Participant: p,
			ZoneID:      zone,
			Local:       local,
			DayOffset:   timezone.DayOffset(req.Organizer, local),
		})
	}
	return projections, nil
}

// BuildPayload renders the calendar event payload for a validated request
// and its projections. The description lists every participant's local time,
// one line per participant in request order; repeated calls over the same
// inputs produce byte-identical output.
func BuildPayload(req MeetingRequest, projections []LocalizedProjection, calendarID string) (EventPayload, error) {
	if err := Validate(req); err != nil {
		return EventPayload{}, err
	}

	attendees := make([]string, 0, len(req.Participants))
	for _, p := range req.Participants {
		attendees = append(attendees, p.Email)
	}

	var b strings.Builder
	if req.Description != "" {
		b.WriteString(req.Description)
		b.WriteString("\n\n")
	}
	b.WriteString(descriptionHeader)
	b.WriteString("\n")
	for _, proj := range projections {
		b.WriteString("\n• ")
		b.WriteString(proj.Participant.Email)
		b.WriteString(" (")
		b.WriteString(proj.Participant.City)
		b.WriteString("): ")
		b.WriteString(proj.Local.Time().Format("03:04 PM on Jan 02"))
		switch proj.DayOffset {
		case 1:
			b.WriteString(" (+1 day)")
		case -1:
			b.WriteString(" (-1 day)")
		}
	}

	return EventPayload{
		Title:       req.Title,
		StartUTC:    req.Organizer.UTC(),
		EndUTC:      req.Organizer.Add(req.Duration).UTC(),
		Attendees:   attendees,
		Description: b.String(),
		CalendarID:  calendarID,
	}, nil
}

// Plan validates a request and produces projections and the payload in one
// step. It is the convenience path for callers that need both.
func Plan(req MeetingRequest, calendarID string) ([]LocalizedProjection, EventPayload, error) {
	projections, err := BuildProjections(req)
	if err != nil {
		return nil, EventPayload{}, err
	}
	payload, err := BuildPayload(req, projections, calendarID)
	if err != nil {
		return nil, EventPayload{}, err
	}
	return projections, payload, nil
}
