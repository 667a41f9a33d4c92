package planner

import (
	"fmt"
	"time"

	"github.com/pinkpantherking/calassist/internal/timezone"
)

// Participant is one meeting attendee, bound to a catalog city that
// determines their local timezone. Participants live only for the duration
// of the request; nothing here is persisted.
type Participant struct {
	Email string
	City  string
}

// MeetingRequest describes a meeting to be scheduled. Organizer anchors the
// start in the organizer's own timezone; every participant's local time is
// derived from it.
type MeetingRequest struct {
	Title        string
	Organizer    timezone.Instant
	Duration     time.Duration
	Participants []Participant
	Description  string
}

// LocalizedProjection is the read-only view of the meeting start in one
// participant's timezone. DayOffset is -1, 0, or +1 relative to the
// organizer's calendar date. Projections are recomputed on every call and
// never cached: the inputs are cheap and a stale projection would silently
// mis-schedule a meeting.
type LocalizedProjection struct {
	Participant Participant
	ZoneID      string
	Local       timezone.Instant
	DayOffset   int
}

// EventPayload is the structured event handed to the calendar service.
// Start and end are UTC so the receiving service never has to guess a
// timezone.
type EventPayload struct {
	Title       string
	StartUTC    time.Time
	EndUTC      time.Time
	Attendees   []string
	Description string
	CalendarID  string
}

// ValidationError reports a MeetingRequest that fails a structural
// invariant. It is raised before any projection or external call, so a
// partial meeting is never created.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid meeting request: %s %s", e.Field, e.Reason)
}
