package planner

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinkpantherking/calassist/internal/timezone"
)

func testRequest(t *testing.T) MeetingRequest {
	t.Helper()
	organizer, err := timezone.NewInstant(2025, time.March, 10, 16, 0, "Asia/Karachi")
	require.NoError(t, err)

	return MeetingRequest{
		Title:     "Team Sync",
		Organizer: organizer,
		Duration:  60 * time.Minute,
		Participants: []Participant{
			{Email: "ana@example.com", City: "Madrid"},
			{Email: "raj@example.com", City: "Mumbai"},
			{Email: "kei@example.com", City: "Tokyo"},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MeetingRequest)
		field  string
	}{
		{
			name:   "empty title",
			mutate: func(r *MeetingRequest) { r.Title = "  " },
			field:  "title",
		},
		{
			name:   "no participants",
			mutate: func(r *MeetingRequest) { r.Participants = nil },
			field:  "participants",
		},
		{
			name:   "zero duration",
			mutate: func(r *MeetingRequest) { r.Duration = 0 },
			field:  "duration",
		},
		{
			name:   "negative duration",
			mutate: func(r *MeetingRequest) { r.Duration = -time.Hour },
			field:  "duration",
		},
		{
			name:   "zero organizer instant",
			mutate: func(r *MeetingRequest) { r.Organizer = timezone.Instant{} },
			field:  "organizer",
		},
		{
			name:   "participant without address",
			mutate: func(r *MeetingRequest) { r.Participants[0].Email = "" },
			field:  "participants",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest(t)
			tt.mutate(&req)

			err := Validate(req)
			var valErr *ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.field, valErr.Field)
		})
	}

	assert.NoError(t, Validate(testRequest(t)))
}

func TestBuildProjectionsOrderAndOffsets(t *testing.T) {
	req := testRequest(t)

	projections, err := BuildProjections(req)
	require.NoError(t, err)
	require.Len(t, projections, len(req.Participants))

	// Order matches participant order, not sorted.
	for i, p := range req.Participants {
		assert.Equal(t, p.Email, projections[i].Participant.Email)
	}

	// 16:00 Karachi -> 12:00 Madrid, 16:30 Mumbai, 20:00 Tokyo; all same day.
	assert.Equal(t, 12, projections[0].Local.Time().Hour())
	assert.Equal(t, "Europe/Madrid", projections[0].ZoneID)
	assert.Equal(t, 0, projections[0].DayOffset)

	assert.Equal(t, 16, projections[1].Local.Time().Hour())
	assert.Equal(t, 30, projections[1].Local.Time().Minute())

	assert.Equal(t, 20, projections[2].Local.Time().Hour())
	assert.Equal(t, 0, projections[2].DayOffset)
}

func TestBuildProjectionsDayBoundary(t *testing.T) {
	organizer, err := timezone.NewInstant(2025, time.January, 15, 23, 30, "Europe/London")
	require.NoError(t, err)

	req := MeetingRequest{
		Title:     "Late call",
		Organizer: organizer,
		Duration:  30 * time.Minute,
		Participants: []Participant{
			{Email: "kei@example.com", City: "Tokyo"},
		},
	}

	projections, err := BuildProjections(req)
	require.NoError(t, err)
	require.Len(t, projections, 1)

	assert.Equal(t, 1, projections[0].DayOffset)
	assert.Equal(t, 8, projections[0].Local.Time().Hour())
	assert.Equal(t, 30, projections[0].Local.Time().Minute())
}

func TestBuildProjectionsIdempotent(t *testing.T) {
	req := testRequest(t)

	first, err := BuildProjections(req)
	require.NoError(t, err)
	second, err := BuildProjections(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildProjectionsRejectsBeforeResolving(t *testing.T) {
	// Scenario: zero participants must fail validation, never reach the
	// catalog.
	req := testRequest(t)
	req.Participants = nil

	_, err := BuildProjections(req)
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
}

func TestBuildProjectionsUnknownCity(t *testing.T) {
	req := testRequest(t)
	req.Participants = append(req.Participants, Participant{Email: "x@example.com", City: "Gotham"})

	_, err := BuildProjections(req)
	var resErr *timezone.ResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "Gotham", resErr.Name)
}

func TestBuildPayload(t *testing.T) {
	req := testRequest(t)
	projections, err := BuildProjections(req)
	require.NoError(t, err)

	payload, err := BuildPayload(req, projections, "primary")
	require.NoError(t, err)

	assert.Equal(t, "Team Sync", payload.Title)
	assert.Equal(t, "primary", payload.CalendarID)
	assert.Equal(t, []string{"ana@example.com", "raj@example.com", "kei@example.com"}, payload.Attendees)

	// 16:00 PKT is 11:00 UTC; one hour long.
	assert.Equal(t, 11, payload.StartUTC.Hour())
	assert.Equal(t, 12, payload.EndUTC.Hour())
	assert.Equal(t, time.UTC, payload.StartUTC.Location())

	assert.Contains(t, payload.Description, "Meeting times for attendees:")
	assert.Contains(t, payload.Description, "• ana@example.com (Madrid): 12:00 PM on Mar 10")
	assert.Contains(t, payload.Description, "• raj@example.com (Mumbai): 04:30 PM on Mar 10")
	assert.NotContains(t, payload.Description, "(+1 day)")
}

func TestBuildPayloadAnnotatesDayShift(t *testing.T) {
	organizer, err := timezone.NewInstant(2025, time.January, 15, 23, 30, "Europe/London")
	require.NoError(t, err)

	req := MeetingRequest{
		Title:     "Late call",
		Organizer: organizer,
		Duration:  30 * time.Minute,
		Participants: []Participant{
			{Email: "kei@example.com", City: "Tokyo"},
		},
	}

	projections, payload, err := Plan(req, "primary")
	require.NoError(t, err)
	require.Len(t, projections, 1)

	assert.Contains(t, payload.Description, "08:30 AM on Jan 16 (+1 day)")
}

func TestBuildPayloadByteIdentical(t *testing.T) {
	req := testRequest(t)
	req.Description = "Quarterly review prep"

	projections, err := BuildProjections(req)
	require.NoError(t, err)

	first, err := BuildPayload(req, projections, "primary")
	require.NoError(t, err)
	second, err := BuildPayload(req, projections, "primary")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []byte(first.Description), []byte(second.Description))
	assert.Contains(t, first.Description, "Quarterly review prep\n\n")
}
