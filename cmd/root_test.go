package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandWiring(t *testing.T) {
	expected := []string{"chat", "convert", "schedule", "auth", "serve", "version"}

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, registered[name], "command %s should be registered", name)
	}
}

func TestServeCommandFlags(t *testing.T) {
	cmd := newServeCmd()

	require.NotNil(t, cmd.Flags().Lookup("metrics-enabled"))
	require.NotNil(t, cmd.Flags().Lookup("metrics-addr"))
}

func TestScheduleParseAttendees(t *testing.T) {
	attendees, err := parseAttendees([]string{
		"alice@example.com:London",
		"bob@example.com: New York ",
	})
	require.NoError(t, err)
	require.Len(t, attendees, 2)
	assert.Equal(t, "alice@example.com", attendees[0].Email)
	assert.Equal(t, "London", attendees[0].City)
	assert.Equal(t, "New York", attendees[1].City)

	_, err = parseAttendees([]string{"no-city"})
	assert.Error(t, err)

	_, err = parseAttendees([]string{":London"})
	assert.Error(t, err)
}

func TestConvertResolveSourceZone(t *testing.T) {
	zone, err := resolveSourceZone("Karachi", "")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Karachi", zone)

	_, err = resolveSourceZone("", "")
	assert.Error(t, err)

	_, err = resolveSourceZone("Karachi", "UTC+05:00 (Pakistan)")
	assert.Error(t, err)
}

func TestConvertParseClock(t *testing.T) {
	year, month, day, hour, minute, err := parseClock("2026-01-15", "17:30")
	require.NoError(t, err)
	assert.Equal(t, 2026, year)
	assert.Equal(t, "January", month.String())
	assert.Equal(t, 15, day)
	assert.Equal(t, 17, hour)
	assert.Equal(t, 30, minute)

	_, _, _, _, _, err = parseClock("2026-01-15", "")
	assert.Error(t, err)

	_, _, _, _, _, err = parseClock("15/01/2026", "17:30")
	assert.Error(t, err)

	_, _, _, _, _, err = parseClock("2026-01-15", "5pm")
	assert.Error(t, err)
}
