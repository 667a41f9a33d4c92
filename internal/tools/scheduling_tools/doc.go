// Package scheduling_tools provides timezone conversion and meeting
// planning tools.
//
// These tools run entirely in-process against the timezone catalog and the
// planner, so they need no Google credentials. The exception is
// plan_meeting's create flag, which hands the planned event to the Calendar
// client for the selected account.
package scheduling_tools
